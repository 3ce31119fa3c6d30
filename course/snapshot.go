package course

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"

	"flexsections/common"
)

var (
	ErrNoSection = errors.New("section does not exist")
	ErrCycle     = errors.New("sections do not form a tree")
)

// SectionRecord is a section as stored by the source. Visibility flags are
// optional, missing values are derived for the viewer by the Host.
type SectionRecord struct {
	ID               int64                 `yaml:"id"`
	Number           int                   `yaml:"number"`
	Parent           int                   `yaml:"parent"`
	Order            int                   `yaml:"order"`
	Name             string                `yaml:"name,omitempty"`
	Visible          *bool                 `yaml:"visible,omitempty"`
	UserVisible      *bool                 `yaml:"user_visible,omitempty"`
	Available        *bool                 `yaml:"available,omitempty"`
	ShowAvailability bool                  `yaml:"show_availability,omitempty"`
	AvailableInfo    string                `yaml:"available_info,omitempty"`
	State            common.SectionState   `yaml:"state"`
	Summary          string                `yaml:"summary,omitempty"`
	SummaryFormat    *common.SummaryFormat `yaml:"summary_format,omitempty"`
	CSSClass         string                `yaml:"css_class,omitempty"`
}

type ModuleRecord struct {
	ID      int64  `yaml:"id"`
	ModName string `yaml:"modname"`
	Name    string `yaml:"name"`
	Section int    `yaml:"section"`
	Visible *bool  `yaml:"visible,omitempty"`
}

// Snapshot is a complete course outline read at one moment.
type Snapshot struct {
	Course Course `yaml:"course"`
	// MovingSection is the number of section user is moving, 0 when not moving.
	MovingSection int             `yaml:"moving_section,omitempty"`
	Sections      []SectionRecord `yaml:"sections"`
	Modules       []ModuleRecord  `yaml:"modules,omitempty"`
}

// LoadSnapshot decodes and validates snapshot. Unknown fields are rejected.
func LoadSnapshot(r io.Reader) (*Snapshot, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	snap := &Snapshot{}
	if err := dec.Decode(snap); err != nil {
		return nil, fmt.Errorf("unable to decode course snapshot: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return snap, nil
}

func LoadSnapshotFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read course snapshot: %w", err)
	}
	return LoadSnapshot(bytes.NewReader(data))
}

// Validate makes sure sections form a single tree rooted at section 0 and
// everything else references existing sections.
func (s *Snapshot) Validate() (err error) {
	parents := make(map[int]int, len(s.Sections))
	for _, rec := range s.Sections {
		if _, exists := parents[rec.Number]; exists {
			err = multierr.Append(err, fmt.Errorf("duplicate section number %d", rec.Number))
			continue
		}
		if rec.Number < 0 {
			err = multierr.Append(err, fmt.Errorf("negative section number %d", rec.Number))
			continue
		}
		parents[rec.Number] = rec.Parent
	}
	if _, ok := parents[0]; !ok {
		return multierr.Append(err, fmt.Errorf("section 0: %w", ErrNoSection))
	}

	for num, parent := range parents {
		if num == 0 {
			continue
		}
		if _, ok := parents[parent]; !ok {
			err = multierr.Append(err, fmt.Errorf("parent %d of section %d: %w", parent, num, ErrNoSection))
			continue
		}
		// every chain of parents must end in section 0
		seen := map[int]bool{num: true}
		for p := parent; p != 0; p = parents[p] {
			if seen[p] {
				err = multierr.Append(err, fmt.Errorf("section %d: %w", num, ErrCycle))
				break
			}
			seen[p] = true
		}
	}

	if s.MovingSection != 0 {
		if _, ok := parents[s.MovingSection]; !ok {
			err = multierr.Append(err, fmt.Errorf("moving section %d: %w", s.MovingSection, ErrNoSection))
		}
	}
	for _, m := range s.Modules {
		if _, ok := parents[m.Section]; !ok {
			err = multierr.Append(err, fmt.Errorf("module %d in section %d: %w", m.ID, m.Section, ErrNoSection))
		}
	}
	return err
}
