package course

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flexsections/common"
)

const sampleSnapshot = `course:
  id: 2
  context_id: 15
  short_name: bio101
  full_name: Biology 101
  marker: 2
moving_section: 3
sections:
  - {id: 10, number: 0, summary: "Welcome"}
  - {id: 11, number: 1, parent: 0, name: "Week 1", state: expanded}
  - {id: 12, number: 2, parent: 1, order: 2, state: collapsed, summary_format: markdown}
  - {id: 13, number: 3, parent: 1, order: 1, visible: false}
modules:
  - {id: 100, modname: forum, name: News, section: 0}
`

func TestLoadSnapshot(t *testing.T) {
	snap, err := LoadSnapshot(strings.NewReader(sampleSnapshot))
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if snap.Course.FullName != "Biology 101" {
		t.Errorf("FullName = %q", snap.Course.FullName)
	}
	if snap.MovingSection != 3 {
		t.Errorf("MovingSection = %d, want 3", snap.MovingSection)
	}
	if len(snap.Sections) != 4 {
		t.Fatalf("sections = %d, want 4", len(snap.Sections))
	}
	if snap.Sections[2].State != common.SectionStateCollapsed {
		t.Errorf("State = %v, want collapsed", snap.Sections[2].State)
	}
	if f := snap.Sections[2].SummaryFormat; f == nil || *f != common.SummaryFormatMarkdown {
		t.Errorf("SummaryFormat = %v, want markdown", f)
	}
	if snap.Sections[1].SummaryFormat != nil {
		t.Error("SummaryFormat should stay nil when absent")
	}
	if v := snap.Sections[3].Visible; v == nil || *v {
		t.Errorf("Visible = %v, want false", v)
	}
}

func TestLoadSnapshotFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "course.yaml")
	if err := os.WriteFile(path, []byte(sampleSnapshot), 0644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	if _, err := LoadSnapshotFile(path); err != nil {
		t.Fatalf("LoadSnapshotFile() error = %v", err)
	}
	if _, err := LoadSnapshotFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadSnapshot_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{
			name:    "unknown field",
			content: "course: {id: 1}\nsections: [{number: 0, colour: red}]\n",
		},
		{
			name:    "bad state",
			content: "course: {id: 1}\nsections: [{number: 0, state: folded}]\n",
		},
		{
			name:    "no root",
			content: "course: {id: 1}\nsections: [{number: 1}]\n",
			target:  ErrNoSection,
		},
		{
			name:    "missing parent",
			content: "course: {id: 1}\nsections: [{number: 0}, {number: 1, parent: 7}]\n",
			target:  ErrNoSection,
		},
		{
			name:    "cycle",
			content: "course: {id: 1}\nsections: [{number: 0}, {number: 1, parent: 2}, {number: 2, parent: 1}]\n",
			target:  ErrCycle,
		},
		{
			name:    "self parent",
			content: "course: {id: 1}\nsections: [{number: 0}, {number: 1, parent: 1}]\n",
			target:  ErrCycle,
		},
		{
			name:    "duplicate number",
			content: "course: {id: 1}\nsections: [{number: 0}, {number: 1}, {number: 1}]\n",
		},
		{
			name:    "moving unknown section",
			content: "course: {id: 1}\nmoving_section: 5\nsections: [{number: 0}]\n",
			target:  ErrNoSection,
		},
		{
			name:    "module in unknown section",
			content: "course: {id: 1}\nsections: [{number: 0}]\nmodules: [{id: 1, modname: page, name: P, section: 3}]\n",
			target:  ErrNoSection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSnapshot(strings.NewReader(tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("error = %v, want %v", err, tt.target)
			}
		})
	}
}
