// Package course defines course outline data as the renderer sees it and the
// contract of the course format which supplies it.
package course

import (
	"flexsections/common"
)

// Course is the course entry the outline belongs to.
type Course struct {
	ID        int64  `yaml:"id"`
	ContextID int64  `yaml:"context_id"`
	ShortName string `yaml:"short_name"`
	FullName  string `yaml:"full_name"`
	// Marker is the number of highlighted (current) section, 0 when none.
	Marker int `yaml:"marker"`
}

// Section is a resolved course section. Sections are addressed by their
// number, Parent is the number of the parent section, section 0 is the root
// of the tree and has no parent.
type Section struct {
	ID               int64
	CourseID         int64
	Number           int
	Parent           int
	Order            int
	Name             string
	Visible          bool
	UserVisible      bool
	Available        bool
	ShowAvailability bool
	AvailableInfo    string
	State            common.SectionState
	Summary          string
	// nil means format was not specified by the source
	SummaryFormat *common.SummaryFormat
	CSSClass      string
}

// Expanded reports whether section content is displayed inline.
func (s *Section) Expanded() bool {
	return s.State == common.SectionStateExpanded
}

// Module is a course activity or resource placed in a section.
type Module struct {
	ID      int64
	ModName string
	Name    string
	Section int
	Visible bool
}

// Control is a single editing affordance for a section.
type Control struct {
	Kind common.ControlKind
	// Class keeps the class name as it was supplied, for unknown kinds it is
	// the only source of the markup class.
	Class string
	URL   string
	Text  string
}

// NewControl creates control from class name, unrecognized class names
// produce ControlKindUnknown.
func NewControl(class, url, text string) Control {
	kind, err := common.ParseControlKind(class)
	if err != nil {
		kind = common.ControlKindUnknown
	}
	return Control{Kind: kind, Class: class, URL: url, Text: text}
}

func newControl(kind common.ControlKind, url, text string) Control {
	return Control{Kind: kind, Class: kind.String(), URL: url, Text: text}
}

// Format is everything section tree renderer needs from the course format.
// Implementations decide which controls are available, the renderer only
// chooses markup for them.
type Format interface {
	Course() *Course
	// Section returns ErrNoSection when section does not exist.
	Section(num int) (*Section, error)
	// Subsections returns numbers of direct children in display order.
	Subsections(num int) []int
	// MovingSection returns number of section being moved, if any.
	MovingSection() (int, bool)
	IsCurrent(s *Section) bool
	SectionName(s *Section) string
	// SectionURL returns empty string when section has no page of its own.
	SectionURL(s *Section) string
	SectionEditControls(s *Section, returnTo int) []Control
	CancelMovingControls() []Control
	AddSectionControl(num int) *Control
	// MoveHereControl returns drop target for the section being moved. Before
	// is the number of the section to insert before, 0 means at the end.
	MoveHereControl(parent, before int) *Control
	BackToControl(num int) *Control
	// ActivityList and AddActivityControl return ready HTML, empty when
	// there is nothing to show.
	ActivityList(s *Section, returnTo int) string
	AddActivityControl(s *Section, returnTo int) string
	HasActivities(num int) bool
}
