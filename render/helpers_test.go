package render

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"flexsections/common"
	"flexsections/config"
	"flexsections/course"
)

// fakeFormat is a Format with all decisions made by test.
type fakeFormat struct {
	course      course.Course
	sections    map[int]*course.Section
	children    map[int][]int
	moving      int
	current     int
	controls    map[int][]course.Control
	activities  map[int]string
	addActivity string
	addSection  map[int]*course.Control
}

func newSection(num, parent int, name string) *course.Section {
	return &course.Section{
		ID:          int64(10 + num),
		CourseID:    2,
		Number:      num,
		Parent:      parent,
		Name:        name,
		Visible:     true,
		UserVisible: true,
		Available:   true,
		State:       common.SectionStateExpanded,
	}
}

func newFake(sections ...*course.Section) *fakeFormat {
	f := &fakeFormat{
		course:     course.Course{ID: 2, ContextID: 15, ShortName: "bio101", FullName: "Biology 101"},
		sections:   make(map[int]*course.Section),
		children:   make(map[int][]int),
		controls:   make(map[int][]course.Control),
		activities: make(map[int]string),
		addSection: make(map[int]*course.Control),
	}
	for _, s := range sections {
		f.sections[s.Number] = s
		if s.Number != 0 {
			f.children[s.Parent] = append(f.children[s.Parent], s.Number)
		}
	}
	return f
}

func (f *fakeFormat) Course() *course.Course { return &f.course }

func (f *fakeFormat) Section(num int) (*course.Section, error) {
	s, ok := f.sections[num]
	if !ok {
		return nil, fmt.Errorf("section %d: %w", num, course.ErrNoSection)
	}
	return s, nil
}

func (f *fakeFormat) Subsections(num int) []int { return f.children[num] }

func (f *fakeFormat) MovingSection() (int, bool) { return f.moving, f.moving != 0 }

func (f *fakeFormat) IsCurrent(s *course.Section) bool {
	return f.current != 0 && s.Number == f.current
}

func (f *fakeFormat) SectionName(s *course.Section) string { return s.Name }

func (f *fakeFormat) SectionURL(s *course.Section) string {
	return fmt.Sprintf("/view?section=%d", s.Number)
}

func (f *fakeFormat) SectionEditControls(s *course.Section, _ int) []course.Control {
	return f.controls[s.Number]
}

func (f *fakeFormat) CancelMovingControls() []course.Control {
	if f.moving == 0 {
		return nil
	}
	return []course.Control{course.NewControl("cancelmovingsection", "/cancel", "Cancel moving")}
}

func (f *fakeFormat) AddSectionControl(num int) *course.Control { return f.addSection[num] }

func (f *fakeFormat) MoveHereControl(parent, before int) *course.Control {
	if f.moving == 0 {
		return nil
	}
	c := course.NewControl("movehere", fmt.Sprintf("/move?parent=%d&before=%d", parent, before), "Move here")
	return &c
}

func (f *fakeFormat) BackToControl(num int) *course.Control {
	s, ok := f.sections[num]
	if !ok || num == 0 {
		return nil
	}
	c := course.NewControl("backto", fmt.Sprintf("/view?section=%d", s.Parent), "Back")
	return &c
}

func (f *fakeFormat) ActivityList(s *course.Section, _ int) string { return f.activities[s.Number] }

func (f *fakeFormat) AddActivityControl(*course.Section, int) string { return f.addActivity }

func (f *fakeFormat) HasActivities(num int) bool { return len(f.activities[num]) > 0 }

func newRenderer(t *testing.T, modify ...func(*config.RenderConfig)) *Renderer {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	for _, m := range modify {
		m(&cfg.Render)
	}
	r, err := New(&cfg.Render, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

// parseOutput reads serialized fragment back the way browser would.
func parseOutput(t *testing.T, f Fragment) []*html.Node {
	t.Helper()
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(f.String()), context)
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	return nodes
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return slices.Contains(strings.Fields(attr(n, "class")), class)
	}
}

func classIs(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return attr(n, "class") == class
	}
}

func findAll(nodes []*html.Node, match func(*html.Node) bool) []*html.Node {
	var (
		out  []*html.Node
		walk func(n *html.Node)
	)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return out
}

func childElements(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && match(c) {
			out = append(out, c)
		}
	}
	return out
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func elements(nodes []*html.Node) []*html.Node {
	var out []*html.Node
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			out = append(out, n)
		}
	}
	return out
}
