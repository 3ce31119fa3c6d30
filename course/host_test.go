package course

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"flexsections/common"
	"flexsections/config"
)

func setupHost(t *testing.T, snapshot string, viewer Viewer) *Host {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	snap, err := LoadSnapshot(strings.NewReader(snapshot))
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	h, err := NewHost(snap, &cfg.Host, "https://lms.example.org", viewer, zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller())))
	if err != nil {
		t.Fatalf("NewHost() error = %v", err)
	}
	return h
}

func kinds(controls []Control) []common.ControlKind {
	out := make([]common.ControlKind, 0, len(controls))
	for _, c := range controls {
		out = append(out, c.Kind)
	}
	return out
}

func TestHost_Sections(t *testing.T) {
	h := setupHost(t, sampleSnapshot, Viewer{})

	if got := h.Subsections(1); len(got) != 2 || got[0] != 3 || got[1] != 2 {
		t.Errorf("Subsections(1) = %v, want [3 2] (display order)", got)
	}
	if got := h.Subsections(0); len(got) != 1 || got[0] != 1 {
		t.Errorf("Subsections(0) = %v, want [1]", got)
	}

	if _, err := h.Section(42); !errors.Is(err, ErrNoSection) {
		t.Errorf("Section(42) error = %v, want ErrNoSection", err)
	}

	s, err := h.Section(3)
	if err != nil {
		t.Fatalf("Section(3) error = %v", err)
	}
	if s.Visible || s.UserVisible {
		t.Errorf("hidden section: Visible=%v UserVisible=%v", s.Visible, s.UserVisible)
	}
	if s.CourseID != 2 {
		t.Errorf("CourseID = %d, want 2", s.CourseID)
	}

	editor := setupHost(t, sampleSnapshot, Viewer{ViewHiddenSections: true})
	s, _ = editor.Section(3)
	if !s.UserVisible {
		t.Error("hidden section must be user visible with view hidden capability")
	}
}

func TestHost_SectionName(t *testing.T) {
	h := setupHost(t, sampleSnapshot, Viewer{})
	tests := []struct {
		num  int
		want string
	}{
		{0, "General"},
		{1, "Week 1"},
		{2, "Topic 2"},
	}
	for _, tt := range tests {
		s, err := h.Section(tt.num)
		if err != nil {
			t.Fatalf("Section(%d) error = %v", tt.num, err)
		}
		if got := h.SectionName(s); got != tt.want {
			t.Errorf("SectionName(%d) = %q, want %q", tt.num, got, tt.want)
		}
	}
}

func TestHost_IsCurrent(t *testing.T) {
	h := setupHost(t, sampleSnapshot, Viewer{})
	s1, _ := h.Section(1)
	s2, _ := h.Section(2)
	if h.IsCurrent(s1) {
		t.Error("section 1 is not marked")
	}
	if !h.IsCurrent(s2) {
		t.Error("section 2 is the course marker")
	}
}

func TestHost_MovingRequiresEditing(t *testing.T) {
	h := setupHost(t, sampleSnapshot, Viewer{})
	if _, ok := h.MovingSection(); ok {
		t.Error("moving mode must be off when not editing")
	}
	if c := h.MoveHereControl(0, 1); c != nil {
		t.Error("no move targets when not editing")
	}
	if c := h.CancelMovingControls(); len(c) != 0 {
		t.Error("no cancel banners when not editing")
	}

	h = setupHost(t, sampleSnapshot, Viewer{Editing: true})
	if n, ok := h.MovingSection(); !ok || n != 3 {
		t.Errorf("MovingSection() = %d, %v; want 3, true", n, ok)
	}
}

func TestHost_MoveHereControl(t *testing.T) {
	const snapshot = `course: {id: 7}
moving_section: 1
sections:
  - {number: 0}
  - {number: 1, parent: 0}
  - {number: 2, parent: 1}
  - {number: 3, parent: 0}
`
	h := setupHost(t, snapshot, Viewer{Editing: true})

	c := h.MoveHereControl(0, 3)
	if c == nil {
		t.Fatal("expected target at the root level")
	}
	if c.Kind != common.ControlKindMovehere || c.Text != "Move here" {
		t.Errorf("control = %+v", c)
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	q := u.Query()
	if q.Get("id") != "7" || q.Get("moveto") != "1" || q.Get("parent") != "0" || q.Get("before") != "3" {
		t.Errorf("unexpected query %v", q)
	}
	if c := h.MoveHereControl(0, 0); c == nil || strings.Contains(c.URL, "before=") {
		t.Errorf("end of list target = %+v", c)
	}
	// slots around moved section stay, every level has one target more than children
	if c := h.MoveHereControl(0, 1); c == nil {
		t.Error("target in front of moved section")
	}
	// section cannot be moved into itself or its descendants
	if c := h.MoveHereControl(1, 0); c != nil {
		t.Error("target inside moved section")
	}
	if c := h.MoveHereControl(2, 0); c != nil {
		t.Error("target inside descendant of moved section")
	}

	cancel := h.CancelMovingControls()
	if len(cancel) != 1 || cancel[0].Kind != common.ControlKindCancelmovingsection {
		t.Fatalf("CancelMovingControls() = %+v", cancel)
	}
	if cancel[0].Text != "Cancel moving: Topic 1" {
		t.Errorf("cancel text = %q", cancel[0].Text)
	}
	// regular editing controls are suppressed while moving
	s, _ := h.Section(3)
	if got := h.SectionEditControls(s, 0); len(got) != 0 {
		t.Errorf("SectionEditControls() while moving = %v", kinds(got))
	}
	if h.AddSectionControl(0) != nil {
		t.Error("add section while moving")
	}
}

func TestHost_SectionEditControls(t *testing.T) {
	const snapshot = `course: {id: 7, marker: 2}
sections:
  - {number: 0}
  - {id: 21, number: 1, parent: 0, state: collapsed}
  - {id: 22, number: 2, parent: 1, visible: false}
`
	tests := []struct {
		name   string
		viewer Viewer
		num    int
		want   []common.ControlKind
	}{
		{
			name:   "not editing",
			viewer: Viewer{},
			num:    1,
			want:   []common.ControlKind{common.ControlKindCollapsed},
		},
		{
			name:   "not editing nothing to collapse",
			viewer: Viewer{},
			num:    2,
		},
		{
			name:   "root section",
			viewer: Viewer{Editing: true},
			num:    0,
		},
		{
			name:   "top level collapsed",
			viewer: Viewer{Editing: true},
			num:    1,
			want: []common.ControlKind{common.ControlKindMarker, common.ControlKindMove, common.ControlKindSettings,
				common.ControlKindHide, common.ControlKindCollapsed},
		},
		{
			name:   "nested hidden marked",
			viewer: Viewer{Editing: true, ViewHiddenSections: true},
			num:    2,
			want: []common.ControlKind{common.ControlKindMarked, common.ControlKindMove, common.ControlKindSettings,
				common.ControlKindShow, common.ControlKindMergeup, common.ControlKindExpanded},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := setupHost(t, snapshot, tt.viewer)
			s, err := h.Section(tt.num)
			if err != nil {
				t.Fatalf("Section() error = %v", err)
			}
			got := kinds(h.SectionEditControls(s, 1))
			if len(got) != len(tt.want) {
				t.Fatalf("controls = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("controls[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}

	h := setupHost(t, snapshot, Viewer{Editing: true})
	s, _ := h.Section(1)
	for _, c := range h.SectionEditControls(s, 1) {
		if c.Kind == common.ControlKindSettings && !strings.Contains(c.URL, "/course/editsection.php?id=21") {
			t.Errorf("settings url = %q", c.URL)
		}
		if c.Class != c.Kind.String() {
			t.Errorf("class %q does not match kind %v", c.Class, c.Kind)
		}
	}
}

func TestHost_BackToControl(t *testing.T) {
	h := setupHost(t, sampleSnapshot, Viewer{})
	if h.BackToControl(0) != nil {
		t.Error("no back link for section 0")
	}
	c := h.BackToControl(2)
	if c == nil {
		t.Fatal("expected back link")
	}
	if c.Kind != common.ControlKindBackto || c.Text != "Back to Week 1" {
		t.Errorf("control = %+v", c)
	}
	if c.URL != "https://lms.example.org/course/view.php?id=2&section=1" {
		t.Errorf("url = %q", c.URL)
	}
}

func TestHost_Activities(t *testing.T) {
	const snapshot = `course: {id: 7}
sections:
  - {number: 0}
  - {number: 1}
modules:
  - {id: 100, modname: forum, name: "News & events", section: 0}
  - {id: 101, modname: page, name: Draft, section: 0, visible: false}
`
	h := setupHost(t, snapshot, Viewer{})
	s0, _ := h.Section(0)
	s1, _ := h.Section(1)

	if !h.HasActivities(0) || h.HasActivities(1) {
		t.Error("HasActivities() mismatch")
	}

	list := h.ActivityList(s0, 0)
	for _, want := range []string{
		`<ul class="section img-text">`,
		`<li class="activity forum modtype_forum" id="module-100">`,
		`href="https://lms.example.org/mod/forum/view.php?id=100"`,
		`News &amp; events`,
	} {
		if !strings.Contains(list, want) {
			t.Errorf("ActivityList() misses %q:\n%s", want, list)
		}
	}
	if strings.Contains(list, "Draft") {
		t.Error("hidden module listed for student")
	}
	if got := h.ActivityList(s1, 0); got != "" {
		t.Errorf("empty section list = %q", got)
	}
	if got := h.AddActivityControl(s0, 0); got != "" {
		t.Errorf("add activity control when not editing = %q", got)
	}

	h = setupHost(t, snapshot, Viewer{Editing: true})
	s0, _ = h.Section(0)
	if list := h.ActivityList(s0, 0); !strings.Contains(list, `class="dimmed"`) {
		t.Errorf("hidden module must be dimmed in editing mode:\n%s", list)
	}
	add := h.AddActivityControl(s0, 3)
	if !strings.Contains(add, `id="add_menus-section-0"`) || !strings.Contains(add, "sr=3") {
		t.Errorf("AddActivityControl() = %q", add)
	}
}

func TestNewControl(t *testing.T) {
	c := NewControl("mergeup", "u", "t")
	if c.Kind != common.ControlKindMergeup {
		t.Errorf("Kind = %v, want mergeup", c.Kind)
	}
	c = NewControl("duplicate", "u", "t")
	if c.Kind != common.ControlKindUnknown || c.Class != "duplicate" {
		t.Errorf("unknown control = %+v", c)
	}
}

func TestNewHost_BadTemplate(t *testing.T) {
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Host.SectionNameTemplate = "{{ .Name"
	snap, err := LoadSnapshot(strings.NewReader(sampleSnapshot))
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if _, err := NewHost(snap, &cfg.Host, "", Viewer{}, zap.NewNop()); err == nil {
		t.Error("expected template parse error")
	}
}
