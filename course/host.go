package course

import (
	"bytes"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"go.uber.org/zap"

	"flexsections/common"
	"flexsections/config"
)

// Viewer describes the user the outline is rendered for.
type Viewer struct {
	Editing            bool
	ViewHiddenSections bool
}

// Host is a Format backed by validated Snapshot.
type Host struct {
	course   Course
	moving   int
	sections map[int]*Section
	children map[int][]int
	modules  map[int][]Module
	viewer   Viewer
	wwwroot  string
	labels   config.LabelsConfig
	name     *template.Template
	backTo   *template.Template
	log      *zap.Logger
}

// NewHost prepares snapshot for rendering. Snapshot must be valid, see
// Snapshot.Validate.
func NewHost(snap *Snapshot, cfg *config.HostConfig, wwwroot string, viewer Viewer, log *zap.Logger) (*Host, error) {
	h := &Host{
		course:   snap.Course,
		moving:   snap.MovingSection,
		sections: make(map[int]*Section, len(snap.Sections)),
		children: make(map[int][]int),
		modules:  make(map[int][]Module),
		viewer:   viewer,
		wwwroot:  wwwroot,
		labels:   cfg.Labels,
		log:      log.Named("host"),
	}

	var err error
	if h.name, err = template.New(string(config.SectionNameTemplateFieldName)).Funcs(sprig.FuncMap()).Parse(cfg.SectionNameTemplate); err != nil {
		return nil, fmt.Errorf("unable to parse template field %s: %w", config.SectionNameTemplateFieldName, err)
	}
	if h.backTo, err = template.New(string(config.BackToTemplateFieldName)).Funcs(sprig.FuncMap()).Parse(cfg.BackToTemplate); err != nil {
		return nil, fmt.Errorf("unable to parse template field %s: %w", config.BackToTemplateFieldName, err)
	}

	for _, rec := range snap.Sections {
		h.sections[rec.Number] = h.resolve(&rec)
		if rec.Number != 0 {
			h.children[rec.Parent] = append(h.children[rec.Parent], rec.Number)
		}
	}
	for parent, nums := range h.children {
		slices.SortFunc(nums, func(a, b int) int {
			if d := h.sections[a].Order - h.sections[b].Order; d != 0 {
				return d
			}
			return a - b
		})
		h.children[parent] = nums
	}
	for _, rec := range snap.Modules {
		h.modules[rec.Section] = append(h.modules[rec.Section], Module{
			ID:      rec.ID,
			ModName: rec.ModName,
			Name:    rec.Name,
			Section: rec.Section,
			Visible: boolOr(rec.Visible, true),
		})
	}
	return h, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// resolve derives viewer specific flags which source did not supply.
func (h *Host) resolve(rec *SectionRecord) *Section {
	s := &Section{
		ID:               rec.ID,
		CourseID:         h.course.ID,
		Number:           rec.Number,
		Parent:           rec.Parent,
		Order:            rec.Order,
		Name:             rec.Name,
		Visible:          boolOr(rec.Visible, true),
		Available:        boolOr(rec.Available, true),
		ShowAvailability: rec.ShowAvailability,
		AvailableInfo:    rec.AvailableInfo,
		State:            rec.State,
		Summary:          rec.Summary,
		SummaryFormat:    rec.SummaryFormat,
		CSSClass:         rec.CSSClass,
	}
	if rec.Number == 0 {
		s.Parent = 0
	}
	s.UserVisible = boolOr(rec.UserVisible, (s.Visible && s.Available) || h.viewer.ViewHiddenSections)
	if !s.Available && len(s.AvailableInfo) == 0 {
		s.AvailableInfo = h.labels.NotAvailable
	}
	return s
}

func (h *Host) Course() *Course {
	return &h.course
}

func (h *Host) Section(num int) (*Section, error) {
	s, ok := h.sections[num]
	if !ok {
		return nil, fmt.Errorf("section %d: %w", num, ErrNoSection)
	}
	return s, nil
}

func (h *Host) Subsections(num int) []int {
	return h.children[num]
}

func (h *Host) MovingSection() (int, bool) {
	if !h.viewer.Editing || h.moving == 0 {
		return 0, false
	}
	return h.moving, true
}

func (h *Host) IsCurrent(s *Section) bool {
	return s.Number != 0 && s.Number == h.course.Marker
}

func (h *Host) SectionName(s *Section) string {
	buf := new(bytes.Buffer)
	err := h.name.Execute(buf, struct {
		Number int
		Name   string
	}{Number: s.Number, Name: s.Name})
	if err != nil {
		h.log.Warn("Unable to expand section name template", zap.Int("section", s.Number), zap.Error(err))
		if len(s.Name) > 0 {
			return s.Name
		}
		return strconv.Itoa(s.Number)
	}
	return buf.String()
}

// link builds URL under site root, params are key/value pairs.
func (h *Host) link(path string, params ...string) string {
	v := url.Values{}
	for i := 0; i+1 < len(params); i += 2 {
		v.Set(params[i], params[i+1])
	}
	u := h.wwwroot + path
	if len(v) > 0 {
		u += "?" + v.Encode()
	}
	return u
}

func (h *Host) courseLink(params ...string) string {
	return h.link("/course/view.php", append([]string{"id", strconv.FormatInt(h.course.ID, 10)}, params...)...)
}

func (h *Host) SectionURL(s *Section) string {
	if s.Number == 0 {
		return h.courseLink()
	}
	return h.courseLink("section", strconv.Itoa(s.Number))
}

// inMovingSubtree reports whether section is the one being moved or one of
// its descendants.
func (h *Host) inMovingSubtree(num int) bool {
	for num != 0 {
		if num == h.moving {
			return true
		}
		s, ok := h.sections[num]
		if !ok {
			return false
		}
		num = s.Parent
	}
	return false
}

// SectionEditControls returns controls for section. Viewers who are not
// editing only get the expanded/collapsed toggle and only for sections which
// have something to collapse.
func (h *Host) SectionEditControls(s *Section, returnTo int) []Control {
	if s.Number == 0 {
		return nil
	}
	if _, moving := h.MovingSection(); moving {
		return nil
	}

	num := strconv.Itoa(s.Number)
	sr := strconv.Itoa(returnTo)

	toggle := newControl(common.ControlKindCollapsed, h.courseLink("switchcollapsed", num, "sr", sr), h.labels.Expand)
	if s.Expanded() {
		toggle = newControl(common.ControlKindExpanded, h.courseLink("switchcollapsed", num, "sr", sr), h.labels.Collapse)
	}
	if !h.viewer.Editing {
		if len(h.children[s.Number]) == 0 && len(h.modules[s.Number]) == 0 {
			return nil
		}
		return []Control{toggle}
	}

	var controls []Control
	if h.course.Marker == s.Number {
		controls = append(controls, newControl(common.ControlKindMarked, h.courseLink("marker", "0", "sr", sr), h.labels.Marked))
	} else {
		controls = append(controls, newControl(common.ControlKindMarker, h.courseLink("marker", num, "sr", sr), h.labels.Marker))
	}
	controls = append(controls,
		newControl(common.ControlKindMove, h.courseLink("moving", num, "sr", sr), h.labels.Move),
		newControl(common.ControlKindSettings, h.link("/course/editsection.php", "id", strconv.FormatInt(s.ID, 10), "sr", sr), h.labels.Settings),
	)
	if s.Visible {
		controls = append(controls, newControl(common.ControlKindHide, h.courseLink("hide", num, "sr", sr), h.labels.Hide))
	} else {
		controls = append(controls, newControl(common.ControlKindShow, h.courseLink("show", num, "sr", sr), h.labels.Show))
	}
	if s.Parent != 0 {
		controls = append(controls, newControl(common.ControlKindMergeup, h.courseLink("mergeup", num, "sr", sr), h.labels.MergeUp))
	}
	return append(controls, toggle)
}

func (h *Host) CancelMovingControls() []Control {
	moving, ok := h.MovingSection()
	if !ok {
		return nil
	}
	text := h.labels.CancelMoving
	if s, err := h.Section(moving); err == nil {
		text += ": " + h.SectionName(s)
	}
	return []Control{newControl(common.ControlKindCancelmovingsection, h.courseLink(), text)}
}

func (h *Host) AddSectionControl(num int) *Control {
	if !h.viewer.Editing {
		return nil
	}
	if _, moving := h.MovingSection(); moving {
		return nil
	}
	c := newControl(common.ControlKindAddsection, h.courseLink("addchildsection", strconv.Itoa(num)), h.labels.AddSection)
	return &c
}

// MoveHereControl returns target for placing moving section under parent in
// front of section before (0 for the end of the list). Targets inside the
// moving subtree are not offered, slots next to the moving section are.
func (h *Host) MoveHereControl(parent, before int) *Control {
	moving, ok := h.MovingSection()
	if !ok || h.inMovingSubtree(parent) {
		return nil
	}
	params := []string{"moveto", strconv.Itoa(moving), "parent", strconv.Itoa(parent)}
	if before != 0 {
		params = append(params, "before", strconv.Itoa(before))
	}
	c := newControl(common.ControlKindMovehere, h.courseLink(params...), h.labels.MoveHere)
	return &c
}

func (h *Host) BackToControl(num int) *Control {
	s, err := h.Section(num)
	if err != nil || num == 0 {
		return nil
	}
	parent, err := h.Section(s.Parent)
	if err != nil {
		return nil
	}
	buf := new(bytes.Buffer)
	if err := h.backTo.Execute(buf, struct{ Name string }{Name: h.SectionName(parent)}); err != nil {
		h.log.Warn("Unable to expand back to template", zap.Int("section", num), zap.Error(err))
		return nil
	}
	c := newControl(common.ControlKindBackto, h.SectionURL(parent), buf.String())
	return &c
}

func (h *Host) HasActivities(num int) bool {
	return len(h.modules[num]) > 0
}
