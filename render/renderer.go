// Package render produces markup of the flexsections course outline: nested
// lists of sections with their summaries, activities and editing controls.
package render

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/beevik/etree"
	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	mdhtml "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"

	"flexsections/config"
	"flexsections/course"
)

// Viewer carries capabilities of the user the outline is rendered for.
type Viewer = course.Viewer

type Renderer struct {
	cfg   *config.RenderConfig
	title *template.Template
	md    goldmark.Markdown
	log   *zap.Logger
}

func New(cfg *config.RenderConfig, log *zap.Logger) (*Renderer, error) {
	title, err := template.New(string(config.PageTitleTemplateFieldName)).Funcs(sprig.FuncMap()).Parse(cfg.PageTitleTemplate)
	if err != nil {
		return nil, fmt.Errorf("unable to parse template field %s: %w", config.PageTitleTemplateFieldName, err)
	}
	return &Renderer{
		cfg:   cfg,
		title: title,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			// summaries are authored by course editors and may carry html
			goldmark.WithRendererOptions(mdhtml.WithUnsafe()),
		),
		log: log.Named("render"),
	}, nil
}

// visibleTo decides if section produces any output at all.
func visibleTo(s *course.Section, v Viewer) bool {
	if !s.UserVisible && !s.ShowAvailability {
		return false
	}
	if !s.Visible && !v.ViewHiddenSections {
		return false
	}
	return true
}

// Section renders section num and, when it is expanded or when depth is 0,
// its content and subsections. At depth 0 result is wrapped into top level
// list preceded by cancel moving banners. Sections which are absent or
// invisible to the viewer produce empty fragment.
func (r *Renderer) Section(f course.Format, v Viewer, num, returnTo, depth int) Fragment {
	if depth < 0 {
		r.log.Warn("Negative nesting depth, assuming top level", zap.Int("section", num), zap.Int("depth", depth))
		depth = 0
	}

	s, err := f.Section(num)
	if err != nil {
		r.log.Warn("Unable to get section", zap.Int("section", num), zap.Error(err))
		return nil
	}
	if !visibleTo(s, v) {
		r.log.Debug("Section is not visible", zap.Int("section", num))
		return nil
	}

	li := r.item(f, v, s, returnTo, depth)
	if depth > 0 {
		return Fragment{li}
	}

	var out Fragment
	for _, c := range f.CancelMovingControls() {
		out = append(out, r.Control(c)...)
	}
	ul := newSectionList(0)
	if num != 0 {
		r.appendMoveHere(ul, f.MoveHereControl(s.Parent, num))
	}
	ul.AddChild(li)
	if num != 0 {
		r.appendMoveHere(ul, f.MoveHereControl(s.Parent, 0))
	}
	return append(out, ul)
}

func newSectionList(level int) *etree.Element {
	ul := etree.NewElement("ul")
	ul.CreateAttr("class", fmt.Sprintf("flexsections flexsections-level-%d", level))
	return ul
}

func (r *Renderer) appendMoveHere(ul *etree.Element, c *course.Control) {
	if c != nil {
		appendFragment(ul, r.Control(*c))
	}
}

func (r *Renderer) appendHTML(parent *etree.Element, markup string, s *course.Section) {
	frag, err := parseHTML(markup)
	if err != nil {
		r.log.Warn("Unable to parse section markup", zap.Int("section", s.Number), zap.Error(err))
		return
	}
	appendFragment(parent, frag)
}

func (r *Renderer) item(f course.Format, v Viewer, s *course.Section, returnTo, depth int) *etree.Element {
	movingNum, moving := f.MovingSection()

	classes := []string{"section", "main"}
	if moving && movingNum == s.Number {
		classes = append(classes, "ismoving")
	}
	if f.IsCurrent(s) {
		classes = append(classes, "current")
	}
	if !s.Visible {
		classes = append(classes, "hidden")
	}
	if custom := slug.Make(s.CSSClass); len(custom) > 0 {
		classes = append(classes, custom)
	}

	li := etree.NewElement("li")
	li.CreateAttr("class", strings.Join(classes, " "))
	li.CreateAttr("id", fmt.Sprintf("section-%d", s.Number))

	// expanded/collapsed toggle goes in front of the title
	var (
		toggle   *course.Control
		controls Fragment
	)
	for _, c := range f.SectionEditControls(s, returnTo) {
		if c.Kind.IsToggle() {
			toggle = &c
			continue
		}
		controls = append(controls, r.Control(c)...)
	}
	if len(controls) > 0 {
		div := li.CreateElement("div")
		div.CreateAttr("class", "controls")
		appendFragment(div, controls)
	}

	content := li.CreateElement("div")
	content.CreateAttr("class", "content")

	if name := f.SectionName(s); s.Number != 0 && len(name) > 0 {
		h3 := content.CreateElement("h3")
		h3.CreateAttr("class", "sectionname")
		if toggle != nil {
			appendFragment(h3, r.Control(*toggle))
		}
		href := ""
		if depth > 0 && !moving && s.UserVisible {
			href = f.SectionURL(s)
		}
		if len(href) > 0 {
			a := h3.CreateElement("a")
			a.CreateAttr("href", href)
			a.SetText(name)
		} else {
			h3.CreateText(name)
		}
	}

	summary := content.CreateElement("div")
	if frag := r.Summary(f.Course(), s); len(frag) > 0 {
		summary.CreateAttr("class", "summary")
		appendFragment(summary, frag)
	} else {
		summary.CreateAttr("class", "summary nosummary")
	}

	if !s.Available && len(s.AvailableInfo) > 0 {
		info := content.CreateElement("div")
		info.CreateAttr("class", "availabilityinfo")
		r.appendHTML(info, s.AvailableInfo, s)
	}

	if !s.UserVisible || (!s.Expanded() && depth > 0) {
		return li
	}

	r.appendHTML(content, f.ActivityList(s, returnTo), s)
	if v.Editing {
		if !f.HasActivities(s.Number) {
			// drop target for activities
			empty := content.CreateElement("ul")
			empty.CreateAttr("class", "section img-text")
		}
		r.appendHTML(content, f.AddActivityControl(s, returnTo), s)
	}

	children := f.Subsections(s.Number)
	if len(children) > 0 || moving {
		list := newSectionList(depth + 1)
		for _, child := range children {
			r.appendMoveHere(list, f.MoveHereControl(s.Number, child))
			appendFragment(list, r.Section(f, v, child, returnTo, depth+1))
		}
		r.appendMoveHere(list, f.MoveHereControl(s.Number, 0))
		content.AddChild(list)
	}

	if c := f.AddSectionControl(s.Number); c != nil {
		appendFragment(content, r.Control(*c))
	}
	return li
}
