package render

import (
	"github.com/beevik/etree"

	"flexsections/common"
	"flexsections/course"
)

// Control produces markup for a single control. Every kind has its own
// markup, controls of unknown kind become plain links.
func (r *Renderer) Control(c course.Control) Fragment {
	kind := c.Kind.String()

	switch c.Kind {
	case common.ControlKindMovehere:
		li := etree.NewElement("li")
		li.CreateAttr("class", "movehere")
		a := li.CreateElement("a")
		a.CreateAttr("class", kind)
		a.CreateAttr("href", c.URL)
		a.AddChild(r.icon("movehere", coreComponent, c.Text, "movetarget"))
		return Fragment{li}

	case common.ControlKindCancelmovingsection, common.ControlKindCancelmovingactivity:
		div := etree.NewElement("div")
		div.CreateAttr("class", "cancelmoving "+kind)
		a := div.CreateElement("a")
		a.CreateAttr("href", c.URL)
		a.SetText(c.Text)
		return Fragment{div}

	case common.ControlKindAddsection:
		div := etree.NewElement("div")
		div.CreateAttr("class", "mdl-right")
		a := div.CreateElement("a")
		a.CreateAttr("class", kind)
		a.CreateAttr("href", c.URL)
		a.AddChild(r.icon("t/add", coreComponent, "", "iconsmall"))
		span := a.CreateElement("span")
		span.CreateAttr("class", kind+"-text")
		span.SetText(c.Text)
		return Fragment{div}

	case common.ControlKindBackto:
		div := etree.NewElement("div")
		div.CreateAttr("class", "header "+kind)
		a := div.CreateElement("a")
		a.CreateAttr("href", c.URL)
		a.AddChild(r.icon("t/up", coreComponent, "", "icon"))
		span := a.CreateElement("span")
		span.CreateAttr("class", kind+"-text")
		span.SetText(c.Text)
		return Fragment{div}

	case common.ControlKindSettings, common.ControlKindMarker, common.ControlKindMarked,
		common.ControlKindHide, common.ControlKindShow:
		return r.iconLink(c, "i/"+kind, coreComponent)

	case common.ControlKindMove, common.ControlKindExpanded, common.ControlKindCollapsed:
		return r.iconLink(c, "t/"+kind, coreComponent)

	case common.ControlKindMergeup:
		return r.iconLink(c, "mergeup", formatComponent)

	case common.ControlKindUnknown:
		return plainLink(c)
	}
	return plainLink(c)
}

func (r *Renderer) iconLink(c course.Control, icon, component string) Fragment {
	a := etree.NewElement("a")
	a.CreateAttr("class", c.Kind.String())
	a.CreateAttr("href", c.URL)
	a.AddChild(r.icon(icon, component, c.Text, "iconsmall"))
	return Fragment{a}
}

func plainLink(c course.Control) Fragment {
	a := etree.NewElement("a")
	if len(c.Class) > 0 {
		a.CreateAttr("class", c.Class)
	}
	a.CreateAttr("href", c.URL)
	a.SetText(c.Text)
	return Fragment{etree.NewText(" "), a}
}
