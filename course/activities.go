package course

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

func (h *Host) toHTML(root *etree.Element) string {
	doc := etree.NewDocument()
	doc.SetRoot(root)
	doc.WriteSettings.CanonicalText = true
	doc.WriteSettings.CanonicalAttrVal = true
	out, err := doc.WriteToString()
	if err != nil {
		h.log.Warn("Unable to serialize markup", zap.Error(err))
		return ""
	}
	return out
}

// ActivityList produces list of section modules. Hidden modules are only
// listed in editing mode.
func (h *Host) ActivityList(s *Section, returnTo int) string {
	var mods []Module
	for _, m := range h.modules[s.Number] {
		if m.Visible || h.viewer.Editing || h.viewer.ViewHiddenSections {
			mods = append(mods, m)
		}
	}
	if len(mods) == 0 {
		return ""
	}

	ul := etree.NewElement("ul")
	ul.CreateAttr("class", "section img-text")
	for _, m := range mods {
		li := ul.CreateElement("li")
		li.CreateAttr("class", fmt.Sprintf("activity %s modtype_%s", m.ModName, m.ModName))
		li.CreateAttr("id", fmt.Sprintf("module-%d", m.ID))

		indent := li.CreateElement("div")
		indent.CreateAttr("class", "mod-indent")

		a := indent.CreateElement("a")
		a.CreateAttr("href", h.link("/mod/"+m.ModName+"/view.php", "id", strconv.FormatInt(m.ID, 10)))
		if !m.Visible {
			a.CreateAttr("class", "dimmed")
		}
		name := a.CreateElement("span")
		name.CreateAttr("class", "instancename")
		name.SetText(m.Name)
	}
	return h.toHTML(ul)
}

func (h *Host) AddActivityControl(s *Section, returnTo int) string {
	if !h.viewer.Editing {
		return ""
	}
	if _, moving := h.MovingSection(); moving {
		return ""
	}
	div := etree.NewElement("div")
	div.CreateAttr("class", "section_add_menus")
	div.CreateAttr("id", fmt.Sprintf("add_menus-section-%d", s.Number))
	a := div.CreateElement("a")
	a.CreateAttr("href", h.link("/course/modedit.php",
		"course", strconv.FormatInt(h.course.ID, 10),
		"section", strconv.Itoa(s.Number),
		"sr", strconv.Itoa(returnTo)))
	a.SetText(h.labels.AddActivity)
	return h.toHTML(div)
}
