package render

import (
	"bytes"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"flexsections/course"
)

// Page wraps outline of section num into complete html document. When
// stylesheet is not empty document links to it.
func (r *Renderer) Page(f course.Format, v Viewer, num, returnTo int, stylesheet string) Fragment {
	html := etree.NewElement("html")
	head := html.CreateElement("head")

	meta := head.CreateElement("meta")
	meta.CreateAttr("charset", "utf-8")

	if len(stylesheet) > 0 {
		link := head.CreateElement("link")
		link.CreateAttr("rel", "stylesheet")
		link.CreateAttr("type", "text/css")
		link.CreateAttr("href", stylesheet)
	}

	titleElem := head.CreateElement("title")
	titleElem.SetText(r.pageTitle(f, num))

	body := html.CreateElement("body")
	body.CreateAttr("id", "page-course-view-flexsections")

	main := body.CreateElement("div")
	main.CreateAttr("class", "course-content")
	if c := f.BackToControl(num); c != nil {
		appendFragment(main, r.Control(*c))
	}
	appendFragment(main, r.Section(f, v, num, returnTo, 0))

	return Fragment{etree.NewDirective("DOCTYPE html"), html}
}

func (r *Renderer) pageTitle(f course.Format, num int) string {
	data := struct {
		Course  *course.Course
		Section string
	}{Course: f.Course()}

	if num != 0 {
		if s, err := f.Section(num); err == nil {
			data.Section = f.SectionName(s)
		}
	}

	buf := new(bytes.Buffer)
	if err := r.title.Execute(buf, data); err != nil {
		r.log.Warn("Unable to expand page title template", zap.Error(err))
		return data.Course.FullName
	}
	return buf.String()
}
