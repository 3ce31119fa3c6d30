package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"flexsections/common"
	"flexsections/course"
)

// placeholder for the base URL of files attached to the section summary
const pluginFilePlaceholder = "@@PLUGINFILE@@"

func (r *Renderer) pluginFileURL(c *course.Course, s *course.Section) string {
	return fmt.Sprintf("%s/pluginfile.php/%d/course/section/%d",
		strings.TrimSuffix(r.cfg.WWWRoot, "/"), c.ContextID, s.ID)
}

// Summary formats section summary according to its format. Whitespace only
// summary produces empty fragment.
func (r *Renderer) Summary(c *course.Course, s *course.Section) Fragment {
	text := s.Summary
	if len(strings.TrimSpace(text)) == 0 {
		return nil
	}
	text = strings.ReplaceAll(text, pluginFilePlaceholder, r.pluginFileURL(c, s))

	format := r.cfg.Summary.DefaultFormat
	if s.SummaryFormat != nil {
		format = *s.SummaryFormat
	}

	var (
		frag Fragment
		err  error
	)
	switch format {
	case common.SummaryFormatPlain:
		frag = plainText(text)
	case common.SummaryFormatMarkdown:
		var buf bytes.Buffer
		if err = r.md.Convert([]byte(text), &buf); err == nil {
			frag, err = parseHTML(buf.String())
		}
	default:
		frag, err = parseHTML(text)
	}
	if err != nil {
		r.log.Warn("Unable to format summary, using plain text", zap.Int("section", s.Number), zap.Stringer("format", format), zap.Error(err))
		frag = plainText(text)
	}
	if len(frag) == 0 {
		return nil
	}

	if !r.cfg.Summary.OverflowDiv {
		return frag
	}
	div := etree.NewElement("div")
	div.CreateAttr("class", "no-overflow")
	appendFragment(div, frag)
	return Fragment{div}
}

// plainText keeps text as is, line breaks become <br>.
func plainText(text string) Fragment {
	var f Fragment
	for i, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if i > 0 {
			f = append(f, etree.NewElement("br"))
		}
		if len(line) > 0 {
			f = append(f, etree.NewText(line))
		}
	}
	return f
}
