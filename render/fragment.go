package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/beevik/etree"
)

// Fragment is a sequence of sibling markup nodes. Fragments returned by the
// renderer own their tokens: appending fragment to an element moves tokens
// there.
type Fragment []etree.Token

// void elements never have content or end tag in html
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// content of raw text elements is never escaped in html
var rawTextElements = map[string]bool{
	"script": true,
	"style":  true,
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	`"`, "&quot;",
	"\t", "&#x9;",
	"\n", "&#xA;",
	"\r", "&#xD;",
)

func writeSettings() etree.WriteSettings {
	return etree.WriteSettings{
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}
}

// appendFragment moves all fragment tokens to the end of parent.
func appendFragment(parent *etree.Element, f Fragment) {
	for _, t := range f {
		parent.AddChild(t)
	}
}

// closeEmpty makes sure empty non void elements are written with end tag, so
// browsers do not treat "<div/>" as opening tag.
func closeEmpty(e *etree.Element) {
	if len(e.Child) == 0 {
		if !voidElements[strings.ToLower(e.Tag)] {
			e.AddChild(etree.NewText(""))
		}
		return
	}
	for _, child := range e.ChildElements() {
		closeEmpty(child)
	}
}

// WriteTo serializes fragment as html.
func (f Fragment) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	bw := bufio.NewWriter(cw)
	settings := writeSettings()
	for _, t := range f {
		if e, ok := t.(*etree.Element); ok {
			closeEmpty(e)
		}
		writeToken(bw, t, &settings)
	}
	err := bw.Flush()
	return cw.n, err
}

// writeToken serializes token with etree unless raw text element is found
// somewhere inside it.
func writeToken(w *bufio.Writer, t etree.Token, s *etree.WriteSettings) {
	e, ok := t.(*etree.Element)
	if !ok || !hasRawText(e) {
		t.WriteTo(w, s)
		return
	}

	tag := e.FullTag()
	w.WriteByte('<')
	w.WriteString(tag)
	for _, a := range e.Attr {
		key := a.Key
		if len(a.Space) > 0 {
			key = a.Space + ":" + a.Key
		}
		w.WriteString(" " + key + `="`)
		attrEscaper.WriteString(w, a.Value)
		w.WriteByte('"')
	}
	w.WriteByte('>')

	raw := rawTextElements[strings.ToLower(e.Tag)]
	for _, c := range e.Child {
		if cd, ok := c.(*etree.CharData); ok && raw {
			w.WriteString(cd.Data)
			continue
		}
		writeToken(w, c, s)
	}
	w.WriteString("</" + tag + ">")
}

func hasRawText(e *etree.Element) bool {
	if rawTextElements[strings.ToLower(e.Tag)] {
		return true
	}
	for _, c := range e.ChildElements() {
		if hasRawText(c) {
			return true
		}
	}
	return false
}

func (f Fragment) String() string {
	var b strings.Builder
	_, _ = f.WriteTo(&b)
	return b.String()
}

type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
