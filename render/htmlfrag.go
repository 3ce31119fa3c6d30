package render

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// parseHTML parses markup produced by the course format or summary
// formatters into fragment. Input is treated as content of a div.
func parseHTML(markup string) (Fragment, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, nil
	}
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("unable to parse html: %w", err)
	}
	var f Fragment
	for _, n := range nodes {
		if t := convertNode(n); t != nil {
			f = append(f, t)
		}
	}
	return f, nil
}

func convertNode(n *html.Node) etree.Token {
	switch n.Type {
	case html.TextNode:
		return etree.NewText(n.Data)
	case html.CommentNode:
		return etree.NewComment(n.Data)
	case html.ElementNode:
		e := etree.NewElement(n.Data)
		for _, a := range n.Attr {
			key := a.Key
			if len(a.Namespace) > 0 {
				key = a.Namespace + ":" + a.Key
			}
			e.CreateAttr(key, a.Val)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if t := convertNode(c); t != nil {
				e.AddChild(t)
			}
		}
		return e
	default:
		// doctype and stray document nodes have no place in a fragment
		return nil
	}
}
