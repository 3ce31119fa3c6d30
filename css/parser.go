// Package css inspects stylesheets linked from generated pages.
package css

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

var classRe = regexp.MustCompile(`\.(-?[_a-zA-Z][_a-zA-Z0-9-]*)`)

// Parser parses CSS stylesheets into rules.
type Parser struct {
	log *zap.Logger
}

func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text. Rules inside @media blocks are kept together with
// top level ones. Parse never fails, problems are collected in Warnings.
func (p *Parser) Parse(data []byte, source string) *Stylesheet {
	sheet := &Stylesheet{}
	p.log.Debug("Parsing CSS", zap.String("source", source), zap.Int("bytes", len(data)))

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				sheet.Warnings = append(sheet.Warnings, err.Error())
				p.log.Debug("CSS parse error", zap.String("source", source), zap.Error(err))
			}
			return sheet

		case css.AtRuleGrammar:
			if string(data) == "@import" {
				if url := extractURL(parser.Values()); url != "" {
					sheet.Imports = append(sheet.Imports, url)
				}
			}

		case css.BeginAtRuleGrammar:
			if string(data) != "@media" {
				p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))
				skipBlock(parser)
			}

		case css.BeginRulesetGrammar, css.QualifiedRuleGrammar:
			rule := Rule{Selectors: splitSelectors(data, parser.Values())}
			if gt == css.BeginRulesetGrammar {
				rule.URLs = declarationURLs(parser)
			}
			sheet.Rules = append(sheet.Rules, rule)
		}
	}
}

func splitSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		if s = strings.TrimSpace(s); s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// declarationURLs consumes declarations up to the end of ruleset and returns
// urls they reference.
func declarationURLs(parser *css.Parser) []string {
	var urls []string
	for {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return urls
		case css.DeclarationGrammar:
			for _, t := range parser.Values() {
				if t.TokenType == css.URLToken {
					if url := extractURL([]css.Token{t}); url != "" {
						urls = append(urls, url)
					}
				}
			}
		}
	}
}

// extractURL handles `"url"`, `url("url")` and `url(url)` forms.
func extractURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			s := strings.TrimSuffix(strings.TrimPrefix(string(t.Data), "url("), ")")
			return unquote(strings.TrimSpace(s))
		}
	}
	return ""
}

func skipBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
