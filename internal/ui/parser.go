package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ParseCSS parses a small stylesheet: selectors .class or #id (comma lists allowed) and blocks of
// "key: value;". Rules with any other selector and all @rules are skipped.
// Later rules override earlier for the same selector.
func ParseCSS(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	p := css.NewParser(parse.NewInputString(content), false)
	var (
		selectors []string
		props     map[string]string
		depth     int // nesting inside skipped @rule blocks
	)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && err != io.EOF {
				return sheet, fmt.Errorf("ui: css: %w", err)
			}
			return sheet, nil
		case css.BeginAtRuleGrammar:
			depth++
		case css.EndAtRuleGrammar:
			if depth > 0 {
				depth--
			}
		case css.BeginRulesetGrammar:
			if depth > 0 {
				selectors = nil
				continue
			}
			selectors = parseSelectors(p.Values())
			props = make(map[string]string)
		case css.DeclarationGrammar:
			if selectors == nil {
				continue
			}
			props[strings.ToLower(string(data))] = joinValues(p.Values())
		case css.EndRulesetGrammar:
			for _, sel := range selectors {
				copied := make(map[string]string, len(props))
				for k, v := range props {
					copied[k] = v
				}
				sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: copied})
			}
			selectors, props = nil, nil
		}
	}
}

// parseSelectors splits the prelude on commas and keeps simple .class / #id selectors.
func parseSelectors(vals []css.Token) []string {
	var out []string
	for _, part := range strings.Split(joinValues(vals), ",") {
		sel := strings.TrimSpace(part)
		if len(sel) < 2 || (sel[0] != '.' && sel[0] != '#') {
			continue
		}
		if strings.ContainsAny(sel[1:], " .#>+~:[") {
			continue
		}
		out = append(out, sel)
	}
	return out
}

func joinValues(vals []css.Token) string {
	var b strings.Builder
	for _, v := range vals {
		b.Write(v.Data)
	}
	return strings.TrimSpace(b.String())
}
