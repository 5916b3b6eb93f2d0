package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// anchorPattern is the highest-precision strategy: for each product it
// anchors on the full keyword phrase and takes the first plausible number
// within a bounded window after it.
type anchorPattern struct {
	prices Range
	window int
}

func (s *anchorPattern) Name() string { return "anchor_pattern" }

func (s *anchorPattern) Extract(text string, pending []Target) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)

	for _, t := range pending {
		re, err := anchorRegexp(t.Keywords)
		if err != nil {
			continue
		}
		for _, loc := range re.FindAllStringIndex(text, -1) {
			end := loc[1] + s.window
			if end > len(text) {
				end = len(text)
			}
			if v, ok := FirstPlausible(text[loc[1]:end], s.prices); ok {
				out[t.ID] = v
				break
			}
		}
	}

	return out
}

// anchorRegexp builds a case-insensitive pattern matching the product's
// keywords in order, separated by non-word characters.
func anchorRegexp(keywords []string) (*regexp.Regexp, error) {
	quoted := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		quoted = append(quoted, regexp.QuoteMeta(kw))
	}
	return regexp.Compile(`(?i)\b` + strings.Join(quoted, `\W+`) + `\b`)
}
