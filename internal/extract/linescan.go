package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// currencyTokenRe marks a line as price-bearing: an explicit currency mark
// or a comma-grouped figure.
var currencyTokenRe = regexp.MustCompile(`(?i)₹|\brs\.?\s*[0-9]|\binr\b|[0-9],[0-9]{2,3}\b`)

// looseLineScan is the last resort: every line carrying a currency-style
// token is offered to any product whose keywords intersect the line's
// tokens. Lowest precision, only ever sees products everything else missed.
type looseLineScan struct {
	prices Range
}

func (s *looseLineScan) Name() string { return "loose_line_scan" }

func (s *looseLineScan) Extract(text string, pending []Target) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)

	for _, line := range strings.Split(text, "\n") {
		if !currencyTokenRe.MatchString(line) {
			continue
		}

		tokens := tokenSet(line)
		for _, t := range pending {
			if _, done := out[t.ID]; done {
				continue
			}
			if !keywordsIntersect(t.Keywords, tokens) {
				continue
			}
			if v, ok := LargestPlausible(line, s.prices); ok {
				out[t.ID] = v
			}
		}
	}

	return out
}

func tokenSet(line string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(line))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[strings.Trim(f, ".,:;()")] = struct{}{}
	}
	return set
}

func keywordsIntersect(keywords []string, tokens map[string]struct{}) bool {
	for _, kw := range keywords {
		if _, ok := tokens[strings.ToLower(kw)]; ok {
			return true
		}
	}
	return false
}
