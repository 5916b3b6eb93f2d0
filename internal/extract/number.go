// Package extract pulls product prices out of loosely structured document
// text through an ordered cascade of strategies.
package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// numberTokenRe matches currency-ish numeric tokens, including Indian
// (1,23,456.78) and Western (123,456.78) digit grouping.
var numberTokenRe = regexp.MustCompile(`[0-9][0-9,]*(?:\.[0-9]+)?`)

// Range bounds the plausible price magnitude. Numbers outside it (page
// numbers, ordinals, years inside dates) are never treated as prices.
type Range struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// NewRange builds a Range from float bounds.
func NewRange(min, max float64) Range {
	return Range{
		Min: decimal.NewFromFloat(min),
		Max: decimal.NewFromFloat(max),
	}
}

// Contains reports whether v falls inside the range.
func (r Range) Contains(v decimal.Decimal) bool {
	return v.GreaterThanOrEqual(r.Min) && v.LessThanOrEqual(r.Max)
}

// ParseNumber parses a single numeric token, tolerating currency prefixes
// and comma grouping. Returns false for empty or malformed tokens.
func ParseNumber(token string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(token)
	for _, prefix := range []string{"₹", "rs.", "rs", "inr"} {
		if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
			s = strings.TrimSpace(s[len(prefix):])
			break
		}
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return decimal.Decimal{}, false
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return v, true
}

// FirstPlausible returns the first number in s that falls inside r,
// skipping tokens that are fragments of a date.
func FirstPlausible(s string, r Range) (decimal.Decimal, bool) {
	for _, loc := range numberTokenRe.FindAllStringIndex(s, -1) {
		if isDateFragment(s, loc[0], loc[1]) {
			continue
		}
		v, ok := ParseNumber(s[loc[0]:loc[1]])
		if ok && r.Contains(v) {
			return v, true
		}
	}
	return decimal.Decimal{}, false
}

// LargestPlausible returns the largest number in s that falls inside r.
// Price sheets often list sizes and quantities alongside the rate; the rate
// is reliably the largest in-range figure on the line.
func LargestPlausible(s string, r Range) (decimal.Decimal, bool) {
	var best decimal.Decimal
	found := false
	for _, loc := range numberTokenRe.FindAllStringIndex(s, -1) {
		if isDateFragment(s, loc[0], loc[1]) {
			continue
		}
		v, ok := ParseNumber(s[loc[0]:loc[1]])
		if !ok || !r.Contains(v) {
			continue
		}
		if !found || v.GreaterThan(best) {
			best = v
			found = true
		}
	}
	return best, found
}

// isDateFragment reports whether the token at [start,end) is glued to a date
// separator (14-05-2025, 14/05/2025), which disqualifies it as a price.
func isDateFragment(s string, start, end int) bool {
	if start > 0 {
		c := s[start-1]
		if (c == '/' || c == '-') && start > 1 && isDigit(s[start-2]) {
			return true
		}
	}
	if end < len(s) {
		c := s[end]
		if (c == '/' || c == '-') && end+1 < len(s) && isDigit(s[end+1]) {
			return true
		}
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
