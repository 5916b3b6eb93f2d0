package extract

import (
	"strings"

	"github.com/shopspring/decimal"
)

// windowSearch finds a product's keyword phrase anywhere in the text and
// scans the surrounding window for a plausible number. When the full phrase
// is absent it retries with a shortened key-term built from the first two
// substantial keywords.
type windowSearch struct {
	prices Range
	window int
}

func (s *windowSearch) Name() string { return "window_search" }

func (s *windowSearch) Extract(text string, pending []Target) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	lower := strings.ToLower(normalizeSpace(text))

	for _, t := range pending {
		phrase := strings.ToLower(strings.Join(t.Keywords, " "))
		if v, ok := s.search(lower, phrase); ok {
			out[t.ID] = v
			continue
		}
		if short := shortKeyTerm(t.Keywords); short != "" && short != phrase {
			if v, ok := s.search(lower, short); ok {
				out[t.ID] = v
			}
		}
	}

	return out
}

func (s *windowSearch) search(lower, phrase string) (decimal.Decimal, bool) {
	from := 0
	for {
		idx := strings.Index(lower[from:], phrase)
		if idx < 0 {
			return decimal.Decimal{}, false
		}
		idx += from

		start := idx - s.window/4
		if start < 0 {
			start = 0
		}
		end := idx + len(phrase) + s.window
		if end > len(lower) {
			end = len(lower)
		}

		if v, ok := FirstPlausible(lower[start:end], s.prices); ok {
			return v, true
		}
		from = idx + len(phrase)
	}
}

// shortKeyTerm joins the first two keywords of at least four characters,
// e.g. ["copper","bright","bars"] -> "copper bright".
func shortKeyTerm(keywords []string) string {
	var words []string
	for _, kw := range keywords {
		if len(kw) >= 4 {
			words = append(words, strings.ToLower(kw))
		}
		if len(words) == 2 {
			break
		}
	}
	return strings.Join(words, " ")
}

// normalizeSpace collapses whitespace runs so phrases match across line
// breaks and layout padding.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
