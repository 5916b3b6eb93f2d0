package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// columnSplitRe splits layout-preserved text into cells on runs of two or
// more spaces, the column boundaries pdftotext -layout emits.
var columnSplitRe = regexp.MustCompile(`\s{2,}|\t+`)

// priceVocabulary identifies a price column by header or content.
var priceVocabulary = []string{"price", "rate", "rs", "₹", "inr", "amount", "basic"}

// tableScan parses the document into candidate tabular rows and matches
// products by row keywords or row-leading ordinal.
type tableScan struct {
	prices Range
}

func (s *tableScan) Name() string { return "table_scan" }

func (s *tableScan) Extract(text string, pending []Target) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)

	rows, priceCol := parseRows(text)
	if len(rows) == 0 {
		return out
	}

	for _, t := range pending {
		for _, row := range rows {
			if !rowMatches(row, t) {
				continue
			}
			if v, ok := s.rowPrice(row, priceCol); ok {
				out[t.ID] = v
				break
			}
		}
	}

	return out
}

// tableRow is one candidate table row.
type tableRow struct {
	cells []string
	lower string // full row text, lowercased
}

// parseRows extracts multi-cell lines and locates the price column from the
// first header-like row. Returns -1 when no header names a price column.
func parseRows(text string) ([]tableRow, int) {
	priceCol := -1
	var rows []tableRow

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		cells := columnSplitRe.Split(trimmed, -1)
		if len(cells) < 2 {
			continue
		}

		if priceCol < 0 {
			if col := headerPriceColumn(cells); col >= 0 {
				priceCol = col
				continue
			}
		}

		rows = append(rows, tableRow{cells: cells, lower: strings.ToLower(trimmed)})
	}

	return rows, priceCol
}

// headerPriceColumn returns the index of a header cell that matches the
// price vocabulary without containing digits, or -1.
func headerPriceColumn(cells []string) int {
	for i, cell := range cells {
		lower := strings.ToLower(cell)
		if strings.ContainsAny(lower, "0123456789") {
			continue
		}
		for _, vocab := range priceVocabulary {
			if strings.Contains(lower, vocab) {
				return i
			}
		}
	}
	return -1
}

// rowMatches reports whether row belongs to the target product: either every
// keyword appears in the row, or the row leads with the product's ordinal
// and contains at least one keyword.
func rowMatches(row tableRow, t Target) bool {
	all := true
	any := false
	for _, kw := range t.Keywords {
		if strings.Contains(row.lower, strings.ToLower(kw)) {
			any = true
		} else {
			all = false
		}
	}
	if all {
		return true
	}

	if !any {
		return false
	}
	lead := strings.TrimSuffix(strings.TrimSpace(row.cells[0]), ".")
	if n, err := strconv.Atoi(lead); err == nil && n == t.Ordinal {
		return true
	}
	return false
}

// rowPrice locates the row's price: the identified price column first, then
// the last cell, then the largest plausible number anywhere in the row.
func (s *tableScan) rowPrice(row tableRow, priceCol int) (decimal.Decimal, bool) {
	if priceCol >= 0 && priceCol < len(row.cells) {
		if v, ok := ParseNumber(row.cells[priceCol]); ok && s.prices.Contains(v) {
			return v, true
		}
	}

	if v, ok := ParseNumber(row.cells[len(row.cells)-1]); ok && s.prices.Contains(v) {
		return v, true
	}

	return LargestPlausible(row.lower, s.prices)
}
