// Package ledger maintains the per-product, date-indexed price series and
// merges each day's extracted readings into them.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Provenance records how a ledger entry's rate was determined.
type Provenance string

const (
	// ProvenanceExtracted marks a rate read directly from the document.
	ProvenanceExtracted Provenance = "extracted"
	// ProvenanceForwardFilled marks a rate carried forward from the most
	// recent prior entry.
	ProvenanceForwardFilled Provenance = "forward_filled"
	// ProvenanceFallback marks the configured last-resort default, used only
	// when a product has no history at all.
	ProvenanceFallback Provenance = "fallback_default"
)

// Entry is one row of a product's persisted series.
type Entry struct {
	Date        time.Time
	Rate        decimal.Decimal
	Provenance  Provenance // empty for rows loaded from disk
	Description string
}

// Ledger is the full ordered series for one product. Dates are unique and
// ascending after every mutation.
type Ledger struct {
	ProductID string
	Entries   []Entry
}

// Get returns the entry for an exact date.
func (l *Ledger) Get(date time.Time) (Entry, bool) {
	day := Day(date)
	for _, e := range l.Entries {
		if e.Date.Equal(day) {
			return e, true
		}
	}
	return Entry{}, false
}

// LastBefore returns the most recent entry dated strictly before date.
func (l *Ledger) LastBefore(date time.Time) (Entry, bool) {
	day := Day(date)
	var best Entry
	found := false
	for _, e := range l.Entries {
		if e.Date.Before(day) && (!found || e.Date.After(best.Date)) {
			best = e
			found = true
		}
	}
	return best, found
}

// Upsert inserts the entry or overwrites the row with the same date, then
// re-sorts ascending. The row count grows only for genuinely new dates.
func (l *Ledger) Upsert(e Entry) {
	e.Date = Day(e.Date)
	for i := range l.Entries {
		if l.Entries[i].Date.Equal(e.Date) {
			l.Entries[i] = e
			return
		}
	}
	l.Entries = append(l.Entries, e)
	sort.Slice(l.Entries, func(i, j int) bool {
		return l.Entries[i].Date.Before(l.Entries[j].Date)
	})
}

// Last returns the most recent entry.
func (l *Ledger) Last() (Entry, bool) {
	if len(l.Entries) == 0 {
		return Entry{}, false
	}
	return l.Entries[len(l.Entries)-1], true
}

// Day normalizes a timestamp to its UTC calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
