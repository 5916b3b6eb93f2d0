package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestLedger_UpsertKeepsSortedUniqueDates(t *testing.T) {
	l := &Ledger{ProductID: "copper_rods"}
	l.Upsert(Entry{Date: day("2025-05-14"), Rate: dec("945500")})
	l.Upsert(Entry{Date: day("2025-05-12"), Rate: dec("940000")})
	l.Upsert(Entry{Date: day("2025-05-13"), Rate: dec("942000")})

	require.Len(t, l.Entries, 3)
	assert.Equal(t, day("2025-05-12"), l.Entries[0].Date)
	assert.Equal(t, day("2025-05-13"), l.Entries[1].Date)
	assert.Equal(t, day("2025-05-14"), l.Entries[2].Date)

	// Same-date upsert overwrites in place, never duplicates.
	l.Upsert(Entry{Date: day("2025-05-13"), Rate: dec("943500")})
	require.Len(t, l.Entries, 3)
	assert.True(t, l.Entries[1].Rate.Equal(dec("943500")))
}

func TestLedger_Get(t *testing.T) {
	l := &Ledger{}
	l.Upsert(Entry{Date: day("2025-05-14"), Rate: dec("945500")})

	e, ok := l.Get(day("2025-05-14"))
	require.True(t, ok)
	assert.True(t, e.Rate.Equal(dec("945500")))

	_, ok = l.Get(day("2025-05-15"))
	assert.False(t, ok)

	// Timestamps normalize to the calendar date.
	_, ok = l.Get(day("2025-05-14").Add(9 * time.Hour))
	assert.True(t, ok)
}

func TestLedger_LastBefore(t *testing.T) {
	l := &Ledger{}
	l.Upsert(Entry{Date: day("2025-05-12"), Rate: dec("940000")})
	l.Upsert(Entry{Date: day("2025-05-14"), Rate: dec("945500")})

	t.Run("strictly before", func(t *testing.T) {
		e, ok := l.LastBefore(day("2025-05-14"))
		require.True(t, ok)
		assert.Equal(t, day("2025-05-12"), e.Date)
	})

	t.Run("after all", func(t *testing.T) {
		e, ok := l.LastBefore(day("2025-06-01"))
		require.True(t, ok)
		assert.Equal(t, day("2025-05-14"), e.Date)
	})

	t.Run("before all", func(t *testing.T) {
		_, ok := l.LastBefore(day("2025-05-01"))
		assert.False(t, ok)
	})
}

func TestDay(t *testing.T) {
	ts := time.Date(2025, 5, 14, 18, 30, 12, 0, time.UTC)
	assert.Equal(t, day("2025-05-14"), Day(ts))
}
