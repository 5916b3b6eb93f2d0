package source

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "https://www.hindalco.com"

func TestCandidateURLs_Canonical(t *testing.T) {
	date := time.Date(2025, 5, 14, 0, 0, 0, 0, time.UTC)
	urls := CandidateURLs(base, date)

	require.NotEmpty(t, urls)
	assert.Equal(t, "https://www.hindalco.com/Upload/PDF/primary-ready-reckoner-14-may-2025.pdf", urls[0])
}

func TestCandidateURLs_Deterministic(t *testing.T) {
	date := time.Date(2025, 5, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, CandidateURLs(base, date), CandidateURLs(base, date))
}

func TestCandidateURLs_Variants(t *testing.T) {
	date := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	urls := CandidateURLs(base, date)

	assert.Contains(t, urls, base+"/upload/pdf/primary-ready-reckoner-03-mar-2025.pdf")
	assert.Contains(t, urls, base+"/Upload/Pdf/primary-ready-reckoner-03-mar-2025.pdf")
	assert.Contains(t, urls, base+"/Upload/PDF/primary-ready-reckoner-3rd-mar-2025.pdf")
	assert.Contains(t, urls, base+"/Upload/PDF/primary-ready-reckoner-3-mar-2025.pdf")
	assert.Contains(t, urls, base+"/Upload/PDF/primary-ready-reckoner-03-march-2025.pdf")
	assert.Contains(t, urls, base+"/Upload/PDF/primary-ready-reckoner-03-03-2025.pdf")
	assert.Contains(t, urls, base+"/Upload/PDF/primary_ready_reckoner_03_mar_2025.pdf")
	assert.Contains(t, urls, base+"/Upload/PDF/ready-reckoner-03-mar-2025.pdf")
	assert.Contains(t, urls, base+"/Upload/PDF/primary-rates-03-mar-2025.pdf")

	// No duplicates.
	seen := make(map[string]bool, len(urls))
	for _, u := range urls {
		assert.False(t, seen[u], "duplicate candidate %s", u)
		seen[u] = true
	}
}

func TestOrdinalSuffix(t *testing.T) {
	cases := map[int]string{
		1: "st", 2: "nd", 3: "rd", 4: "th",
		11: "th", 12: "th", 13: "th",
		21: "st", 22: "nd", 23: "rd", 30: "th", 31: "st",
	}
	for day, want := range cases {
		assert.Equal(t, want, ordinalSuffix(day), "day %d", day)
	}
}

func TestCanonicalFilename(t *testing.T) {
	date := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "primary-ready-reckoner-02-jan-2025.pdf", CanonicalFilename(date))
}

func TestPrevBusinessDay(t *testing.T) {
	t.Run("midweek", func(t *testing.T) {
		// Wed 2025-05-14 -> Tue 2025-05-13
		d := PrevBusinessDay(time.Date(2025, 5, 14, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, time.Date(2025, 5, 13, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("monday skips weekend", func(t *testing.T) {
		// Mon 2025-05-12 -> Fri 2025-05-09
		d := PrevBusinessDay(time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, time.Date(2025, 5, 9, 0, 0, 0, 0, time.UTC), d)
	})
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)))  // Sat
	assert.True(t, IsWeekend(time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC)))  // Sun
	assert.False(t, IsWeekend(time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC))) // Mon
}
