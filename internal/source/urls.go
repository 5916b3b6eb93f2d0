// Package source locates and acquires the daily price-reckoner document.
package source

import (
	"fmt"
	"strings"
	"time"
)

// CandidateURLs returns every guessed location for the document published on
// date, most-likely-correct first. The first element is always the canonical
// zero-padded-day, abbreviated-month spelling. The function is deterministic
// and side-effect-free.
func CandidateURLs(baseURL string, date time.Time) []string {
	base := strings.TrimRight(baseURL, "/")

	day := date.Day()
	monShort := strings.ToLower(date.Format("Jan"))
	monFull := strings.ToLower(date.Format("January"))
	monNum := date.Format("01")
	year := date.Year()

	padded := fmt.Sprintf("%02d", day)
	ordinal := fmt.Sprintf("%d%s", day, ordinalSuffix(day))

	return []string{
		// Canonical spelling.
		fmt.Sprintf("%s/Upload/PDF/primary-ready-reckoner-%s-%s-%d.pdf", base, padded, monShort, year),

		// Path case variants.
		fmt.Sprintf("%s/upload/pdf/primary-ready-reckoner-%s-%s-%d.pdf", base, padded, monShort, year),
		fmt.Sprintf("%s/Upload/Pdf/primary-ready-reckoner-%s-%s-%d.pdf", base, padded, monShort, year),

		// Ordinal day.
		fmt.Sprintf("%s/Upload/PDF/primary-ready-reckoner-%s-%s-%d.pdf", base, ordinal, monShort, year),
		fmt.Sprintf("%s/upload/pdf/primary-ready-reckoner-%s-%s-%d.pdf", base, ordinal, monShort, year),

		// Unpadded day.
		fmt.Sprintf("%s/Upload/PDF/primary-ready-reckoner-%d-%s-%d.pdf", base, day, monShort, year),
		fmt.Sprintf("%s/upload/pdf/primary-ready-reckoner-%d-%s-%d.pdf", base, day, monShort, year),

		// Full month name.
		fmt.Sprintf("%s/Upload/PDF/primary-ready-reckoner-%s-%s-%d.pdf", base, padded, monFull, year),
		fmt.Sprintf("%s/upload/pdf/primary-ready-reckoner-%s-%s-%d.pdf", base, padded, monFull, year),

		// Numeric month.
		fmt.Sprintf("%s/Upload/PDF/primary-ready-reckoner-%s-%s-%d.pdf", base, padded, monNum, year),
		fmt.Sprintf("%s/upload/pdf/primary-ready-reckoner-%s-%s-%d.pdf", base, padded, monNum, year),

		// Separator variants.
		fmt.Sprintf("%s/Upload/PDF/primary-ready-reckoner-%s_%s_%d.pdf", base, padded, monShort, year),
		fmt.Sprintf("%s/Upload/PDF/primary_ready_reckoner_%s_%s_%d.pdf", base, padded, monShort, year),

		// Alternate basenames.
		fmt.Sprintf("%s/Upload/PDF/ready-reckoner-%s-%s-%d.pdf", base, padded, monShort, year),
		fmt.Sprintf("%s/Upload/PDF/primary-reckoner-%s-%s-%d.pdf", base, padded, monShort, year),
		fmt.Sprintf("%s/Upload/PDF/primary-rates-%s-%s-%d.pdf", base, padded, monShort, year),
	}
}

// CanonicalFilename is the local cache name for a date's document.
func CanonicalFilename(date time.Time) string {
	return fmt.Sprintf("primary-ready-reckoner-%02d-%s-%d.pdf",
		date.Day(), strings.ToLower(date.Format("Jan")), date.Year())
}

// PrevBusinessDay returns the closest weekday strictly before date.
func PrevBusinessDay(date time.Time) time.Time {
	d := date.AddDate(0, 0, -1)
	for IsWeekend(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// IsWeekend reports whether d falls on a Saturday or Sunday.
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func ordinalSuffix(day int) string {
	if day%100 >= 10 && day%100 <= 20 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
