package analytics

import (
	"math"
	"time"

	"github.com/cryops/cryops/internal/textutil"
)

const dayLayout = time.DateOnly

// parseDay parses the calendar date at the start of s. Calendar dates carry
// no zone, so they are anchored at UTC midnight and day arithmetic stays exact
// across DST changes.
func parseDay(s string) (time.Time, bool) {
	if len(s) > len(dayLayout) {
		s = s[:len(dayLayout)]
	}
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// civilDay returns the calendar date of t in its own location, anchored the
// same way as parseDay.
func civilDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(math.Floor(to.Sub(from).Hours() / 24))
}

// formatOrdinalDate renders a date as "28th Aug 2023".
func formatOrdinalDate(t time.Time) string {
	return textutil.Ordinal(t.Day()) + " " + t.Month().String()[:3] + " " + t.Format("2006")
}

// FormatOrdinalDate formats a YYYY-MM-DD date as "28th Aug 2023". Unparseable
// input is returned unchanged.
func FormatOrdinalDate(date string) string {
	t, ok := parseDay(date)
	if !ok {
		return date
	}
	return formatOrdinalDate(t)
}

// roundHalfUp rounds .5 toward positive infinity, so -2.5 becomes -2.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func ptr[T any](v T) *T {
	return &v
}
