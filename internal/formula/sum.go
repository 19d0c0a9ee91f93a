// ABOUTME: Historical sum aggregator exposed to formulas as sum(metricId, period).
// ABOUTME: Periods: current calendar week, current calendar month, or rolling N days.
package formula

import (
	"time"

	"github.com/harperreed/longevity/internal/models"
)

// Sum totals the values of metricID across entries whose timestamp falls in
// [periodStart, ref] inclusive.
//
// period is either the string "week" (current calendar week starting Monday
// 00:00 local, Sunday counted as day 7 of the prior week), "month" (day 1
// 00:00), or a number N for a rolling window covering the N calendar days
// ending on ref's day. Entries without a value for metricID are skipped, not
// treated as zero. Unrecognized periods sum nothing.
func Sum(entries []models.LogEntry, metricID string, period any, ref time.Time) float64 {
	start, ok := periodStart(period, ref)
	if !ok {
		return 0
	}

	var total float64
	for _, e := range entries {
		if e.Timestamp.Before(start) || e.Timestamp.After(ref) {
			continue
		}
		if v, ok := e.Values[metricID]; ok {
			total += v
		}
	}
	return total
}

func periodStart(period any, ref time.Time) (time.Time, bool) {
	switch p := period.(type) {
	case string:
		switch p {
		case "week":
			return startOfISOWeek(ref), true
		case "month":
			return time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location()), true
		}
		return time.Time{}, false
	default:
		days := Num(period)
		if days != days || days < 1 { // NaN or nonsense
			return time.Time{}, false
		}
		day := startOfDay(ref)
		return day.AddDate(0, 0, -(int(days) - 1)), true
	}
}

// startOfISOWeek returns Monday 00:00 of ref's week, with Sunday treated as
// day 7 of the week that began the previous Monday.
func startOfISOWeek(ref time.Time) time.Time {
	weekday := int(ref.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return startOfDay(ref).AddDate(0, 0, -(weekday - 1))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
