// ABOUTME: Status classification against target ranges and shared date helpers.
// ABOUTME: GOOD inside the range, FAIR within 20%-of-span tolerance, else POOR.
package engine

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/harperreed/longevity/internal/models"
)

// StatusFor classifies a value against [min, max]. Values inside the range
// are GOOD; within a tolerance of 20% of the span on either side, FAIR;
// otherwise POOR. A zero span is treated as span 1 so point targets still get
// a usable tolerance band.
func StatusFor(value, min, max float64) models.StatusLevel {
	if value >= min && value <= max {
		return models.StatusGood
	}

	span := max - min
	if span == 0 {
		span = 1
	}
	tolerance := span * 0.2
	if value >= min-tolerance && value <= max+tolerance {
		return models.StatusFair
	}

	return models.StatusPoor
}

// weeklyStatus pro-rates a cumulative weekly target across the week: by day
// N you are expected to be at N/7 of the weekly minimum.
func weeklyStatus(current, weeklyMin float64, now time.Time) models.StatusLevel {
	expected := (weeklyMin / 7) * float64(isoWeekday(now))
	switch {
	case current >= expected:
		return models.StatusGood
	case current >= expected*0.7:
		return models.StatusFair
	default:
		return models.StatusPoor
	}
}

// isoWeekday returns the ISO weekday number: Monday=1 .. Sunday=7.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// isoDate keys a timestamp by local calendar date, YYYY-MM-DD.
func isoDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDuration renders decimal hours as H:MM for time-based metrics,
// e.g. 7.5 -> "7:30".
func FormatDuration(val float64) string {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return "--"
	}
	h := int(val)
	m := int(math.Round((val - float64(h)) * 60))
	if m == 60 {
		h++
		m = 0
	}
	return fmt.Sprintf("%d:%02d", h, m)
}

// DisplayValue renders a metric value for feedback text; time-based metrics
// use the H:MM form.
func DisplayValue(m models.MetricDefinition, val float64) string {
	if m.IsTimeBased {
		return FormatDuration(val)
	}
	return strconv.FormatFloat(val, 'f', -1, 64)
}
