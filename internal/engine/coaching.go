// ABOUTME: Coaching summarizer: what to log today and which weekly targets
// ABOUTME: are falling behind the pro-rated pace.
package engine

import (
	"time"

	"github.com/harperreed/longevity/internal/models"
)

// Coaching derives the coaching banner data from dashboard state. A daily,
// directly-logged metric is "missing" when it has no observation dated today.
// A weekly metric is at risk when its running total is below 80% of where
// the pro-rated pace says it should be by now.
func Coaching(state map[string]models.MetricStatusData, metrics []models.MetricDefinition, now time.Time) models.CoachingSummary {
	today := isoDate(now)
	summary := models.CoachingSummary{
		MissingDaily:  make([]models.MetricDefinition, 0),
		WeeklyMetrics: make([]models.WeeklyCoaching, 0),
	}

	for _, m := range metrics {
		if !m.Active {
			continue
		}
		data := state[m.ID]

		switch {
		case m.Category == models.CategoryDaily && !m.IsCalculated:
			if data.Timestamp == nil || isoDate(*data.Timestamp) != today {
				summary.MissingDaily = append(summary.MissingDaily, m)
			}
		case m.Category == models.CategoryWeekly && data.WeeklyProgress != nil:
			prog := data.WeeklyProgress
			expected := (prog.Target / 7) * float64(isoWeekday(now))
			summary.WeeklyMetrics = append(summary.WeeklyMetrics, models.WeeklyCoaching{
				Metric:  m,
				Current: prog.Current,
				Target:  prog.Target,
				AtRisk:  prog.Current < expected*0.8,
			})
		}
	}

	return summary
}
