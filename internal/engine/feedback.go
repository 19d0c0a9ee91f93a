// ABOUTME: Feedback generator: one narrative item per active metric with data,
// ABOUTME: filtered by dismissals and ranked pinned-first then by severity.
package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/harperreed/longevity/internal/models"
)

// GenerateFeedback produces one item per active metric with a current value,
// skipping dismissed metric ids. Items come back in registry order; callers
// apply SortFeedback for display ranking.
func GenerateFeedback(state map[string]models.MetricStatusData, metrics []models.MetricDefinition, dismissed []string) []models.FeedbackItem {
	skip := toSet(dismissed)

	items := make([]models.FeedbackItem, 0)
	for _, m := range metrics {
		if !m.Active || skip[m.ID] {
			continue
		}
		data, ok := state[m.ID]
		if !ok || data.Value == nil {
			continue
		}

		val := *data.Value
		items = append(items, models.FeedbackItem{
			MetricID:     m.ID,
			MetricName:   m.Name,
			Value:        val,
			DisplayValue: DisplayValue(m, val),
			Status:       data.Status,
			Message:      feedbackMessage(m, data),
			Citation:     m.Citation,
		})
	}
	return items
}

func feedbackMessage(m models.MetricDefinition, data models.MetricStatusData) string {
	if m.Category == models.CategoryWeekly && data.WeeklyProgress != nil {
		prog := data.WeeklyProgress
		pct := int(math.Round(prog.Percent))
		switch data.Status {
		case models.StatusGood:
			return fmt.Sprintf("Excellent! You are at %d%% of your weekly target (%s/%s %s).",
				pct, DisplayValue(m, prog.Current), DisplayValue(m, prog.Target), m.Unit)
		case models.StatusFair:
			return fmt.Sprintf("Keep pushing. You are at %d%% of your weekly target.", pct)
		default:
			return fmt.Sprintf("You are behind schedule (%d%%). Try to squeeze in a session.", pct)
		}
	}

	switch data.Status {
	case models.StatusGood:
		return fmt.Sprintf("Great job! Your %s is in the optimal range.", m.Name)
	case models.StatusFair:
		return fmt.Sprintf("Close! Your %s is near the target range.", m.Name)
	default:
		return fmt.Sprintf("Your %s is outside the target range.", m.Name)
	}
}

// SortFeedback ranks items in place for display: pinned metrics first, then
// by severity (POOR before FAIR before GOOD). The sort is stable, so equal
// items keep their prior relative order.
func SortFeedback(items []models.FeedbackItem, pinned []string) {
	pins := toSet(pinned)
	sort.SliceStable(items, func(i, j int) bool {
		pi, pj := pins[items[i].MetricID], pins[items[j].MetricID]
		if pi != pj {
			return pi
		}
		return items[i].Status.Severity() < items[j].Status.Severity()
	})
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
