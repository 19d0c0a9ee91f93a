// ABOUTME: Dashboard state builder: latest value, status, streak, and weekly
// ABOUTME: progress per active metric, recomputed from scratch on every call.
package engine

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/harperreed/longevity/internal/models"
)

var errMissingAge = errors.New("chronological age not available")

// streakLookback caps the daily streak walk.
const streakLookback = 365

// DashboardState derives the per-metric snapshot from enriched entries, for
// active metrics only. now anchors "today" for streaks and weekly pro-ration;
// callers pass time.Now().
func DashboardState(processed []models.LogEntry, metrics []models.MetricDefinition, now time.Time) map[string]models.MetricStatusData {
	sorted := make([]models.LogEntry, len(processed))
	copy(sorted, processed)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	// The last entry that sets a non-null value for a metric wins.
	type observation struct {
		val float64
		ts  time.Time
	}
	latest := make(map[string]observation)
	for _, e := range sorted {
		for id, v := range e.Values {
			latest[id] = observation{val: v, ts: e.Timestamp}
		}
	}

	state := make(map[string]models.MetricStatusData)
	for _, m := range metrics {
		if !m.Active {
			continue
		}

		data := models.MetricStatusData{Status: models.StatusUnknown}

		if m.Category == models.CategoryDaily {
			data.Streak = dailyStreak(sorted, m, now)
		}

		if obs, ok := latest[m.ID]; ok {
			val := obs.val
			ts := obs.ts
			data.Value = &val
			data.Timestamp = &ts

			if m.Category == models.CategoryWeekly {
				data.Status = weeklyStatus(val, m.RangeMin, now)
				data.WeeklyProgress = weeklyProgress(val, m.RangeMin)
			} else {
				data.Status = StatusFor(val, m.RangeMin, m.RangeMax)
			}
		}

		state[m.ID] = data
	}

	return state
}

// dailyStreak counts consecutive acceptable (GOOD or FAIR) days walking
// backward from today. If today has no logged value yet the walk starts at
// yesterday, so an unlogged morning does not break an active streak. The
// first missing or POOR day stops the count.
func dailyStreak(sorted []models.LogEntry, m models.MetricDefinition, now time.Time) int {
	daily := make(map[string]float64)
	for _, e := range sorted {
		if v, ok := e.Values[m.ID]; ok {
			daily[isoDate(e.Timestamp)] = v
		}
	}

	check := now
	if _, ok := daily[isoDate(check)]; !ok {
		check = check.AddDate(0, 0, -1)
	}

	streak := 0
	for i := 0; i < streakLookback; i++ {
		val, ok := daily[isoDate(check)]
		if !ok {
			break
		}
		s := StatusFor(val, m.RangeMin, m.RangeMax)
		if s != models.StatusGood && s != models.StatusFair {
			break
		}
		streak++
		check = check.AddDate(0, 0, -1)
	}
	return streak
}

func weeklyProgress(current, target float64) *models.WeeklyProgress {
	percent := 100.0
	if target > 0 {
		percent = math.Min(100, (current/target)*100)
	}
	return &models.WeeklyProgress{
		Current: current,
		Target:  target,
		Percent: percent,
	}
}
