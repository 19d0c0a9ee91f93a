// ABOUTME: Tests for the dashboard state builder.
// ABOUTME: Covers latest-value semantics, weekly pro-ration, streaks, and progress.
package engine

import (
	"testing"
	"time"

	"github.com/harperreed/longevity/internal/models"
)

// 2024-01-10 is a Wednesday (ISO weekday 3).
var wednesday = time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local)

func dailyMetric(id string, min, max float64) models.MetricDefinition {
	return models.MetricDefinition{
		ID: id, Name: id, RangeMin: min, RangeMax: max,
		Category: models.CategoryDaily, Active: true,
	}
}

func weeklyMetric(id string, min, max float64) models.MetricDefinition {
	return models.MetricDefinition{
		ID: id, Name: id, RangeMin: min, RangeMax: max,
		Category: models.CategoryWeekly, Active: true, IsCalculated: true, Formula: "0",
	}
}

func TestDashboardLatestValueWins(t *testing.T) {
	metrics := []models.MetricDefinition{rawMetric("weight", 50, 100)}
	entries := []models.LogEntry{
		entry(day(1), models.MetricValues{"weight": 80}),
		entry(day(3), models.MetricValues{"weight": 82}),
		entry(day(5), models.MetricValues{}), // later entry without weight does not win
	}

	state := DashboardState(entries, metrics, wednesday)
	data := state["weight"]
	if data.Value == nil || *data.Value != 82 {
		t.Fatalf("Value = %v, want 82", data.Value)
	}
	if data.Timestamp == nil || !data.Timestamp.Equal(day(3)) {
		t.Errorf("Timestamp = %v, want day 3", data.Timestamp)
	}
	if data.Status != models.StatusGood {
		t.Errorf("Status = %s, want GOOD", data.Status)
	}
}

func TestDashboardUnknownWithoutData(t *testing.T) {
	metrics := []models.MetricDefinition{rawMetric("weight", 50, 100)}

	state := DashboardState(nil, metrics, wednesday)
	data := state["weight"]
	if data.Status != models.StatusUnknown {
		t.Errorf("Status = %s, want UNKNOWN", data.Status)
	}
	if data.Value != nil {
		t.Errorf("Value = %v, want nil", data.Value)
	}
}

func TestDashboardSkipsInactiveMetrics(t *testing.T) {
	inactive := rawMetric("weight", 50, 100)
	inactive.Active = false

	state := DashboardState(nil, []models.MetricDefinition{inactive}, wednesday)
	if _, ok := state["weight"]; ok {
		t.Error("inactive metric should not appear in dashboard state")
	}
}

func TestDashboardWeeklyProRation(t *testing.T) {
	// Weekly min 70: expected by Wednesday = 70/7*3 = 30.
	metrics := []models.MetricDefinition{weeklyMetric("volume", 70, 150)}

	tests := []struct {
		current float64
		want    models.StatusLevel
	}{
		{30, models.StatusGood},
		{25, models.StatusFair}, // >= 21 (70% of 30)
		{20, models.StatusPoor},
	}

	for _, tt := range tests {
		entries := []models.LogEntry{
			entry(wednesday.Add(-time.Hour), models.MetricValues{"volume": tt.current}),
		}
		state := DashboardState(entries, metrics, wednesday)
		if got := state["volume"].Status; got != tt.want {
			t.Errorf("current %v: Status = %s, want %s", tt.current, got, tt.want)
		}
	}
}

func TestDashboardWeeklyProgress(t *testing.T) {
	metrics := []models.MetricDefinition{weeklyMetric("volume", 70, 150)}
	entries := []models.LogEntry{
		entry(wednesday.Add(-time.Hour), models.MetricValues{"volume": 35}),
	}

	state := DashboardState(entries, metrics, wednesday)
	prog := state["volume"].WeeklyProgress
	if prog == nil {
		t.Fatal("expected weekly progress")
	}
	if prog.Current != 35 || prog.Target != 70 {
		t.Errorf("progress = %v/%v, want 35/70", prog.Current, prog.Target)
	}
	if prog.Percent != 50 {
		t.Errorf("Percent = %v, want 50", prog.Percent)
	}
}

func TestDashboardWeeklyProgressCapped(t *testing.T) {
	metrics := []models.MetricDefinition{weeklyMetric("volume", 70, 150)}
	entries := []models.LogEntry{
		entry(wednesday.Add(-time.Hour), models.MetricValues{"volume": 700}),
	}

	state := DashboardState(entries, metrics, wednesday)
	if got := state["volume"].WeeklyProgress.Percent; got != 100 {
		t.Errorf("Percent = %v, want capped at 100", got)
	}
}

func TestDashboardStreakGracePeriod(t *testing.T) {
	// Today unlogged, yesterday GOOD, the day before POOR: streak = 1.
	metrics := []models.MetricDefinition{dailyMetric("sleep", 7, 8)}
	entries := []models.LogEntry{
		entry(wednesday.AddDate(0, 0, -2), models.MetricValues{"sleep": 3}),   // POOR
		entry(wednesday.AddDate(0, 0, -1), models.MetricValues{"sleep": 7.5}), // GOOD
	}

	state := DashboardState(entries, metrics, wednesday)
	if got := state["sleep"].Streak; got != 1 {
		t.Errorf("Streak = %d, want 1", got)
	}
}

func TestDashboardStreakCountsFairDays(t *testing.T) {
	metrics := []models.MetricDefinition{dailyMetric("sleep", 7, 8)}
	entries := []models.LogEntry{
		entry(wednesday.AddDate(0, 0, -2), models.MetricValues{"sleep": 7.5}), // GOOD
		entry(wednesday.AddDate(0, 0, -1), models.MetricValues{"sleep": 6.9}), // FAIR
		entry(wednesday, models.MetricValues{"sleep": 7}),                     // GOOD
	}

	state := DashboardState(entries, metrics, wednesday)
	if got := state["sleep"].Streak; got != 3 {
		t.Errorf("Streak = %d, want 3", got)
	}
}

func TestDashboardStreakBreaksOnGap(t *testing.T) {
	metrics := []models.MetricDefinition{dailyMetric("sleep", 7, 8)}
	entries := []models.LogEntry{
		entry(wednesday.AddDate(0, 0, -3), models.MetricValues{"sleep": 7.5}),
		// -2 missing
		entry(wednesday.AddDate(0, 0, -1), models.MetricValues{"sleep": 7.5}),
		entry(wednesday, models.MetricValues{"sleep": 7.5}),
	}

	state := DashboardState(entries, metrics, wednesday)
	if got := state["sleep"].Streak; got != 2 {
		t.Errorf("Streak = %d, want 2 (gap breaks the walk)", got)
	}
}

func TestDashboardStreakLastValueOfDayWins(t *testing.T) {
	metrics := []models.MetricDefinition{dailyMetric("sleep", 7, 8)}
	entries := []models.LogEntry{
		entry(wednesday.Add(-4*time.Hour), models.MetricValues{"sleep": 3}), // corrected later
		entry(wednesday.Add(-2*time.Hour), models.MetricValues{"sleep": 7.5}),
	}

	state := DashboardState(entries, metrics, wednesday)
	if got := state["sleep"].Streak; got != 1 {
		t.Errorf("Streak = %d, want 1 (last value of the day wins)", got)
	}
}

func TestDashboardIgnoresUnknownEntryIDs(t *testing.T) {
	metrics := []models.MetricDefinition{rawMetric("weight", 50, 100)}
	entries := []models.LogEntry{
		entry(day(1), models.MetricValues{"weight": 80, "retired_metric": 12}),
	}

	state := DashboardState(entries, metrics, wednesday)
	if len(state) != 1 {
		t.Errorf("state has %d metrics, want 1 (unknown ids ignored)", len(state))
	}
}
