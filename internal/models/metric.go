// ABOUTME: Metric definition model and status types for longevity tracking.
// ABOUTME: Defines target ranges, categories, and calculated-metric flags.
package models

import "time"

// Category names with special engine semantics. Categories are free-form
// strings; only these two change how a metric is scored.
const (
	CategoryDaily  = "daily"
	CategoryWeekly = "weekly"
)

// StatusLevel classifies a value against its target range.
type StatusLevel string

const (
	StatusGood    StatusLevel = "GOOD"
	StatusFair    StatusLevel = "FAIR"
	StatusPoor    StatusLevel = "POOR"
	StatusUnknown StatusLevel = "UNKNOWN"
)

// Severity orders statuses for feedback ranking: POOR < FAIR < GOOD.
func (s StatusLevel) Severity() int {
	switch s {
	case StatusPoor:
		return 0
	case StatusFair:
		return 1
	case StatusGood:
		return 2
	default:
		return 3
	}
}

// MetricDefinition describes one tracked metric: its target range, category,
// and (for calculated metrics) the formula that derives it from other metrics.
type MetricDefinition struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	RangeMin       float64 `json:"range_min" yaml:"range_min"`
	RangeMax       float64 `json:"range_max" yaml:"range_max"`
	Unit           string  `json:"unit" yaml:"unit"`
	Fact           string  `json:"fact,omitempty" yaml:"fact,omitempty"`
	Citation       string  `json:"citation,omitempty" yaml:"citation,omitempty"`
	Step           float64 `json:"step,omitempty" yaml:"step,omitempty"`
	Category       string  `json:"category" yaml:"category"`
	Active         bool    `json:"active" yaml:"active"`
	IncludeInChart bool    `json:"include_in_chart" yaml:"include_in_chart"`
	IsCalculated   bool    `json:"is_calculated,omitempty" yaml:"is_calculated,omitempty"`
	Formula        string  `json:"formula,omitempty" yaml:"formula,omitempty"`
	IsTimeBased    bool    `json:"is_time_based,omitempty" yaml:"is_time_based,omitempty"`
}

// WeeklyProgress reports a cumulative weekly metric against its target.
type WeeklyProgress struct {
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
	Percent float64 `json:"percent"`
}

// MetricStatusData is the per-metric dashboard snapshot. Entirely derived;
// rebuilt from scratch on every evaluation.
type MetricStatusData struct {
	Value          *float64        `json:"value"`
	Timestamp      *time.Time      `json:"timestamp,omitempty"`
	Status         StatusLevel     `json:"status"`
	Streak         int             `json:"streak"`
	WeeklyProgress *WeeklyProgress `json:"weekly_progress,omitempty"`
}

// FeedbackItem is one ranked, dismissible piece of status feedback.
type FeedbackItem struct {
	MetricID     string      `json:"metric_id"`
	MetricName   string      `json:"metric_name"`
	Value        float64     `json:"value"`
	DisplayValue string      `json:"display_value"`
	Status       StatusLevel `json:"status"`
	Message      string      `json:"message"`
	Citation     string      `json:"citation,omitempty"`
}

// WeeklyCoaching pairs a weekly metric with its pace assessment.
type WeeklyCoaching struct {
	Metric  MetricDefinition `json:"metric"`
	Current float64          `json:"current"`
	Target  float64          `json:"target"`
	AtRisk  bool             `json:"at_risk"`
}

// CoachingSummary feeds the coaching banner: what to log today and which
// weekly targets are falling behind pace.
type CoachingSummary struct {
	MissingDaily  []MetricDefinition `json:"missing_daily"`
	WeeklyMetrics []WeeklyCoaching   `json:"weekly_metrics"`
}
