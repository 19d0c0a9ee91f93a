// ABOUTME: Log entry model: one timestamped snapshot of metric values.
// ABOUTME: Entries are immutable; corrections replace the whole entry.
package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MetricValues maps metric id to an observed value. Absence means the metric
// was not recorded in that entry; explicit JSON nulls are dropped on decode so
// null and missing are indistinguishable downstream.
type MetricValues map[string]float64

// UnmarshalJSON decodes values while discarding nulls and non-numeric junk.
func (mv *MetricValues) UnmarshalJSON(data []byte) error {
	var raw map[string]*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(MetricValues, len(raw))
	for id, v := range raw {
		if v != nil {
			out[id] = *v
		}
	}
	*mv = out
	return nil
}

// Clone returns an independent copy of the value map.
func (mv MetricValues) Clone() MetricValues {
	out := make(MetricValues, len(mv))
	for id, v := range mv {
		out[id] = v
	}
	return out
}

// LogEntry is one user-submitted snapshot of metric values.
type LogEntry struct {
	ID        string       `json:"id" yaml:"id"`
	Timestamp time.Time    `json:"timestamp" yaml:"timestamp"`
	Values    MetricValues `json:"values" yaml:"values"`
}

// NewLogEntry creates an entry with a generated UUID.
func NewLogEntry(timestamp time.Time, values MetricValues) *LogEntry {
	return &LogEntry{
		ID:        uuid.New().String(),
		Timestamp: timestamp,
		Values:    values,
	}
}
