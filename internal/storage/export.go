// ABOUTME: Export/import data structures and storage-level merge logic.
// ABOUTME: Used by export/import commands and backend migration.
package storage

import (
	"fmt"
	"time"

	"github.com/harperreed/longevity/internal/models"
)

// ExportData is the complete data export structure.
type ExportData struct {
	Version     string                    `json:"version" yaml:"version"`
	ExportedAt  time.Time                 `json:"exported_at" yaml:"exported_at"`
	Tool        string                    `json:"tool" yaml:"tool"`
	Metrics     []models.MetricDefinition `json:"metrics" yaml:"metrics"`
	Entries     []models.LogEntry         `json:"entries" yaml:"entries"`
	Preferences map[string][]string       `json:"preferences,omitempty" yaml:"preferences,omitempty"`
}

// ExportVersion is the current export format version.
const ExportVersion = "1.0"

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	metrics, err := d.ListMetricDefs()
	if err != nil {
		return nil, fmt.Errorf("export metrics: %w", err)
	}

	entries, err := d.ListEntries(0)
	if err != nil {
		return nil, fmt.Errorf("export entries: %w", err)
	}

	prefs := make(map[string][]string)
	for _, key := range []string{PrefDismissedFeedback, PrefPinnedFeedback} {
		ids, err := d.GetPreference(key)
		if err != nil {
			return nil, fmt.Errorf("export preferences: %w", err)
		}
		if len(ids) > 0 {
			prefs[key] = ids
		}
	}

	return &ExportData{
		Version:     ExportVersion,
		ExportedAt:  time.Now().UTC(),
		Tool:        "longevity",
		Metrics:     metrics,
		Entries:     entries,
		Preferences: prefs,
	}, nil
}

// ImportData merges exported data into the store. Metric definitions and
// entries are merged by id, with the import winning on conflicts. Nothing
// already in the store is deleted.
func (d *DB) ImportData(data *ExportData) error {
	if data == nil {
		return fmt.Errorf("import: no data")
	}

	for i := range data.Metrics {
		if err := d.UpsertMetric(&data.Metrics[i]); err != nil {
			return fmt.Errorf("import metric: %w", err)
		}
	}

	for i := range data.Entries {
		e := &data.Entries[i]
		if err := d.ReplaceEntry(e); err == nil {
			continue
		}
		if err := d.CreateEntry(e); err != nil {
			return fmt.Errorf("import entry: %w", err)
		}
	}

	for key, ids := range data.Preferences {
		if err := d.SetPreference(key, ids); err != nil {
			return fmt.Errorf("import preferences: %w", err)
		}
	}

	return nil
}
