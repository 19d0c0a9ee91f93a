// ABOUTME: Repository interface for longevity data storage.
// ABOUTME: Defines contract for entries, metric definitions, and preference sets.
package storage

import (
	"github.com/harperreed/longevity/internal/models"
)

// Preference keys used by the feedback UI layers.
const (
	PrefDismissedFeedback = "dismissed_feedback"
	PrefPinnedFeedback    = "pinned_feedback"
)

// Repository defines the storage interface for longevity data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Entry operations. Entries are immutable; corrections go through
	// ReplaceEntry as a full replacement.
	CreateEntry(e *models.LogEntry) error
	ReplaceEntry(e *models.LogEntry) error
	GetEntry(idOrPrefix string) (*models.LogEntry, error)
	ListEntries(limit int) ([]models.LogEntry, error)
	DeleteEntry(idOrPrefix string) error

	// Metric definition operations
	UpsertMetric(m *models.MetricDefinition) error
	GetMetricDef(id string) (*models.MetricDefinition, error)
	ListMetricDefs() ([]models.MetricDefinition, error)
	DeleteMetricDef(id string) error

	// Preference sets (dismissed/pinned feedback metric ids)
	GetPreference(key string) ([]string, error)
	SetPreference(key string, ids []string) error

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}

// EnsureDefaults seeds the default metric registry into an empty store.
func EnsureDefaults(repo Repository) error {
	defs, err := repo.ListMetricDefs()
	if err != nil {
		return err
	}
	if len(defs) > 0 {
		return nil
	}
	for i := range models.DefaultMetrics {
		if err := repo.UpsertMetric(&models.DefaultMetrics[i]); err != nil {
			return err
		}
	}
	return nil
}
