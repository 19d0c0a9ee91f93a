// ABOUTME: JSON file storage backend implementing the Repository interface.
// ABOUTME: Keeps all data in one file, loaded at open and rewritten on mutation.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/harperreed/longevity/internal/models"
)

// JSONStore persists all data in a single JSON file. It trades the query
// power of SQLite for a human-readable store that syncs cleanly through
// file-sharing tools.
type JSONStore struct {
	mu   sync.Mutex
	path string
	data jsonData
}

type jsonData struct {
	Metrics     []models.MetricDefinition `json:"metrics"`
	Entries     []models.LogEntry         `json:"entries"`
	Preferences map[string][]string       `json:"preferences"`
}

// DefaultJSONPath returns the default JSON store path following XDG spec.
func DefaultJSONPath() string {
	return filepath.Join(DataDir(), "longevity.json")
}

// OpenJSON opens or creates a JSON store at the given path.
func OpenJSON(path string) (*JSONStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	s := &JSONStore{
		path: path,
		data: jsonData{Preferences: make(map[string][]string)},
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("decode store: %w", err)
	}
	if s.data.Preferences == nil {
		s.data.Preferences = make(map[string][]string)
	}
	return s, nil
}

// save writes the store atomically via a temp file rename.
func (s *JSONStore) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

// CreateEntry stores a new log entry.
func (s *JSONStore) CreateEntry(e *models.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Entries = append(s.data.Entries, *e)
	return s.save()
}

// ReplaceEntry overwrites an existing entry wholesale.
func (s *JSONStore) ReplaceEntry(e *models.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Entries {
		if s.data.Entries[i].ID == e.ID {
			s.data.Entries[i] = *e
			return s.save()
		}
	}
	return fmt.Errorf("not found: %s", e.ID)
}

// GetEntry retrieves an entry by ID or ID prefix.
func (s *JSONStore) GetEntry(idOrPrefix string) (*models.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.findEntry(idOrPrefix)
	if err != nil {
		return nil, err
	}
	e := s.data.Entries[idx]
	return &e, nil
}

// ListEntries retrieves entries sorted by timestamp descending.
func (s *JSONStore) ListEntries(limit int) ([]models.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]models.LogEntry, len(s.data.Entries))
	copy(entries, s.data.Entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// DeleteEntry removes an entry by ID or prefix.
func (s *JSONStore) DeleteEntry(idOrPrefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.findEntry(idOrPrefix)
	if err != nil {
		return err
	}
	s.data.Entries = append(s.data.Entries[:idx], s.data.Entries[idx+1:]...)
	return s.save()
}

func (s *JSONStore) findEntry(idOrPrefix string) (int, error) {
	matches := []int{}
	for i := range s.data.Entries {
		if s.data.Entries[i].ID == idOrPrefix {
			return i, nil
		}
		if strings.HasPrefix(s.data.Entries[i].ID, idOrPrefix) {
			matches = append(matches, i)
		}
	}
	if len(matches) == 0 {
		return 0, fmt.Errorf("not found: %s", idOrPrefix)
	}
	if len(matches) > 1 {
		return 0, fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}
	return matches[0], nil
}

// UpsertMetric inserts or updates a metric definition, preserving order.
func (s *JSONStore) UpsertMetric(m *models.MetricDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Metrics {
		if s.data.Metrics[i].ID == m.ID {
			s.data.Metrics[i] = *m
			return s.save()
		}
	}
	s.data.Metrics = append(s.data.Metrics, *m)
	return s.save()
}

// GetMetricDef retrieves a single metric definition by id.
func (s *JSONStore) GetMetricDef(id string) (*models.MetricDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Metrics {
		if s.data.Metrics[i].ID == id {
			m := s.data.Metrics[i]
			return &m, nil
		}
	}
	return nil, fmt.Errorf("not found: %s", id)
}

// ListMetricDefs retrieves all metric definitions in registry order.
func (s *JSONStore) ListMetricDefs() ([]models.MetricDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	metrics := make([]models.MetricDefinition, len(s.data.Metrics))
	copy(metrics, s.data.Metrics)
	return metrics, nil
}

// DeleteMetricDef removes a metric definition.
func (s *JSONStore) DeleteMetricDef(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Metrics {
		if s.data.Metrics[i].ID == id {
			s.data.Metrics = append(s.data.Metrics[:i], s.data.Metrics[i+1:]...)
			return s.save()
		}
	}
	return fmt.Errorf("not found: %s", id)
}

// GetPreference returns the string set stored under key.
func (s *JSONStore) GetPreference(key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.data.Preferences[key]
	if ids == nil {
		return []string{}, nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out, nil
}

// SetPreference replaces the string set stored under key.
func (s *JSONStore) SetPreference(key string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ids == nil {
		ids = []string{}
	}
	s.data.Preferences[key] = ids
	return s.save()
}

// GetAllData retrieves all data for export.
func (s *JSONStore) GetAllData() (*ExportData, error) {
	metrics, err := s.ListMetricDefs()
	if err != nil {
		return nil, err
	}
	entries, err := s.ListEntries(0)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	prefs := make(map[string][]string, len(s.data.Preferences))
	for k, v := range s.data.Preferences {
		if len(v) > 0 {
			prefs[k] = append([]string(nil), v...)
		}
	}
	s.mu.Unlock()

	return &ExportData{
		Version:     ExportVersion,
		ExportedAt:  time.Now().UTC(),
		Tool:        "longevity",
		Metrics:     metrics,
		Entries:     entries,
		Preferences: prefs,
	}, nil
}

// ImportData merges exported data into the store, import winning on conflicts.
func (s *JSONStore) ImportData(data *ExportData) error {
	if data == nil {
		return fmt.Errorf("import: no data")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range data.Metrics {
		m := data.Metrics[i]
		replaced := false
		for j := range s.data.Metrics {
			if s.data.Metrics[j].ID == m.ID {
				s.data.Metrics[j] = m
				replaced = true
				break
			}
		}
		if !replaced {
			s.data.Metrics = append(s.data.Metrics, m)
		}
	}

	for i := range data.Entries {
		e := data.Entries[i]
		replaced := false
		for j := range s.data.Entries {
			if s.data.Entries[j].ID == e.ID {
				s.data.Entries[j] = e
				replaced = true
				break
			}
		}
		if !replaced {
			s.data.Entries = append(s.data.Entries, e)
		}
	}

	for key, ids := range data.Preferences {
		s.data.Preferences[key] = append([]string(nil), ids...)
	}

	return s.save()
}

// Close flushes nothing; the store saves on every mutation.
func (s *JSONStore) Close() error {
	return nil
}
