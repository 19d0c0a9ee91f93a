// ABOUTME: Tests for both storage backends against the Repository contract.
// ABOUTME: Covers entry CRUD, metric definitions, preferences, and export/import.
package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/longevity/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func openTestJSON(t *testing.T) *JSONStore {
	t.Helper()
	s, err := OpenJSON(filepath.Join(t.TempDir(), "test.json"))
	if err != nil {
		t.Fatalf("OpenJSON() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// eachBackend runs a subtest against both storage implementations.
func eachBackend(t *testing.T, fn func(t *testing.T, repo Repository)) {
	t.Run("sqlite", func(t *testing.T) {
		fn(t, openTestDB(t))
	})
	t.Run("json", func(t *testing.T) {
		fn(t, openTestJSON(t))
	})
}

func testEntry(values map[string]float64, ts time.Time) *models.LogEntry {
	return models.NewLogEntry(ts, values)
}

func TestOpenCreatesOwnerOnlyFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	info, err := os.Stat(dbPath)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("database file mode = %o, want 0600", perm)
	}
}

func TestEntryCRUD(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo Repository) {
		ts := time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)
		entry := testEntry(map[string]float64{"sleep": 7.5, "rhr": 52}, ts)

		if err := repo.CreateEntry(entry); err != nil {
			t.Fatalf("CreateEntry() error = %v", err)
		}

		got, err := repo.GetEntry(entry.ID)
		if err != nil {
			t.Fatalf("GetEntry() error = %v", err)
		}
		if got.Values["sleep"] != 7.5 || got.Values["rhr"] != 52 {
			t.Errorf("GetEntry() values = %v", got.Values)
		}
		if !got.Timestamp.Equal(ts) {
			t.Errorf("GetEntry() timestamp = %v, want %v", got.Timestamp, ts)
		}

		// Prefix lookup
		got, err = repo.GetEntry(entry.ID[:8])
		if err != nil {
			t.Fatalf("GetEntry(prefix) error = %v", err)
		}
		if got.ID != entry.ID {
			t.Errorf("GetEntry(prefix) ID = %s, want %s", got.ID, entry.ID)
		}

		if err := repo.DeleteEntry(entry.ID[:8]); err != nil {
			t.Fatalf("DeleteEntry() error = %v", err)
		}
		if _, err := repo.GetEntry(entry.ID); err == nil {
			t.Error("GetEntry() after delete should fail")
		}
	})
}

func TestReplaceEntry(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo Repository) {
		ts := time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)
		entry := testEntry(map[string]float64{"sleep": 7.5}, ts)
		if err := repo.CreateEntry(entry); err != nil {
			t.Fatalf("CreateEntry() error = %v", err)
		}

		replacement := &models.LogEntry{
			ID:        entry.ID,
			Timestamp: ts.Add(time.Hour),
			Values:    models.MetricValues{"sleep": 8.0},
		}
		if err := repo.ReplaceEntry(replacement); err != nil {
			t.Fatalf("ReplaceEntry() error = %v", err)
		}

		got, err := repo.GetEntry(entry.ID)
		if err != nil {
			t.Fatalf("GetEntry() error = %v", err)
		}
		if got.Values["sleep"] != 8.0 {
			t.Errorf("sleep = %v, want 8.0", got.Values["sleep"])
		}
		if _, ok := got.Values["rhr"]; ok {
			t.Error("replacement should not retain old keys")
		}
		if !got.Timestamp.Equal(ts.Add(time.Hour)) {
			t.Errorf("timestamp = %v, want %v", got.Timestamp, ts.Add(time.Hour))
		}
	})
}

func TestReplaceEntryNotFound(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo Repository) {
		entry := testEntry(map[string]float64{"sleep": 7}, time.Now())
		err := repo.ReplaceEntry(entry)
		if err == nil || !strings.Contains(err.Error(), "not found") {
			t.Errorf("ReplaceEntry() error = %v, want not found", err)
		}
	})
}

func TestListEntriesOrderAndLimit(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo Repository) {
		base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		for i := 0; i < 5; i++ {
			e := testEntry(map[string]float64{"day": float64(i)}, base.AddDate(0, 0, i))
			if err := repo.CreateEntry(e); err != nil {
				t.Fatalf("CreateEntry() error = %v", err)
			}
		}

		entries, err := repo.ListEntries(0)
		if err != nil {
			t.Fatalf("ListEntries() error = %v", err)
		}
		if len(entries) != 5 {
			t.Fatalf("len = %d, want 5", len(entries))
		}
		for i := 1; i < len(entries); i++ {
			if entries[i].Timestamp.After(entries[i-1].Timestamp) {
				t.Error("entries not sorted newest first")
			}
		}

		limited, err := repo.ListEntries(2)
		if err != nil {
			t.Fatalf("ListEntries(2) error = %v", err)
		}
		if len(limited) != 2 {
			t.Fatalf("len = %d, want 2", len(limited))
		}
		if limited[0].Values["day"] != 4 {
			t.Errorf("newest day = %v, want 4", limited[0].Values["day"])
		}
	})
}

func TestAmbiguousEntryPrefix(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo Repository) {
		a := testEntry(map[string]float64{"x": 1}, time.Now())
		a.ID = "aaaa1111"
		b := testEntry(map[string]float64{"x": 2}, time.Now())
		b.ID = "aaaa2222"
		if err := repo.CreateEntry(a); err != nil {
			t.Fatalf("CreateEntry() error = %v", err)
		}
		if err := repo.CreateEntry(b); err != nil {
			t.Fatalf("CreateEntry() error = %v", err)
		}

		_, err := repo.GetEntry("aaaa")
		if err == nil || !strings.Contains(err.Error(), "ambiguous") {
			t.Errorf("GetEntry(ambiguous) error = %v, want ambiguous", err)
		}
	})
}

func TestMetricDefCRUDAndOrder(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo Repository) {
		defs := []models.MetricDefinition{
			{ID: "sleep", Name: "Sleep", RangeMin: 7, RangeMax: 9, Unit: "h", Category: models.CategoryDaily, Active: true},
			{ID: "rhr", Name: "Resting HR", RangeMin: 40, RangeMax: 60, Unit: "bpm", Category: models.CategoryDaily, Active: true},
			{ID: "protein", Name: "Protein", RangeMin: 100, RangeMax: 200, Unit: "g", Category: models.CategoryDaily, Active: true},
		}
		for i := range defs {
			if err := repo.UpsertMetric(&defs[i]); err != nil {
				t.Fatalf("UpsertMetric() error = %v", err)
			}
		}

		// Update first metric in place, then list: order must hold.
		defs[0].RangeMax = 10
		if err := repo.UpsertMetric(&defs[0]); err != nil {
			t.Fatalf("UpsertMetric(update) error = %v", err)
		}

		listed, err := repo.ListMetricDefs()
		if err != nil {
			t.Fatalf("ListMetricDefs() error = %v", err)
		}
		if len(listed) != 3 {
			t.Fatalf("len = %d, want 3", len(listed))
		}
		wantOrder := []string{"sleep", "rhr", "protein"}
		for i, id := range wantOrder {
			if listed[i].ID != id {
				t.Errorf("order[%d] = %s, want %s", i, listed[i].ID, id)
			}
		}
		if listed[0].RangeMax != 10 {
			t.Errorf("sleep RangeMax = %v, want 10", listed[0].RangeMax)
		}

		got, err := repo.GetMetricDef("rhr")
		if err != nil {
			t.Fatalf("GetMetricDef() error = %v", err)
		}
		if got.Name != "Resting HR" {
			t.Errorf("Name = %s", got.Name)
		}

		if err := repo.DeleteMetricDef("rhr"); err != nil {
			t.Fatalf("DeleteMetricDef() error = %v", err)
		}
		if _, err := repo.GetMetricDef("rhr"); err == nil {
			t.Error("GetMetricDef() after delete should fail")
		}
	})
}

func TestMetricDefRoundTripFields(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo Repository) {
		def := models.MetricDefinition{
			ID:             "bmi",
			Name:           "BMI",
			RangeMin:       18.5,
			RangeMax:       24.9,
			Unit:           "kg/m2",
			Fact:           "Body mass index",
			Citation:       "WHO",
			Step:           0.1,
			Category:       models.CategoryDaily,
			Active:         true,
			IncludeInChart: true,
			IsCalculated:   true,
			Formula:        `weight / pow(height / 100, 2)`,
			IsTimeBased:    false,
		}
		if err := repo.UpsertMetric(&def); err != nil {
			t.Fatalf("UpsertMetric() error = %v", err)
		}

		got, err := repo.GetMetricDef("bmi")
		if err != nil {
			t.Fatalf("GetMetricDef() error = %v", err)
		}
		if *got != def {
			t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *got, def)
		}
	})
}

func TestPreferences(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo Repository) {
		ids, err := repo.GetPreference(PrefDismissedFeedback)
		if err != nil {
			t.Fatalf("GetPreference() error = %v", err)
		}
		if ids == nil || len(ids) != 0 {
			t.Errorf("unset preference = %v, want empty slice", ids)
		}

		if err := repo.SetPreference(PrefDismissedFeedback, []string{"sleep", "rhr"}); err != nil {
			t.Fatalf("SetPreference() error = %v", err)
		}
		ids, err = repo.GetPreference(PrefDismissedFeedback)
		if err != nil {
			t.Fatalf("GetPreference() error = %v", err)
		}
		if len(ids) != 2 || ids[0] != "sleep" || ids[1] != "rhr" {
			t.Errorf("preference = %v", ids)
		}

		// Overwrite shrinks the set
		if err := repo.SetPreference(PrefDismissedFeedback, []string{"rhr"}); err != nil {
			t.Fatalf("SetPreference() error = %v", err)
		}
		ids, _ = repo.GetPreference(PrefDismissedFeedback)
		if len(ids) != 1 || ids[0] != "rhr" {
			t.Errorf("preference = %v, want [rhr]", ids)
		}
	})
}

func TestExportImportMerge(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo Repository) {
		def := models.MetricDefinition{ID: "sleep", Name: "Sleep", RangeMin: 7, RangeMax: 9, Unit: "h", Category: models.CategoryDaily, Active: true}
		if err := repo.UpsertMetric(&def); err != nil {
			t.Fatalf("UpsertMetric() error = %v", err)
		}
		existing := testEntry(map[string]float64{"sleep": 7}, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
		if err := repo.CreateEntry(existing); err != nil {
			t.Fatalf("CreateEntry() error = %v", err)
		}

		// Import replaces the existing entry by id and adds a new one.
		incoming := &ExportData{
			Version: ExportVersion,
			Metrics: []models.MetricDefinition{
				{ID: "sleep", Name: "Sleep Hours", RangeMin: 7, RangeMax: 9, Unit: "h", Category: models.CategoryDaily, Active: true},
			},
			Entries: []models.LogEntry{
				{ID: existing.ID, Timestamp: existing.Timestamp, Values: models.MetricValues{"sleep": 8}},
				*testEntry(map[string]float64{"sleep": 6}, time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)),
			},
			Preferences: map[string][]string{PrefPinnedFeedback: {"sleep"}},
		}
		if err := repo.ImportData(incoming); err != nil {
			t.Fatalf("ImportData() error = %v", err)
		}

		got, err := repo.GetAllData()
		if err != nil {
			t.Fatalf("GetAllData() error = %v", err)
		}
		if len(got.Entries) != 2 {
			t.Fatalf("entries = %d, want 2", len(got.Entries))
		}
		merged, err := repo.GetEntry(existing.ID)
		if err != nil {
			t.Fatalf("GetEntry() error = %v", err)
		}
		if merged.Values["sleep"] != 8 {
			t.Errorf("merged sleep = %v, want 8 (import wins)", merged.Values["sleep"])
		}

		def2, err := repo.GetMetricDef("sleep")
		if err != nil {
			t.Fatalf("GetMetricDef() error = %v", err)
		}
		if def2.Name != "Sleep Hours" {
			t.Errorf("metric name = %s, want Sleep Hours", def2.Name)
		}

		pins, _ := repo.GetPreference(PrefPinnedFeedback)
		if len(pins) != 1 || pins[0] != "sleep" {
			t.Errorf("pins = %v", pins)
		}
	})
}

func TestEnsureDefaults(t *testing.T) {
	eachBackend(t, func(t *testing.T, repo Repository) {
		if err := EnsureDefaults(repo); err != nil {
			t.Fatalf("EnsureDefaults() error = %v", err)
		}
		defs, err := repo.ListMetricDefs()
		if err != nil {
			t.Fatalf("ListMetricDefs() error = %v", err)
		}
		if len(defs) != len(models.DefaultMetrics) {
			t.Fatalf("len = %d, want %d", len(defs), len(models.DefaultMetrics))
		}
		if defs[0].ID != models.DefaultMetrics[0].ID {
			t.Errorf("first metric = %s, want %s", defs[0].ID, models.DefaultMetrics[0].ID)
		}

		// Seeding is idempotent and does not clobber edits.
		custom := defs[0]
		custom.RangeMax = custom.RangeMax + 1
		if err := repo.UpsertMetric(&custom); err != nil {
			t.Fatalf("UpsertMetric() error = %v", err)
		}
		if err := EnsureDefaults(repo); err != nil {
			t.Fatalf("EnsureDefaults() second run error = %v", err)
		}
		got, _ := repo.GetMetricDef(custom.ID)
		if got.RangeMax != custom.RangeMax {
			t.Errorf("RangeMax = %v, want %v (edit preserved)", got.RangeMax, custom.RangeMax)
		}
	})
}

func TestJSONStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, err := OpenJSON(path)
	if err != nil {
		t.Fatalf("OpenJSON() error = %v", err)
	}
	entry := testEntry(map[string]float64{"sleep": 7.5}, time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC))
	if err := s.CreateEntry(entry); err != nil {
		t.Fatalf("CreateEntry() error = %v", err)
	}
	if err := s.SetPreference(PrefDismissedFeedback, []string{"rhr"}); err != nil {
		t.Fatalf("SetPreference() error = %v", err)
	}
	_ = s.Close()

	reopened, err := OpenJSON(path)
	if err != nil {
		t.Fatalf("OpenJSON(reopen) error = %v", err)
	}
	got, err := reopened.GetEntry(entry.ID)
	if err != nil {
		t.Fatalf("GetEntry() after reopen error = %v", err)
	}
	if got.Values["sleep"] != 7.5 {
		t.Errorf("sleep = %v, want 7.5", got.Values["sleep"])
	}
	ids, _ := reopened.GetPreference(PrefDismissedFeedback)
	if len(ids) != 1 || ids[0] != "rhr" {
		t.Errorf("preference = %v", ids)
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	entry := testEntry(map[string]float64{"rhr": 52}, time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC))
	if err := db.CreateEntry(entry); err != nil {
		t.Fatalf("CreateEntry() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open(reopen) error = %v", err)
	}
	defer reopened.Close()
	got, err := reopened.GetEntry(entry.ID)
	if err != nil {
		t.Fatalf("GetEntry() after reopen error = %v", err)
	}
	if got.Values["rhr"] != 52 {
		t.Errorf("rhr = %v, want 52", got.Values["rhr"])
	}
}
