// ABOUTME: Metric definition CRUD for SQLite storage.
// ABOUTME: Definitions keep a position column so registry order survives round trips.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/harperreed/longevity/internal/models"
)

const metricColumns = `id, name, range_min, range_max, unit, fact, citation, step,
	category, active, include_in_chart, is_calculated, formula, is_time_based, position`

// UpsertMetric inserts a metric definition or updates it in place. A new
// definition is appended after the highest existing position; updates keep
// their position so the registry order is stable.
func (d *DB) UpsertMetric(m *models.MetricDefinition) error {
	query := `INSERT INTO metric_definitions (` + metricColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			(SELECT COALESCE(MAX(position), -1) + 1 FROM metric_definitions))
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			range_min = excluded.range_min,
			range_max = excluded.range_max,
			unit = excluded.unit,
			fact = excluded.fact,
			citation = excluded.citation,
			step = excluded.step,
			category = excluded.category,
			active = excluded.active,
			include_in_chart = excluded.include_in_chart,
			is_calculated = excluded.is_calculated,
			formula = excluded.formula,
			is_time_based = excluded.is_time_based`

	_, err := d.db.Exec(query,
		m.ID, m.Name, m.RangeMin, m.RangeMax, m.Unit, m.Fact, m.Citation, m.Step,
		m.Category, m.Active, m.IncludeInChart, m.IsCalculated, m.Formula, m.IsTimeBased,
	)
	if err != nil {
		return fmt.Errorf("upsert metric %s: %w", m.ID, err)
	}
	return nil
}

// GetMetricDef retrieves a single metric definition by id.
func (d *DB) GetMetricDef(id string) (*models.MetricDefinition, error) {
	row := d.db.QueryRow(`SELECT `+metricColumns+` FROM metric_definitions WHERE id = ?`, id)
	m, err := scanMetricDef(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("not found: %s", id)
		}
		return nil, err
	}
	return m, nil
}

// ListMetricDefs retrieves all metric definitions in registry order.
func (d *DB) ListMetricDefs() ([]models.MetricDefinition, error) {
	rows, err := d.db.Query(`SELECT ` + metricColumns + ` FROM metric_definitions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	defer rows.Close()

	var metrics []models.MetricDefinition
	for rows.Next() {
		m, err := scanMetricDef(rows.Scan)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, *m)
	}
	return metrics, rows.Err()
}

// DeleteMetricDef removes a metric definition. Entries keep any values logged
// against the removed id; they simply stop rendering.
func (d *DB) DeleteMetricDef(id string) error {
	result, err := d.db.Exec(`DELETE FROM metric_definitions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete metric %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete metric %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", id)
	}
	return nil
}

func scanMetricDef(scan func(...any) error) (*models.MetricDefinition, error) {
	var m models.MetricDefinition
	var position int

	err := scan(
		&m.ID, &m.Name, &m.RangeMin, &m.RangeMax, &m.Unit, &m.Fact, &m.Citation, &m.Step,
		&m.Category, &m.Active, &m.IncludeInChart, &m.IsCalculated, &m.Formula, &m.IsTimeBased,
		&position,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
