// ABOUTME: Log entry CRUD operations for SQLite storage.
// ABOUTME: Values are stored as a JSON object keyed by metric id.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/longevity/internal/models"
)

// CreateEntry stores a new log entry.
func (d *DB) CreateEntry(e *models.LogEntry) error {
	values, err := json.Marshal(e.Values)
	if err != nil {
		return fmt.Errorf("encode entry values: %w", err)
	}

	query := `INSERT INTO entries (id, timestamp, values_json) VALUES (?, ?, ?)`
	if _, err := d.db.Exec(query, e.ID, e.Timestamp.Format(time.RFC3339), string(values)); err != nil {
		return fmt.Errorf("create entry: %w", err)
	}
	return nil
}

// ReplaceEntry overwrites an existing entry's timestamp and values wholesale.
// Entries are never partially mutated; a correction replaces the whole entry.
func (d *DB) ReplaceEntry(e *models.LogEntry) error {
	values, err := json.Marshal(e.Values)
	if err != nil {
		return fmt.Errorf("encode entry values: %w", err)
	}

	result, err := d.db.Exec(
		`UPDATE entries SET timestamp = ?, values_json = ? WHERE id = ?`,
		e.Timestamp.Format(time.RFC3339), string(values), e.ID,
	)
	if err != nil {
		return fmt.Errorf("replace entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("replace entry: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", e.ID)
	}
	return nil
}

// GetEntry retrieves an entry by ID or ID prefix.
func (d *DB) GetEntry(idOrPrefix string) (*models.LogEntry, error) {
	id, err := d.resolveEntryID(idOrPrefix)
	if err != nil {
		return nil, err
	}

	row := d.db.QueryRow(`SELECT id, timestamp, values_json FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("not found: %s", idOrPrefix)
		}
		return nil, err
	}
	return e, nil
}

// ListEntries retrieves entries sorted by timestamp descending (most recent
// first). limit <= 0 returns everything; engine callers pass 0 and re-sort.
func (d *DB) ListEntries(limit int) ([]models.LogEntry, error) {
	query := `SELECT id, timestamp, values_json FROM entries ORDER BY timestamp DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []models.LogEntry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// DeleteEntry removes an entry by ID or prefix.
func (d *DB) DeleteEntry(idOrPrefix string) error {
	id, err := d.resolveEntryID(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	result, err := d.db.Exec(`DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", idOrPrefix)
	}
	return nil
}

// resolveEntryID finds the full ID from a prefix.
func (d *DB) resolveEntryID(idOrPrefix string) (string, error) {
	// If it looks like a full UUID, use it directly
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}

	rows, err := d.db.Query(`SELECT id FROM entries WHERE id LIKE ? || '%'`, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve entry ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan entry ID: %w", err)
		}
		matches = append(matches, id)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("not found: %s", idOrPrefix)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}

	return matches[0], nil
}

func scanEntry(scan func(...any) error) (*models.LogEntry, error) {
	var e models.LogEntry
	var timestamp, valuesJSON string

	if err := scan(&e.ID, &timestamp, &valuesJSON); err != nil {
		return nil, err
	}

	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return nil, fmt.Errorf("parse entry timestamp: %w", err)
	}
	e.Timestamp = t

	if err := json.Unmarshal([]byte(valuesJSON), &e.Values); err != nil {
		return nil, fmt.Errorf("decode entry values: %w", err)
	}
	return &e, nil
}
