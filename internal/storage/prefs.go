// ABOUTME: Preference set persistence for SQLite storage.
// ABOUTME: Each preference is a JSON array of metric ids keyed by name.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// GetPreference returns the string set stored under key. An unset key is an
// empty set, not an error.
func (d *DB) GetPreference(key string) ([]string, error) {
	var valueJSON string
	err := d.db.QueryRow(`SELECT value_json FROM preferences WHERE key = ?`, key).Scan(&valueJSON)
	if err == sql.ErrNoRows {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get preference %s: %w", key, err)
	}

	var ids []string
	if err := json.Unmarshal([]byte(valueJSON), &ids); err != nil {
		return nil, fmt.Errorf("decode preference %s: %w", key, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// SetPreference replaces the string set stored under key.
func (d *DB) SetPreference(key string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	valueJSON, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode preference %s: %w", key, err)
	}

	query := `INSERT INTO preferences (key, value_json) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value_json = excluded.value_json`
	if _, err := d.db.Exec(query, key, string(valueJSON)); err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}
