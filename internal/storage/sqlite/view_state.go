package sqlite

import (
	"context"
	"fmt"
)

// ViewStateStore persists the key/value query state of the views.
type ViewStateStore struct {
	db *DB
}

// NewViewStateStore creates a new ViewStateStore.
func NewViewStateStore(db *DB) *ViewStateStore {
	return &ViewStateStore{db: db}
}

// LoadAll returns every saved key.
func (s *ViewStateStore) LoadAll(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.conn.QueryContext(ctx, `SELECT key, value FROM view_state`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		values[k] = v
	}
	return values, rows.Err()
}

// Save writes the given keys. An empty value deletes the key.
func (s *ViewStateStore) Save(ctx context.Context, values map[string]string) error {
	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for k, v := range values {
		if v == "" {
			if _, err := tx.ExecContext(ctx, `DELETE FROM view_state WHERE key = ?`, k); err != nil {
				return fmt.Errorf("delete %s: %w", k, err)
			}
			continue
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO view_state (key, value, updated_at) VALUES (?, ?, datetime('now'))
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = datetime('now')
		`, k, v)
		if err != nil {
			return fmt.Errorf("save %s: %w", k, err)
		}
	}

	return tx.Commit()
}
