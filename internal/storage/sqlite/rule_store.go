package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/willibrandon/ruledeck/internal/alerts"
)

// RuleStore provides SQLite persistence for alert rules. It implements alerts.Source.
type RuleStore struct {
	db  *DB
	now func() time.Time
}

// NewRuleStore creates a new RuleStore.
func NewRuleStore(db *DB) *RuleStore {
	return &RuleStore{db: db, now: time.Now}
}

// ListRules returns the rules selected by filter ordered by position, then name.
func (s *RuleStore) ListRules(ctx context.Context, filter alerts.StateFilter) ([]alerts.Rule, error) {
	query := `
		SELECT id, name, dashboard_uri, panel_id, state, new_state_date, info
		FROM alert_rules
	`
	var args []any

	switch filter {
	case alerts.FilterAll, "":
	case alerts.FilterNotOK:
		query += " WHERE state IN (?, ?, ?)"
		args = append(args, alerts.StateAlerting.String(), alerts.StateNoData.String(), alerts.StatePending.String())
	default:
		if !filter.IsValid() {
			return nil, fmt.Errorf("%w: filter %q", alerts.ErrInvalidState, filter)
		}
		query += " WHERE state = ?"
		args = append(args, string(filter))
	}
	query += " ORDER BY position, name"

	rows, err := s.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []alerts.Rule
	for rows.Next() {
		var r alerts.Rule
		var state string
		if err := rows.Scan(&r.ID, &r.Name, &r.DashboardURI, &r.PanelID, &state, &r.NewStateDate, &r.Info); err != nil {
			return nil, err
		}
		r.State = alerts.AlertState(state)
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// SetPaused pauses or resumes a rule and records the transition.
// A resumed rule is unknown until it is evaluated again.
func (s *RuleStore) SetPaused(ctx context.Context, id int64, paused bool) (alerts.AlertState, error) {
	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRowContext(ctx, `SELECT state FROM alert_rules WHERE id = ?`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: id %d", alerts.ErrRuleNotFound, id)
	}
	if err != nil {
		return "", err
	}

	prev := alerts.AlertState(current)
	next := alerts.StateUnknown
	reason := "resume"
	if paused {
		next = alerts.StatePaused
		reason = "pause"
	}
	if prev == next || (!paused && prev != alerts.StatePaused) {
		return prev, nil
	}

	now := s.now()
	if _, err := tx.ExecContext(ctx,
		`UPDATE alert_rules SET state = ?, new_state_date = ?, info = '' WHERE id = ?`,
		next.String(), now, id,
	); err != nil {
		return "", err
	}

	event := alerts.NewEvent(id, prev, next, reason)
	event.OccurredAt = now
	if err := insertEvent(ctx, tx, event); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return next, nil
}

// Upsert inserts or replaces rules, keeping their order as position.
// State changes of existing rules are recorded with reason "import".
func (s *RuleStore) Upsert(ctx context.Context, rules []alerts.Rule) error {
	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for pos, r := range rules {
		if !r.State.IsValid() {
			return fmt.Errorf("rule %d: %w: %q", r.ID, alerts.ErrInvalidState, r.State)
		}
		if r.NewStateDate.IsZero() {
			r.NewStateDate = s.now()
		}

		var prev string
		err := tx.QueryRowContext(ctx, `SELECT state FROM alert_rules WHERE id = ?`, r.ID).Scan(&prev)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			prev = ""
		case err != nil:
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO alert_rules (id, name, dashboard_uri, panel_id, state, new_state_date, info, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				dashboard_uri = excluded.dashboard_uri,
				panel_id = excluded.panel_id,
				state = excluded.state,
				new_state_date = excluded.new_state_date,
				info = excluded.info,
				position = excluded.position
		`, r.ID, r.Name, r.DashboardURI, r.PanelID, r.State.String(), r.NewStateDate, r.Info, pos)
		if err != nil {
			return fmt.Errorf("upsert rule %d: %w", r.ID, err)
		}

		if prev != "" && prev != r.State.String() {
			event := alerts.NewEvent(r.ID, alerts.AlertState(prev), r.State, "import")
			event.OccurredAt = s.now()
			if err := insertEvent(ctx, tx, event); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Count returns the number of stored rules.
func (s *RuleStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM alert_rules`).Scan(&n)
	return n, err
}

// GetHistoryForRule returns the transitions of a rule, newest first.
// If limit is 0, all events are returned.
func (s *RuleStore) GetHistoryForRule(ctx context.Context, ruleID int64, limit int) ([]alerts.Event, error) {
	query := `
		SELECT id, rule_id, prev_state, new_state, reason, occurred_at
		FROM alert_events
		WHERE rule_id = ?
		ORDER BY occurred_at DESC, id DESC
	`
	args := []any{ruleID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []alerts.Event
	for rows.Next() {
		var e alerts.Event
		var prevState, newState string
		if err := rows.Scan(&e.ID, &e.RuleID, &prevState, &newState, &e.Reason, &e.OccurredAt); err != nil {
			return nil, err
		}
		e.PrevState = alerts.AlertState(prevState)
		e.NewState = alerts.AlertState(newState)
		events = append(events, e)
	}
	return events, rows.Err()
}

// Prune removes events older than retention period.
// Returns number of deleted events.
func (s *RuleStore) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.now().Add(-retention)

	result, err := s.db.conn.ExecContext(ctx, `DELETE FROM alert_events WHERE occurred_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func insertEvent(ctx context.Context, tx *sql.Tx, e *alerts.Event) error {
	result, err := tx.ExecContext(ctx, `
		INSERT INTO alert_events (rule_id, prev_state, new_state, reason, occurred_at)
		VALUES (?, ?, ?, ?, ?)
	`, e.RuleID, e.PrevState.String(), e.NewState.String(), e.Reason, e.OccurredAt)
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}
