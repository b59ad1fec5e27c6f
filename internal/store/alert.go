package store

import (
	"database/sql"
	"errors"
	"time"
)

// Alert represents one confirmed wave detection stored in the database.
// ClearedAt is nil while the alert is still being displayed.
type Alert struct {
	ID          string
	TriggeredAt time.Time
	ClearedAt   *time.Time
	Reversals   int
}

// AlertRepository provides persistence operations for alerts.
type AlertRepository struct {
	db *sql.DB
}

// Alerts returns the alert repository for this store.
func (s *Store) Alerts() *AlertRepository {
	return &AlertRepository{db: s.db}
}

// Create inserts a new alert into the database.
func (r *AlertRepository) Create(a *Alert) error {
	_, err := r.db.Exec(
		`INSERT INTO alerts (id, triggered_at, reversals) VALUES (?, ?, ?)`,
		a.ID, a.TriggeredAt, a.Reversals,
	)
	return err
}

// Clear records when the alert stopped being displayed.
func (r *AlertRepository) Clear(id string, at time.Time) error {
	result, err := r.db.Exec(
		`UPDATE alerts SET cleared_at = ? WHERE id = ?`,
		at, id,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByID retrieves an alert by its ID.
func (r *AlertRepository) GetByID(id string) (*Alert, error) {
	a := &Alert{}
	var cleared sql.NullTime

	err := r.db.QueryRow(
		`SELECT id, triggered_at, cleared_at, reversals FROM alerts WHERE id = ?`,
		id,
	).Scan(&a.ID, &a.TriggeredAt, &cleared, &a.Reversals)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if cleared.Valid {
		a.ClearedAt = &cleared.Time
	}
	return a, nil
}

// List retrieves alerts newest first, up to limit rows.
// A non-positive limit returns everything.
func (r *AlertRepository) List(limit int) ([]*Alert, error) {
	query := `SELECT id, triggered_at, cleared_at, reversals FROM alerts ORDER BY triggered_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []*Alert
	for rows.Next() {
		a := &Alert{}
		var cleared sql.NullTime

		if err := rows.Scan(&a.ID, &a.TriggeredAt, &cleared, &a.Reversals); err != nil {
			return nil, err
		}
		if cleared.Valid {
			a.ClearedAt = &cleared.Time
		}
		alerts = append(alerts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return alerts, nil
}

// CountSince returns how many alerts triggered at or after t.
func (r *AlertRepository) CountSince(t time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM alerts WHERE triggered_at >= ?`,
		t,
	).Scan(&count)
	return count, err
}

// Delete removes an alert from the database by its ID.
func (r *AlertRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM alerts WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
