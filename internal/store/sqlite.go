package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/probeai/interviewd/internal/domain"
)

// SQLiteStore is a durable Store backed by SQLite. Session state is stored as
// a JSON document, so the schema survives model additions without migrations.
// Expiry follows the same last-touch contract as MemoryStore.
type SQLiteStore struct {
	db      *sql.DB
	timeout time.Duration
	now     func() time.Time
}

// NewSQLiteStore opens (or creates) the database at dsn.
func NewSQLiteStore(dsn string, timeout time.Duration) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Serialized writes; the database/sql pool otherwise races sqlite locks.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, timeout: timeout, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS interviews (
		interview_id TEXT PRIMARY KEY,
		state TEXT NOT NULL,
		last_touch INTEGER NOT NULL
	)`)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Create stores a new interview.
func (s *SQLiteStore) Create(ctx context.Context, iv *domain.Interview) error {
	state, err := json.Marshal(iv)
	if err != nil {
		return fmt.Errorf("failed to marshal interview: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO interviews (interview_id, state, last_touch) VALUES (?, ?, ?)`,
		iv.ID, string(state), s.now().UnixMilli())
	if err != nil {
		var existing int
		row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM interviews WHERE interview_id = ?`, iv.ID)
		if scanErr := row.Scan(&existing); scanErr == nil && existing > 0 {
			return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, iv.ID)
		}
		return err
	}
	return nil
}

// Get returns the interview if present and not expired, refreshing its
// last-touch timestamp. Expired rows are deleted in the same transaction.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*domain.Interview, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var state string
	var lastTouch int64
	row := tx.QueryRowContext(ctx, `SELECT state, last_touch FROM interviews WHERE interview_id = ?`, id)
	if err := row.Scan(&state, &lastTouch); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
		}
		return nil, err
	}

	now := s.now()
	if now.Sub(time.UnixMilli(lastTouch)) > s.timeout {
		if _, err := tx.ExecContext(ctx, `DELETE FROM interviews WHERE interview_id = ?`, id); err != nil {
			return nil, err
		}
		if err := tx.Commit(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE interviews SET last_touch = ? WHERE interview_id = ?`, now.UnixMilli(), id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	var iv domain.Interview
	if err := json.Unmarshal([]byte(state), &iv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal interview: %w", err)
	}
	return &iv, nil
}

// Update overwrites an existing interview.
func (s *SQLiteStore) Update(ctx context.Context, iv *domain.Interview) error {
	state, err := json.Marshal(iv)
	if err != nil {
		return fmt.Errorf("failed to marshal interview: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE interviews SET state = ?, last_touch = ? WHERE interview_id = ?`,
		string(state), s.now().UnixMilli(), iv.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, iv.ID)
	}
	return nil
}

// Delete removes an interview. Idempotent.
func (s *SQLiteStore) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM interviews WHERE interview_id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SweepExpired removes every row past the idle timeout.
func (s *SQLiteStore) SweepExpired(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.timeout).UnixMilli()
	res, err := s.db.ExecContext(ctx, `DELETE FROM interviews WHERE last_touch < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// ActiveCount sweeps, then counts live sessions.
func (s *SQLiteStore) ActiveCount(ctx context.Context) (int, error) {
	if _, err := s.SweepExpired(ctx); err != nil {
		return 0, err
	}
	var n int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM interviews`)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// List returns all live sessions.
func (s *SQLiteStore) List(ctx context.Context) ([]*domain.Interview, error) {
	if _, err := s.SweepExpired(ctx); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT state FROM interviews ORDER BY interview_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Interview
	for rows.Next() {
		var state string
		if err := rows.Scan(&state); err != nil {
			return nil, err
		}
		var iv domain.Interview
		if err := json.Unmarshal([]byte(state), &iv); err != nil {
			return nil, fmt.Errorf("failed to unmarshal interview: %w", err)
		}
		out = append(out, &iv)
	}
	return out, rows.Err()
}
