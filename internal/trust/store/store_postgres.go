package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"medtrust/pkg/platform/sentinel"
)

// PostgresStore reads and writes the trust_score column of the users table.
// Users are provisioned elsewhere; Set on an unknown name returns
// sentinel.ErrNotFound instead of inserting a row.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, identity string) (int, error) {
	var score int
	err := s.db.QueryRowContext(ctx,
		`SELECT trust_score FROM users WHERE name = $1`,
		identity,
	).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, sentinel.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("select trust score: %w", err)
	}
	return score, nil
}

func (s *PostgresStore) Set(ctx context.Context, identity string, score int, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET trust_score = $2, last_update = $3 WHERE name = $1`,
		identity, score, at,
	)
	if err != nil {
		return fmt.Errorf("update trust score: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update trust score rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update trust score for %q: %w", identity, sentinel.ErrNotFound)
	}
	return nil
}
