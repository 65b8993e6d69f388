package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"medtrust/internal/patient"
	"medtrust/pkg/platform/sentinel"
)

// PostgresStore reads the patients table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*patient.Record, error) {
	var (
		r   patient.Record
		age sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, age, gender, email, diagnosis, treatment, notes
		FROM patients
		WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.Name, &age, &r.Gender, &r.Email, &r.Diagnosis, &r.Treatment, &r.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select patient: %w", err)
	}
	r.Age = int(age.Int64)
	return &r, nil
}

// Upsert writes a record, used by seeding and tests.
func (s *PostgresStore) Upsert(ctx context.Context, r patient.Record) error {
	if r.ID == "" {
		r.ID = patient.ID(r.Name)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO patients (id, name, age, gender, email, diagnosis, treatment, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			email = EXCLUDED.email,
			diagnosis = EXCLUDED.diagnosis,
			treatment = EXCLUDED.treatment,
			notes = EXCLUDED.notes`,
		r.ID, r.Name, r.Age, r.Gender, r.Email, r.Diagnosis, r.Treatment, r.Notes,
	)
	if err != nil {
		return fmt.Errorf("upsert patient: %w", err)
	}
	return nil
}
