package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"medtrust/internal/audit"
)

// Store persists entries in the access_audit table.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const entryColumns = `id, occurred_at, actor, role, action, patient, ip, device, status,
	justification, sealed, ai_label, ai_confidence, ai_source, trust_delta, duration`

func (s *Store) Append(ctx context.Context, e audit.Entry) error {
	var confidence sql.NullFloat64
	if e.AIConfidence != nil {
		confidence = sql.NullFloat64{Float64: *e.AIConfidence, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO access_audit (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		e.ID, e.Timestamp, e.Actor, e.Role, string(e.Action), e.Patient, e.IP, e.Device, string(e.Status),
		e.Justification, e.Sealed, e.AILabel, confidence, e.AISource, e.TrustDelta, e.Duration,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (s *Store) ListByActor(ctx context.Context, actor string) ([]audit.Entry, error) {
	return s.list(ctx, `SELECT `+entryColumns+` FROM access_audit WHERE actor = $1 ORDER BY occurred_at`, actor)
}

func (s *Store) ListAll(ctx context.Context) ([]audit.Entry, error) {
	return s.list(ctx, `SELECT `+entryColumns+` FROM access_audit ORDER BY occurred_at`)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]audit.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	var out []audit.Entry
	for rows.Next() {
		var (
			e          audit.Entry
			action     string
			status     string
			confidence sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Actor, &e.Role, &action, &e.Patient, &e.IP, &e.Device, &status,
			&e.Justification, &e.Sealed, &e.AILabel, &confidence, &e.AISource, &e.TrustDelta, &e.Duration); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.Action = audit.Action(action)
		e.Status = audit.Status(status)
		if confidence.Valid {
			v := confidence.Float64
			e.AIConfidence = &v
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return out, nil
}
