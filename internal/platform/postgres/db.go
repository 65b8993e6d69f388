package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // registers the "postgres" driver
)

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Schema is the DDL the stores expect. Applied by EnsureSchema at startup.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	name        TEXT PRIMARY KEY,
	role        TEXT NOT NULL DEFAULT '',
	trust_score INTEGER NOT NULL DEFAULT 80 CHECK (trust_score BETWEEN 0 AND 100),
	last_update TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS patients (
	id        TEXT PRIMARY KEY,
	name      TEXT NOT NULL,
	age       INTEGER,
	gender    TEXT NOT NULL DEFAULT '',
	email     TEXT NOT NULL DEFAULT '',
	diagnosis TEXT NOT NULL DEFAULT '',
	treatment TEXT NOT NULL DEFAULT '',
	notes     TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS access_audit (
	id            UUID PRIMARY KEY,
	occurred_at   TIMESTAMPTZ NOT NULL,
	actor         TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT '',
	action        TEXT NOT NULL,
	patient       TEXT NOT NULL DEFAULT '',
	ip            TEXT NOT NULL DEFAULT '',
	device        TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL,
	justification TEXT NOT NULL DEFAULT '',
	sealed        BOOLEAN NOT NULL DEFAULT FALSE,
	ai_label      TEXT NOT NULL DEFAULT '',
	ai_confidence DOUBLE PRECISION,
	ai_source     TEXT NOT NULL DEFAULT '',
	trust_delta   INTEGER NOT NULL DEFAULT 0,
	duration      TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS access_audit_actor_idx ON access_audit (actor, occurred_at DESC);
`

// EnsureSchema applies Schema idempotently.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
