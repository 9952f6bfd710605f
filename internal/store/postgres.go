package store

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaSQL is embedded so the connector can bootstrap its ledger table.
//
//go:embed schema.sql
var schemaSQL string

// Submission is one forwarding attempt as recorded in the ledger.
type Submission struct {
	ID         uuid.UUID
	Source     string
	Events     int
	StatusCode int
	OK         bool
	Error      string
	CreatedAt  time.Time
}

// Summary aggregates submissions for one source over a window.
type Summary struct {
	Succeeded int64
	Failed    int64
	Events    int64
}

// PostgresStore records submission outcomes. It never replays or retries them.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a connection pool and fails fast if DB is unreachable.
func NewPostgresStore(dbURL string) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("connect ledger: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping ledger: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// EnsureSchema applies schema.sql. Safe to run multiple times.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, schemaSQL)
	return err
}

// Ping is used by the readiness endpoint.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close shuts down the connection pool.
func (p *PostgresStore) Close() {
	p.pool.Close()
}

// RecordSubmission inserts one ledger row. Re-recording the same ID is a no-op.
func (p *PostgresStore) RecordSubmission(ctx context.Context, s Submission) error {
	if s.ID == uuid.Nil || s.Source == "" {
		return errors.New("submission id and source required")
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}

	_, err := p.pool.Exec(ctx, `
		INSERT INTO submissions(id, source, events, status_code, ok, error, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO NOTHING
	`, s.ID, s.Source, s.Events, s.StatusCode, s.OK, s.Error, s.CreatedAt.UTC())
	return err
}

// Summarize counts submissions for source in the half-open window [from,to).
func (p *PostgresStore) Summarize(ctx context.Context, source string, from, to time.Time) (Summary, error) {
	var s Summary
	err := p.pool.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE ok),
			COUNT(*) FILTER (WHERE NOT ok),
			COALESCE(SUM(events) FILTER (WHERE ok), 0)
		FROM submissions
		WHERE source=$1
		  AND created_at >= $2
		  AND created_at <  $3
	`, source, from, to).Scan(&s.Succeeded, &s.Failed, &s.Events)
	return s, err
}
