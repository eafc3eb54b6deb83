// Package db provides optional PostgreSQL storage for generated
// resume records and artifact metadata. It is an audit log: writes
// are best-effort and never block the user-facing flow.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// SaveResumeRecord stores the canonical record generated for a
// session. Repeated saves for the same session overwrite the previous
// record, matching the session's replace-on-reset lifecycle.
func (db *DB) SaveResumeRecord(ctx context.Context, sessionID uuid.UUID, record any) error {
	content, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal resume record: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO resume_records (session_id, content)
		 VALUES ($1, $2)
		 ON CONFLICT (session_id) DO UPDATE SET content = $2, created_at = NOW()`,
		sessionID, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume record: %w", err)
	}
	return nil
}

// SaveArtifactMeta stores metadata about a rendered artifact.
func (db *DB) SaveArtifactMeta(ctx context.Context, sessionID uuid.UUID, fileName string, byteSize int) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO artifacts (session_id, file_name, byte_size)
		 VALUES ($1, $2, $3)`,
		sessionID, fileName, byteSize,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact metadata: %w", err)
	}
	return nil
}

// GetResumeRecord retrieves the stored record for a session, or nil
// when none exists.
func (db *DB) GetResumeRecord(ctx context.Context, sessionID uuid.UUID) ([]byte, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM resume_records WHERE session_id = $1`,
		sessionID,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume record: %w", err)
	}
	return content, nil
}
