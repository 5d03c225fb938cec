// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package store persists a local audit log of recoveries so operators can see
// which executions were recovered into which state machines.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Recovery is one recorded recovery run.
type Recovery struct {
	// ID is a generated identifier for this record
	ID string `json:"id"`

	// ExecutionARN is the failed execution that was recovered
	ExecutionARN string `json:"execution_arn"`

	// FailedState is the state the execution failed at
	FailedState string `json:"failed_state"`

	// NewMachineARN is the published machine carrying the GoToState graft
	NewMachineARN string `json:"new_machine_arn"`

	// CreatedAt is when the recovery was recorded
	CreatedAt time.Time `json:"created_at"`
}

// Store is a SQLite-backed recovery log.
//
// Database location: ~/.config/stepresume/stepresume.db
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the recovery log at path and runs migrations.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// WAL mode so a concurrent `history` read doesn't block a write.
	connStr := path + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// migrate creates the database schema.
func (s *Store) migrate(ctx context.Context) error {
	const schema = `CREATE TABLE IF NOT EXISTS recoveries (
		id TEXT PRIMARY KEY,
		execution_arn TEXT NOT NULL,
		failed_state TEXT NOT NULL,
		new_machine_arn TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return err
	}
	return nil
}

// Record inserts a recovery into the log. A missing ID or CreatedAt is filled in.
func (s *Store) Record(ctx context.Context, rec Recovery) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO recoveries (id, execution_arn, failed_state, new_machine_arn, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.ExecutionARN, rec.FailedState, rec.NewMachineARN,
		rec.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to record recovery: %w", err)
	}
	return nil
}

// List returns the most recent recoveries, newest first. limit <= 0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]Recovery, error) {
	query := `SELECT id, execution_arn, failed_state, new_machine_arn, created_at
		FROM recoveries ORDER BY created_at DESC, id`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recoveries: %w", err)
	}
	defer rows.Close()

	var recs []Recovery
	for rows.Next() {
		var rec Recovery
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.ExecutionARN, &rec.FailedState, &rec.NewMachineARN, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan recovery: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			rec.CreatedAt = ts
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
