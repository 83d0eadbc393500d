// Package catalog provides optional bookkeeping for generated fixtures.
//
// Large sort benchmarks accumulate many fixture files across directories;
// the catalog records what was generated where, with which distribution and
// seed, so a fixture can be reproduced or cleaned up later. It is strictly
// opt-in: the generate and verify flows never touch it unless the caller
// asks.
package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Entry describes one cataloged fixture.
type Entry struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Records   int64     `json:"records"`
	Bytes     int64     `json:"bytes"`
	Mode      string    `json:"mode"`
	Seed      *int64    `json:"seed,omitempty"` // nil when entropy-seeded
	CreatedAt time.Time `json:"created_at"`
}

// Catalog is a SQLite-backed fixture ledger.
type Catalog struct {
	db *sql.DB
}

// Open creates or opens the catalog database at path and applies the
// schema. Idempotent; safe to call against an existing catalog.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to catalog: %w", err)
	}

	// SQLite allows one writer at a time; a single connection avoids
	// SQLITE_BUSY without a retry loop.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Catalog{db: db}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Add inserts a fixture entry. A missing ID is assigned a fresh UUID and a
// zero CreatedAt is stamped with the current time; the stored entry is
// returned either way.
func (c *Catalog) Add(ctx context.Context, entry Entry) (Entry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	var seed any
	if entry.Seed != nil {
		seed = *entry.Seed
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO fixtures (id, path, records, bytes, mode, seed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID,
		entry.Path,
		entry.Records,
		entry.Bytes,
		entry.Mode,
		seed,
		entry.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("add fixture: %w", err)
	}

	return entry, nil
}

// List returns all cataloged fixtures, newest first.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, path, records, bytes, mode, seed, created_at
		FROM fixtures
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			seed      sql.NullInt64
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.Path, &e.Records, &e.Bytes, &e.Mode, &seed, &createdAt); err != nil {
			return nil, fmt.Errorf("list fixtures: %w", err)
		}
		if seed.Valid {
			v := seed.Int64
			e.Seed = &v
		}
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("list fixtures: bad created_at %q: %w", createdAt, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}

	return entries, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}
