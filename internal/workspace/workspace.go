// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workspace persists crawl state. A workspace is a named scope
// backed by one SQLite database file holding the dedup ledger (processed
// gist ids), the discovered-gist listing, and the per-term match lines.
// Workspaces are created explicitly, shared across runs, and never
// auto-deleted.
package workspace

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Workspace is an open handle on one workspace database. All ledger and
// sink access goes through a handle; nothing reads global path state.
type Workspace struct {
	Name string
	db   *sql.DB
}

// Path returns the database file for a workspace name.
func Path(dir, name string) string {
	return filepath.Join(dir, name+".db")
}

// Define creates (or reopens) the named workspace and initializes its
// schema. Defining an existing workspace is not an error; its contents
// are preserved.
func Define(dir, name string) (*Workspace, error) {
	if name == "" {
		return nil, fmt.Errorf("workspace name must not be empty")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating workspace directory: %w", err)
		}
	}
	return open(dir, name)
}

// Open opens an existing workspace. It fails when the database file does
// not exist so that a mistyped name cannot silently start a fresh ledger.
func Open(dir, name string) (*Workspace, error) {
	if name == "" {
		return nil, fmt.Errorf("no workspace selected; define one with 'workspace define <name>'")
	}
	if _, err := os.Stat(Path(dir, name)); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("workspace %q not found; define it with 'workspace define %s'", name, name)
		}
		return nil, fmt.Errorf("checking workspace %q: %w", name, err)
	}
	return open(dir, name)
}

func open(dir, name string) (*Workspace, error) {
	db, err := sql.Open("sqlite3", Path(dir, name)+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening workspace database: %w", err)
	}

	w := &Workspace{Name: name, db: db}
	if err := w.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return w, nil
}

// Close releases the database connection.
func (w *Workspace) Close() error {
	return w.db.Close()
}

func (w *Workspace) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS processed (
			gist_id TEXT PRIMARY KEY
		)`,
		`CREATE TABLE IF NOT EXISTS gists (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			url TEXT UNIQUE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			gist_url TEXT NOT NULL,
			term TEXT NOT NULL,
			line TEXT NOT NULL,
			score INTEGER NOT NULL,
			rank INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_url ON matches(gist_url)`,
	}
	for _, stmt := range statements {
		if _, err := w.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Contains reports whether the gist id is already in the dedup ledger.
func (w *Workspace) Contains(ctx context.Context, gistID string) (bool, error) {
	var one int
	err := w.db.QueryRowContext(ctx,
		`SELECT 1 FROM processed WHERE gist_id = ?`, gistID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading ledger: %w", err)
	}
	return true, nil
}

// MarkProcessed durably records the gist id in the ledger. The insert is
// its own transaction: the crawl must not advance to the next record
// until the id is committed. Marking an already-ledgered id is a no-op.
func (w *Workspace) MarkProcessed(ctx context.Context, gistID string) error {
	if _, err := w.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO processed (gist_id) VALUES (?)`, gistID,
	); err != nil {
		return fmt.Errorf("writing ledger entry %s: %w", gistID, err)
	}
	return nil
}

// DiscoveredGist is one row of the discovered-gist listing.
type DiscoveredGist struct {
	RowID int64
	URL   string
}

// ListDiscovered returns every discovered gist in insertion order.
func (w *Workspace) ListDiscovered(ctx context.Context) ([]DiscoveredGist, error) {
	rows, err := w.db.QueryContext(ctx, `SELECT id, url FROM gists ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing discovered gists: %w", err)
	}
	defer rows.Close()

	var out []DiscoveredGist
	for rows.Next() {
		var g DiscoveredGist
		if err := rows.Scan(&g.RowID, &g.URL); err != nil {
			return nil, fmt.Errorf("scanning gist row: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// GistURL looks up a discovered gist by its listing row id. The second
// return value reports whether the row exists.
func (w *Workspace) GistURL(ctx context.Context, rowID int64) (string, bool, error) {
	var url string
	err := w.db.QueryRowContext(ctx, `SELECT url FROM gists WHERE id = ?`, rowID).Scan(&url)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("looking up gist %d: %w", rowID, err)
	}
	return url, true, nil
}
