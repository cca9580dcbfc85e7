// Package catalog persists metadata about generated tracks in a SQLite
// database: one row per composed piece with its display name, randomly
// assigned meter and tempo, and output path.
package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Track is one generated piece.
type Track struct {
	ID        string
	Name      string
	Meter     string
	Tempo     int
	Path      string
	CreatedAt time.Time
}

// Catalog wraps the SQLite store.
type Catalog struct {
	db *sql.DB
}

// Open opens (or creates) the catalog database at path, creating parent
// directories as needed.
func Open(path string) (*Catalog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS tracks (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		meter TEXT NOT NULL,
		tempo INTEGER NOT NULL,
		path TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tracks_created_at ON tracks(created_at);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create catalog schema: %w", err)
	}

	return &Catalog{db: db}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Add records a generated track, assigning it a fresh id and timestamp.
// The stored track is returned.
func (c *Catalog) Add(t Track) (Track, error) {
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now()

	_, err := c.db.Exec(`
		INSERT INTO tracks (id, name, meter, tempo, path, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Meter, t.Tempo, t.Path, t.CreatedAt.Unix())
	if err != nil {
		return Track{}, fmt.Errorf("insert track: %w", err)
	}
	return t, nil
}

// List returns all recorded tracks, oldest first.
func (c *Catalog) List() ([]Track, error) {
	rows, err := c.db.Query(`
		SELECT id, name, meter, tempo, path, created_at
		FROM tracks ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		var t Track
		var createdAt int64
		if err := rows.Scan(&t.ID, &t.Name, &t.Meter, &t.Tempo, &t.Path, &createdAt); err != nil {
			return nil, fmt.Errorf("scan track: %w", err)
		}
		t.CreatedAt = time.Unix(createdAt, 0)
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tracks: %w", err)
	}
	return tracks, nil
}
