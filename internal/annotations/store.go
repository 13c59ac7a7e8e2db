package annotations

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS annotations (
	id         TEXT PRIMARY KEY,
	series     TEXT NOT NULL,
	frame      INTEGER NOT NULL,
	label      TEXT NOT NULL DEFAULT '',
	tool       TEXT NOT NULL,
	value      REAL NOT NULL DEFAULT 0,
	unit       TEXT NOT NULL DEFAULT '',
	x1         REAL NOT NULL,
	y1         REAL NOT NULL,
	x2         REAL NOT NULL,
	y2         REAL NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_annotations_series ON annotations(series, frame);
`

// Store persists annotations in a local sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the annotation database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open annotation db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open annotation db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init annotation schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put inserts or replaces an annotation. A missing id or created_at is
// filled in.
func (s *Store) Put(a *Annotation) error {
	if a.ID == "" {
		a.ID = NewID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO annotations
			(id, series, frame, label, tool, value, unit, x1, y1, x2, y2, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Series, a.Frame, a.Label, a.Tool, a.Value, a.Unit,
		a.X1, a.Y1, a.X2, a.Y2, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("save annotation %s: %w", a.ID, err)
	}
	return nil
}

// Get returns the annotation with the given id, or nil when absent.
func (s *Store) Get(id string) (*Annotation, error) {
	row := s.db.QueryRow(`
		SELECT id, series, frame, label, tool, value, unit, x1, y1, x2, y2, created_at
		FROM annotations WHERE id = ?`, id)
	a := &Annotation{}
	err := row.Scan(&a.ID, &a.Series, &a.Frame, &a.Label, &a.Tool, &a.Value,
		&a.Unit, &a.X1, &a.Y1, &a.X2, &a.Y2, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load annotation %s: %w", id, err)
	}
	return a, nil
}

// List returns all annotations for a series ordered by frame then creation.
func (s *Store) List(series string) ([]*Annotation, error) {
	rows, err := s.db.Query(`
		SELECT id, series, frame, label, tool, value, unit, x1, y1, x2, y2, created_at
		FROM annotations WHERE series = ? ORDER BY frame, created_at`, series)
	if err != nil {
		return nil, fmt.Errorf("list annotations for %s: %w", series, err)
	}
	defer rows.Close()

	var out []*Annotation
	for rows.Next() {
		a := &Annotation{}
		if err := rows.Scan(&a.ID, &a.Series, &a.Frame, &a.Label, &a.Tool,
			&a.Value, &a.Unit, &a.X1, &a.Y1, &a.X2, &a.Y2, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan annotation: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete removes an annotation. Deleting an unknown id is not an error.
func (s *Store) Delete(id string) error {
	if _, err := s.db.Exec(`DELETE FROM annotations WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete annotation %s: %w", id, err)
	}
	return nil
}

// SetLabel updates the label of an existing annotation.
func (s *Store) SetLabel(id, label string) error {
	res, err := s.db.Exec(`UPDATE annotations SET label = ? WHERE id = ?`, label, id)
	if err != nil {
		return fmt.Errorf("label annotation %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("label annotation %s: not found", id)
	}
	return nil
}
