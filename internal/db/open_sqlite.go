package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/canopyui/canopy/pkg/api"
)

const schema = `
CREATE TABLE IF NOT EXISTS docs (
	id         TEXT PRIMARY KEY,
	path       TEXT NOT NULL,
	title      TEXT NOT NULL,
	body       TEXT NOT NULL,
	tags       TEXT NOT NULL DEFAULT '[]',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS docs_path ON docs(path);
`

// Open opens (creating if needed) the sqlite library at path.
func Open(ctx context.Context, path string) (Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	sdb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := sdb.ExecContext(ctx, schema); err != nil {
		sdb.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &sqliteStore{db: sdb}, nil
}

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) List(ctx context.Context) ([]api.Doc, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, path, title, body, tags, created_at, updated_at FROM docs ORDER BY path ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []api.Doc
	for rows.Next() {
		d, err := scanDoc(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Get(ctx context.Context, id string) (api.Doc, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, path, title, body, tags, created_at, updated_at FROM docs WHERE id=?`, id)
	d, err := scanDoc(row)
	if err == sql.ErrNoRows {
		return api.Doc{}, ErrNotFound
	}
	return d, err
}

func (s *sqliteStore) Put(ctx context.Context, d api.Doc) error {
	tagsJSON, _ := json.Marshal(d.Tags)
	_, err := s.db.ExecContext(ctx, `
INSERT INTO docs(id, path, title, body, tags, created_at, updated_at)
VALUES(?,?,?,?,?,?,?)
ON CONFLICT(id) DO UPDATE SET
	path=excluded.path, title=excluded.title, body=excluded.body,
	tags=excluded.tags, updated_at=excluded.updated_at`,
		d.ID, d.Path, d.Title, d.Body, string(tagsJSON), d.CreatedAt.UTC(), d.UpdatedAt.UTC())
	return err
}

func (s *sqliteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM docs WHERE id=?`, id)
	return err
}

func (s *sqliteStore) Close() error { return s.db.Close() }

type rowScanner interface{ Scan(dest ...any) error }

func scanDoc(r rowScanner) (api.Doc, error) {
	var d api.Doc
	var tagsJSON string
	if err := r.Scan(&d.ID, &d.Path, &d.Title, &d.Body, &tagsJSON, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return api.Doc{}, err
	}
	_ = json.Unmarshal([]byte(tagsJSON), &d.Tags)
	return d, nil
}
