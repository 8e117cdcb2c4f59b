package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"aicoder/internal/errors"
	"aicoder/internal/log"
	"aicoder/pkg/types"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	tags       TEXT NOT NULL DEFAULT '[]',
	code       TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS projects_created_at ON projects(created_at, id);
`

// SQLiteStore keeps projects in a SQLite database.
type SQLiteStore struct {
	path  string
	db    *sql.DB
	now   clock
	newID func() string
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.NewInputError("store path must not be empty", "path", nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.NewStoreError("cannot create store directory", "", errors.StoreWriteFailed, err).WithPath(path)
	}

	// modernc.org/sqlite registers itself as "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewStoreError("cannot open project database", "", errors.StoreReadFailed, err).WithPath(path)
	}
	// Pragmas are per connection; one connection keeps them in force.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, errors.NewStoreError("cannot configure project database", "", errors.StoreReadFailed, err).WithPath(path)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, errors.NewStoreError("cannot migrate project database", "", errors.StoreWriteFailed, err).WithPath(path)
	}

	return &SQLiteStore{path: path, db: db, now: defaultClock, newID: newID}, nil
}

func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) List(ctx context.Context) ([]types.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, created_at, tags, code FROM projects ORDER BY created_at, id`)
	if err != nil {
		return nil, s.readErr(err)
	}
	defer rows.Close()

	var projects []types.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, s.readErr(err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, s.readErr(err)
	}
	return projects, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (types.Project, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, title, created_at, tags, code FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return types.Project{}, notFound(id, s.path)
	}
	if err != nil {
		return types.Project{}, s.readErr(err)
	}
	return p, nil
}

func (s *SQLiteStore) Add(ctx context.Context, title string, tags []string) (types.Project, error) {
	title, err := cleanTitle(title)
	if err != nil {
		return types.Project{}, err
	}
	p := types.Project{
		ID:        s.newID(),
		Title:     title,
		CreatedAt: s.now(),
		Tags:      cleanTags(tags),
	}
	tagsJSON, err := json.Marshal(p.Tags)
	if err != nil {
		return types.Project{}, s.writeErr(p.ID, err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (id, title, created_at, tags, code) VALUES (?, ?, ?, ?, ?) ON CONFLICT(id) DO NOTHING`,
		p.ID, p.Title, p.CreatedAt.UnixNano(), string(tagsJSON), p.Code)
	if err != nil {
		return types.Project{}, s.writeErr(p.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.Project{}, errors.NewStoreError("duplicate project id", p.ID, errors.DuplicateProject, nil).WithPath(s.path)
	}
	log.LogWithFields(log.F("id", p.ID), log.F("store", s.path)).Debug("Project added")
	return p, nil
}

func (s *SQLiteStore) Rename(ctx context.Context, id, title string) error {
	title, err := cleanTitle(title)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE projects SET title = ? WHERE id = ?`, title, id)
	return s.checkAffected(id, res, err)
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	return s.checkAffected(id, res, err)
}

func (s *SQLiteStore) checkAffected(id string, res sql.Result, err error) error {
	if err != nil {
		return s.writeErr(id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return s.writeErr(id, err)
	}
	if n == 0 {
		return notFound(id, s.path)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (types.Project, error) {
	var (
		p        types.Project
		created  int64
		tagsJSON string
	)
	if err := row.Scan(&p.ID, &p.Title, &created, &tagsJSON, &p.Code); err != nil {
		return types.Project{}, err
	}
	p.CreatedAt = time.Unix(0, created).UTC()
	if tagsJSON != "" {
		if err := json.Unmarshal([]byte(tagsJSON), &p.Tags); err != nil {
			return types.Project{}, err
		}
	}
	return p, nil
}

func (s *SQLiteStore) readErr(err error) error {
	return errors.NewStoreError("cannot read project database", "", errors.StoreReadFailed, err).WithPath(s.path)
}

func (s *SQLiteStore) writeErr(id string, err error) error {
	return errors.NewStoreError("cannot write project database", id, errors.StoreWriteFailed, err).WithPath(s.path)
}
