package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"aicoder/internal/config"
	"aicoder/internal/errors"
	"aicoder/pkg/types"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock ticks one minute per call.
func fakeClock() clock {
	t := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("p-%02d", n)
	}
}

type storeFactory func(t *testing.T) Repository

func yamlFactory(t *testing.T) Repository {
	s, err := NewYAMLStore(filepath.Join(t.TempDir(), "projects.yaml"))
	require.NoError(t, err)
	s.now, s.newID = fakeClock(), sequentialIDs()
	return s
}

func sqliteFactory(t *testing.T) Repository {
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "projects.db"))
	require.NoError(t, err)
	s.now, s.newID = fakeClock(), sequentialIDs()
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRepositories(t *testing.T) {
	for name, factory := range map[string]storeFactory{
		config.DriverYAML:   yamlFactory,
		config.DriverSQLite: sqliteFactory,
	} {
		t.Run(name, func(t *testing.T) {
			t.Run("empty", func(t *testing.T) { testEmpty(t, factory(t)) })
			t.Run("add and list", func(t *testing.T) { testAddList(t, factory(t)) })
			t.Run("rename", func(t *testing.T) { testRename(t, factory(t)) })
			t.Run("delete", func(t *testing.T) { testDelete(t, factory(t)) })
			t.Run("invalid input", func(t *testing.T) { testInvalid(t, factory(t)) })
			t.Run("duplicate id", func(t *testing.T) { testDuplicate(t, factory(t)) })
		})
	}
}

func testEmpty(t *testing.T, repo Repository) {
	projects, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)

	_, err = repo.Get(context.Background(), "nope")
	assert.True(t, errors.IsNotFound(err))
}

func testAddList(t *testing.T, repo Repository) {
	ctx := context.Background()
	a, err := repo.Add(ctx, "  Todo API ", []string{"go", " ", "go", "rest"})
	require.NoError(t, err)
	b, err := repo.Add(ctx, "Snake game", nil)
	require.NoError(t, err)

	assert.Equal(t, "p-01", a.ID)
	assert.Equal(t, "Todo API", a.Title)
	assert.Equal(t, []string{"go", "rest"}, a.Tags)
	assert.Equal(t, "2025-03-01", a.CreatedAt.UTC().Format(types.DateLayout))

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff([]types.Project{a, b}, projects, cmp.Comparer(func(x, y time.Time) bool { return x.Equal(y) })); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}

	got, err := repo.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Snake game", got.Title)
}

func testRename(t *testing.T, repo Repository) {
	ctx := context.Background()
	p, err := repo.Add(ctx, "Weather bot", nil)
	require.NoError(t, err)

	require.NoError(t, repo.Rename(ctx, p.ID, "Weather bot v2"))
	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Weather bot v2", got.Title)

	err = repo.Rename(ctx, "missing", "x")
	assert.True(t, errors.Is(err, errors.ErrProjectNotFound))
	assert.True(t, errors.IsInvalidInput(repo.Rename(ctx, p.ID, "   ")))
}

func testDelete(t *testing.T, repo Repository) {
	ctx := context.Background()
	a, _ := repo.Add(ctx, "one", nil)
	b, _ := repo.Add(ctx, "two", nil)
	c, _ := repo.Add(ctx, "three", nil)

	require.NoError(t, repo.Delete(ctx, b.ID))
	projects, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, a.ID, projects[0].ID)
	assert.Equal(t, c.ID, projects[1].ID)

	err = repo.Delete(ctx, b.ID)
	var storeErr *errors.StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, b.ID, storeErr.ID())
	assert.Equal(t, repo.Path(), storeErr.Path())
}

func testInvalid(t *testing.T, repo Repository) {
	_, err := repo.Add(context.Background(), "", nil)
	assert.True(t, errors.IsInvalidInput(err))
}

func testDuplicate(t *testing.T, repo Repository) {
	switch s := repo.(type) {
	case *YAMLStore:
		s.newID = func() string { return "same" }
	case *SQLiteStore:
		s.newID = func() string { return "same" }
	}
	ctx := context.Background()
	_, err := repo.Add(ctx, "first", nil)
	require.NoError(t, err)
	_, err = repo.Add(ctx, "second", nil)
	assert.True(t, errors.IsKind(err, errors.DuplicateProject))
}

func TestYAMLStoreCancelledContext(t *testing.T) {
	repo := yamlFactory(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.Add(ctx, "x", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestYAMLStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.yaml")
	require.NoError(t, os.WriteFile(path, []byte("projects: [::"), 0644))
	repo, err := NewYAMLStore(path)
	require.NoError(t, err)

	_, err = repo.List(context.Background())
	assert.True(t, errors.IsKind(err, errors.StoreReadFailed))
}

func TestYAMLStoreReadsHandEditedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.yaml")
	content := `
projects:
  - id: b
    title: Later
    created_at: 2025-02-01T10:00:00Z
  - id: a
    title: Earlier
    created_at: 2025-01-01T10:00:00Z
    tags: [python]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	repo, err := NewYAMLStore(path)
	require.NoError(t, err)

	projects, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "a", projects[0].ID)
	assert.Equal(t, []string{"python"}, projects[0].Tags)
	assert.Equal(t, "b", projects[1].ID)
}

func TestYAMLStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewYAMLStore(filepath.Join(dir, "projects.yaml"))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := repo.Add(context.Background(), fmt.Sprintf("p%d", i), nil)
		require.NoError(t, err)
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "projects.yaml", entries[0].Name())
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	repo, err := Open(ctx, config.DriverYAML, filepath.Join(dir, "p.yaml"))
	require.NoError(t, err)
	assert.IsType(t, &YAMLStore{}, repo)

	repo, err = Open(ctx, config.DriverSQLite, filepath.Join(dir, "p.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, repo)
	require.NoError(t, repo.Close())

	_, err = Open(ctx, "firestore", filepath.Join(dir, "p"))
	assert.True(t, errors.IsKind(err, errors.UnsupportedDriver))

	_, err = NewYAMLStore("")
	assert.True(t, errors.IsInvalidInput(err))
}

func TestOpenConfigured(t *testing.T) {
	cfg := config.New()
	cfg.Store.Path = filepath.Join(t.TempDir(), "data", "projects.yaml")
	repo, err := OpenConfigured(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.Store.Path, repo.Path())
}

func TestSQLiteStorePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "projects.db")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	p, err := s.Add(ctx, "Persistent", []string{"kotlin"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Persistent", got.Title)
	assert.Equal(t, []string{"kotlin"}, got.Tags)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))
}
