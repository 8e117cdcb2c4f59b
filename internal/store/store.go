// Package store persists the project list. The swipe engine never touches
// it directly; the TUI and GUI call into a Repository when a committed
// gesture has been confirmed.
package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"aicoder/internal/config"
	"aicoder/internal/errors"
	"aicoder/pkg/types"

	"github.com/google/uuid"
)

// Repository is a persistent, ordered collection of projects.
type Repository interface {
	// List returns every project, oldest first.
	List(ctx context.Context) ([]types.Project, error)
	Get(ctx context.Context, id string) (types.Project, error)
	Add(ctx context.Context, title string, tags []string) (types.Project, error)
	Rename(ctx context.Context, id, title string) error
	Delete(ctx context.Context, id string) error
	// Path is the file backing the repository.
	Path() string
	Close() error
}

// Open opens the repository for driver at path.
func Open(ctx context.Context, driver, path string) (Repository, error) {
	switch driver {
	case config.DriverYAML, "":
		return NewYAMLStore(path)
	case config.DriverSQLite:
		return OpenSQLite(ctx, path)
	default:
		return nil, errors.NewStoreError(fmt.Sprintf("unsupported store driver %q", driver), "", errors.UnsupportedDriver, nil).WithPath(path)
	}
}

// OpenConfigured opens the repository described by cfg.
func OpenConfigured(ctx context.Context, cfg *config.Config) (Repository, error) {
	path, err := cfg.StorePath()
	if err != nil {
		return nil, err
	}
	return Open(ctx, cfg.Store.Driver, path)
}

// clock and newID are swapped in tests.
type clock func() time.Time

func defaultClock() time.Time { return time.Now().UTC() }

func newID() string { return uuid.NewString() }

func cleanTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", errors.NewInputError("project title must not be empty", "title", nil)
	}
	return title, nil
}

func cleanTags(tags []string) []string {
	var out []string
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// sortProjects orders projects by creation time, then id, so every store
// lists in the same stable order.
func sortProjects(projects []types.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		if !projects[i].CreatedAt.Equal(projects[j].CreatedAt) {
			return projects[i].CreatedAt.Before(projects[j].CreatedAt)
		}
		return projects[i].ID < projects[j].ID
	})
}

func notFound(id, path string) error {
	return errors.NewStoreError("project not found", id, errors.ProjectNotFound, nil).WithPath(path)
}
