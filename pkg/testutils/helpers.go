package testutils

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"aicoder/internal/store"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

// SeedYAMLStore creates a YAML project store in a temp dir holding one
// project per title, in the given order.
func SeedYAMLStore(t *testing.T, titles ...string) *store.YAMLStore {
	t.Helper()
	repo, err := store.NewYAMLStore(filepath.Join(t.TempDir(), "projects.yaml"))
	require.NoError(t, err)
	for _, title := range titles {
		_, err := repo.Add(context.Background(), title, nil)
		require.NoError(t, err)
		// distinct creation times keep the list order stable
		time.Sleep(time.Millisecond)
	}
	return repo
}

// Titles lists the project titles in store order.
func Titles(t *testing.T, repo store.Repository) []string {
	t.Helper()
	projects, err := repo.List(context.Background())
	require.NoError(t, err)
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Title)
	}
	return out
}

// WriteConfig writes a config file with the given YAML body into dir and
// returns its path.
func WriteConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	return ansi.Strip(str)
}
