package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aicoder/internal/errors"
	"aicoder/pkg/testutils"
	"aicoder/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI against a throwaway config and store.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		testutils.WriteConfig(t, dir, "store:\n  watch: false\n")
	}

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	base := []string{"--config", cfgPath, "--store-path", filepath.Join(dir, "projects.yaml")}
	cmd.SetArgs(append(base[:len(base):len(base)], args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestProjectsLifecycle(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "projects", "list")
	require.NoError(t, err)
	assert.Equal(t, "No projects.\n", out)

	out, err = run(t, dir, "projects", "add", "Todo API", "--tag", "go", "--tag", "api")
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	_, err = run(t, dir, "projects", "add", "Chess engine")
	require.NoError(t, err)

	out, err = run(t, dir, "projects", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Todo API")
	assert.Contains(t, out, "Chess engine")

	out, err = run(t, dir, "projects", "list", "--match", "*api*", "--json")
	require.NoError(t, err)
	var listed []types.Project
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, id, listed[0].ID)
	assert.Equal(t, []string{"go", "api"}, listed[0].Tags)

	_, err = run(t, dir, "projects", "rename", id, "Todo API v2")
	require.NoError(t, err)
	out, err = run(t, dir, "projects", "list", "--match", "todo*")
	require.NoError(t, err)
	assert.Contains(t, out, "Todo API v2")

	_, err = run(t, dir, "projects", "rm", id)
	require.NoError(t, err)
	out, err = run(t, dir, "projects", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Todo API")

	_, err = run(t, dir, "projects", "rm", id)
	assert.True(t, errors.IsNotFound(err))
}

func TestProjectsSQLiteDriver(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteConfig(t, dir, "store:\n  driver: sqlite\n  watch: false\n")

	out, err := run(t, dir, "--store-path", filepath.Join(dir, "projects.db"), "projects", "add", "Weather app")
	require.NoError(t, err)
	id := strings.TrimSpace(out)

	out, err = run(t, dir, "--store-path", filepath.Join(dir, "projects.db"), "projects", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "Weather app")
	assert.FileExists(t, filepath.Join(dir, "projects.db"))
}

func TestAddRejectsBlankTitle(t *testing.T) {
	_, err := run(t, t.TempDir(), "projects", "add", "   ")
	assert.True(t, errors.IsInvalidInput(err))
}

func TestUnknownStoreDriver(t *testing.T) {
	_, err := run(t, t.TempDir(), "--store-driver", "mongo", "projects", "list")
	assert.True(t, errors.IsInvalidConfig(err))
}

func TestInvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteConfig(t, dir, "swipe:\n  commit_threshold: 1.5\n")
	_, err := run(t, dir, "projects", "list")
	assert.True(t, errors.IsInvalidConfig(err))
}

func TestSwipeSimulate(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		decision string
		action   string
	}{
		{"slow past threshold", []string{"--dx", "100,200,300", "--velocity", "0"}, "commit(left-to-right)", "Delete"},
		{"slow short drag", []string{"--dx", "40,80", "--velocity", "0"}, "cancel", "none"},
		{"fling", []string{"--dx", "20", "--velocity", "1500"}, "commit(left-to-right)", "Delete"},
		{"fling against the drag", []string{"--dx", "100", "--velocity", "-1500"}, "cancel", "none"},
		{"leftward", []string{"--dx", "-300", "--velocity", "0"}, "commit(right-to-left)", "Edit"},
		{"tracked velocity", []string{"--dx", "10,30", "--interval", "10ms"}, "commit(left-to-right)", "Delete"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"swipe", "simulate", "--width", "400"}, tt.args...)
			out, err := run(t, t.TempDir(), args...)
			require.NoError(t, err)
			assert.Contains(t, out, "decision: "+tt.decision+"\n")
			assert.Contains(t, out, "action: "+tt.action+"\n")
			assert.Contains(t, out, "state: idle\n")
		})
	}
}

func TestSwipeSimulateNeedsSamples(t *testing.T) {
	_, err := run(t, t.TempDir(), "swipe", "simulate")
	assert.Error(t, err)
}
