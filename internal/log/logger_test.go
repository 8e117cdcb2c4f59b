package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"aicoder/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.Info("info message")
	assert.Contains(t, buf.String(), "level=info")
	assert.Contains(t, buf.String(), "info message")
	buf.Reset()

	l.Warn("warn message")
	assert.Contains(t, buf.String(), "level=warning")
	buf.Reset()

	l.Error("error message")
	assert.Contains(t, buf.String(), "level=error")
	buf.Reset()

	l.Infof("formatted %s", "message")
	assert.Contains(t, buf.String(), "formatted message")
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))
	l.Debug("hidden")
	assert.Empty(t, buf.String())

	l = NewLogger(WithOutput(&buf), WithLevel("debug"))
	l.Debugf("formatted %s", "debug")
	assert.Contains(t, buf.String(), "level=debug")
	assert.Contains(t, buf.String(), "formatted debug")
}

func TestSetDebug(t *testing.T) {
	var buf bytes.Buffer
	original := Default()
	Configure(WithOutput(&buf))
	defer func() {
		mu.Lock()
		logger = original
		mu.Unlock()
	}()

	Debugf("first %d", 1)
	assert.Empty(t, buf.String())

	SetDebug(true)
	Debugf("second %d", 2)
	assert.Contains(t, buf.String(), "second 2")
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.With(F("key1", "value1"), F("key2", 123)).Info("structured message")
	output := buf.String()
	assert.Contains(t, output, "structured message")
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
	buf.Reset()

	l.With(F("key1", "value1")).With(F("key2", 123)).Info("chained fields")
	output = buf.String()
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
}

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithJSON())

	l.With(F("key1", "value1"), F("key2", 123)).Info("structured json")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "structured json", entry["message"])
	assert.Contains(t, entry, "timestamp")
	assert.Equal(t, "value1", entry["key1"])
	assert.Equal(t, float64(123), entry["key2"])
}

func TestErrorLogging(t *testing.T) {
	var buf bytes.Buffer
	original := Default()
	Configure(WithOutput(&buf))
	defer func() {
		mu.Lock()
		logger = original
		mu.Unlock()
	}()

	LogWithError(fmt.Errorf("standard error")).Error("error occurred")
	output := buf.String()
	assert.Contains(t, output, "error occurred")
	assert.Contains(t, output, "standard error")
	assert.Contains(t, output, "error_kind=unknown")
	buf.Reset()

	storeErr := errors.NewStoreError("project not found", "p-7", errors.ProjectNotFound, nil).WithPath("/data/projects.yaml")
	LogWithError(fmt.Errorf("delete: %w", storeErr)).Error("delete failed")
	output = buf.String()
	assert.Contains(t, output, "error_kind=project_not_found")
	assert.Contains(t, output, "id=p-7")
	assert.Contains(t, output, "path=/data/projects.yaml")
	buf.Reset()

	configErr := errors.NewConfigError("invalid value", "swipe.fling_velocity", errors.InvalidConfig, nil)
	LogWithError(configErr).Warn("config rejected")
	output = buf.String()
	assert.Contains(t, output, "param=swipe.fling_velocity")
	assert.Contains(t, output, "error_kind=invalid_config")
	buf.Reset()

	inputErr := errors.NewInputError("title must not be empty", "title", nil)
	LogWithError(inputErr).Warn("add rejected")
	assert.Contains(t, buf.String(), "field=title")
	buf.Reset()

	LogWithFields(F("id", "p-1")).Info("nil error")
	assert.NotContains(t, buf.String(), "error=")
	assert.Same(t, Default(), LogWithError(nil))
}
