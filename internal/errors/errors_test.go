package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())

	err = Newf("formatted %s", "error")
	assert.Equal(t, "formatted error", err.Error())

	var appErr *ApplicationError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, Unknown, appErr.Kind())
}

func TestWrapping(t *testing.T) {
	origErr := New("original error")
	wrappedErr := Wrap(origErr, "wrapped")
	assert.Equal(t, "wrapped: original error", wrappedErr.Error())
	assert.Equal(t, origErr, Unwrap(wrappedErr))

	wrappedFormatted := Wrapf(origErr, "formatted %s", "wrapper")
	assert.Equal(t, "formatted wrapper: original error", wrappedFormatted.Error())

	assert.Nil(t, Wrap(nil, "wrapper"))
	assert.Nil(t, Wrapf(nil, "formatted %s", "wrapper"))

	deepWrapped := Wrap(wrappedErr, "deeper")
	assert.Equal(t, "deeper: wrapped: original error", deepWrapped.Error())
	assert.True(t, Is(deepWrapped, origErr))

	// unknown kinds only match themselves
	assert.False(t, Is(New("a"), New("a")))
}

func TestStoreError(t *testing.T) {
	storeErr := NewStoreError("project not found", "p-42", ProjectNotFound, nil).WithPath("/tmp/projects.yaml")
	assert.Equal(t, "project not found: p-42", storeErr.Error())
	assert.Equal(t, "p-42", storeErr.ID())
	assert.Equal(t, "/tmp/projects.yaml", storeErr.Path())
	assert.Equal(t, ProjectNotFound, storeErr.Kind())

	cause := fmt.Errorf("disk full")
	writeErr := NewStoreError("cannot save", "p-1", StoreWriteFailed, cause)
	assert.Equal(t, "cannot save: p-1: disk full", writeErr.Error())
	assert.Equal(t, cause, Unwrap(writeErr))

	assert.True(t, Is(storeErr, ErrProjectNotFound))
	assert.True(t, errors.Is(fmt.Errorf("rename: %w", storeErr), ErrProjectNotFound))
	assert.False(t, Is(writeErr, ErrProjectNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("outer: %w", storeErr)))
	assert.False(t, IsNotFound(writeErr))
}

func TestConfigError(t *testing.T) {
	configErr := NewConfigError("invalid value", "swipe.commit_threshold", InvalidConfig, nil)
	assert.Equal(t, "invalid value: swipe.commit_threshold", configErr.Error())
	assert.Equal(t, "swipe.commit_threshold", configErr.Param())
	assert.True(t, IsInvalidConfig(configErr))
	assert.True(t, Is(configErr, ErrInvalidConfig))

	wrapped := NewConfigError("cannot read", "/etc/aicoder.yaml", ConfigNotFound, fmt.Errorf("eof"))
	assert.Equal(t, "cannot read: /etc/aicoder.yaml: eof", wrapped.Error())
	assert.False(t, IsInvalidConfig(wrapped))
}

func TestInputError(t *testing.T) {
	inputErr := NewInputError("title must not be empty", "title", nil)
	assert.Equal(t, "title must not be empty: title", inputErr.Error())
	assert.Equal(t, "title", inputErr.Field())
	assert.True(t, IsInvalidInput(fmt.Errorf("add: %w", inputErr)))
	assert.True(t, Is(inputErr, ErrInvalidInput))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{nil, Unknown},
		{fmt.Errorf("plain"), Unknown},
		{NewStoreError("x", "", StoreReadFailed, nil), StoreReadFailed},
		{fmt.Errorf("wrapped: %w", NewConfigError("x", "", ConfigNotFound, nil)), ConfigNotFound},
		{NewInputError("x", "", nil), InvalidInput},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(tt.err), "%v", tt.err)
	}
	assert.Equal(t, "store_read_failed", StoreReadFailed.String())
}
