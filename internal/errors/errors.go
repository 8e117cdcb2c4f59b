// Package errors provides standardized error handling for aicoder.
// It defines the error kinds used across the store, configuration and
// command layers, plus helpers for creating and inspecting them.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Store error kinds
	ProjectNotFound
	DuplicateProject
	StoreReadFailed
	StoreWriteFailed
	UnsupportedDriver
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	// Input error kinds
	InvalidInput
)

func (k ErrorKind) String() string {
	switch k {
	case ProjectNotFound:
		return "project_not_found"
	case DuplicateProject:
		return "duplicate_project"
	case StoreReadFailed:
		return "store_read_failed"
	case StoreWriteFailed:
		return "store_write_failed"
	case UnsupportedDriver:
		return "unsupported_driver"
	case InvalidConfig:
		return "invalid_config"
	case ConfigNotFound:
		return "config_not_found"
	case InvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}

// Common error constants. errors.Is matches them by kind, so a
// StoreError built elsewhere with kind ProjectNotFound is ErrProjectNotFound.
var (
	ErrProjectNotFound = NewStoreError("project not found", "", ProjectNotFound, nil)
	ErrInvalidConfig   = NewConfigError("invalid configuration", "", InvalidConfig, nil)
	ErrInvalidInput    = NewInputError("invalid input", "", nil)
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// Is matches any target of the same, known kind.
func (e *ApplicationError) Is(target error) bool {
	if e.kind == Unknown {
		return false
	}
	k, ok := target.(interface{ Kind() ErrorKind })
	return ok && k.Kind() == e.kind
}

// StoreError represents errors raised by a project store
type StoreError struct {
	ApplicationError
	id   string
	path string
}

// NewStoreError creates a new store error about project id
func NewStoreError(msg string, id string, kind ErrorKind, err error) *StoreError {
	return &StoreError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		id: id,
	}
}

// WithPath records the store location the error happened at.
func (e *StoreError) WithPath(path string) *StoreError {
	e.path = path
	return e
}

// Error returns the store error message
func (e *StoreError) Error() string {
	if e.id != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.id, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.id)
	}
	return e.ApplicationError.Error()
}

// ID returns the project id associated with the error
func (e *StoreError) ID() string {
	return e.id
}

// Path returns the store path associated with the error
func (e *StoreError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// InputError represents invalid user-supplied data
type InputError struct {
	ApplicationError
	field string
}

// NewInputError creates a new invalid input error about field
func NewInputError(msg string, field string, err error) *InputError {
	return &InputError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: InvalidInput,
		},
		field: field,
	}
}

// Error returns the input error message
func (e *InputError) Error() string {
	if e.field != "" {
		return fmt.Sprintf("%s: %s", e.ApplicationError.Error(), e.field)
	}
	return e.ApplicationError.Error()
}

// Field returns the offending input field
func (e *InputError) Field() string {
	return e.field
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the kind of the first typed error in err's chain.
func KindOf(err error) ErrorKind {
	var k interface{ Kind() ErrorKind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return Unknown
}

// IsKind reports whether err's chain carries an error of kind.
func IsKind(err error, kind ErrorKind) bool {
	for err != nil {
		if k, ok := err.(interface{ Kind() ErrorKind }); ok && k.Kind() == kind {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// IsNotFound checks if the error is a missing project error
func IsNotFound(err error) bool {
	return IsKind(err, ProjectNotFound)
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsInvalidInput checks if the error is an invalid input error
func IsInvalidInput(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}
