// Package log is the logging facade used across aicoder. It wraps logrus
// with a small field-based API so call sites stay terse:
//
//	log.LogWithFields(log.F("id", id)).Info("Project deleted")
package log

import (
	"io"
	"os"
	"sync"

	"aicoder/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	mu     sync.RWMutex
	logger = NewLogger()
)

// Field is a single structured key/value pair.
type Field struct {
	Key   string
	Value interface{}
}

// F creates a field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Option configures a Logger.
type Option func(*logrus.Logger)

// WithOutput sends log lines to w.
func WithOutput(w io.Writer) Option {
	return func(l *logrus.Logger) {
		l.SetOutput(w)
	}
}

// WithJSON switches to one JSON object per line.
func WithJSON() Option {
	return func(l *logrus.Logger) {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	}
}

// WithLevel sets the minimum level by name. Unknown names keep the current
// level.
func WithLevel(level string) Option {
	return func(l *logrus.Logger) {
		if lvl, err := logrus.ParseLevel(level); err == nil {
			l.SetLevel(lvl)
		}
	}
}

// Logger is a structured logger carrying a set of fields.
type Logger struct {
	entry *logrus.Entry
}

// NewLogger creates a logger writing text lines to stderr at info level.
func NewLogger(opts ...Option) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stderr)
	base.SetLevel(logrus.InfoLevel)
	base.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	for _, opt := range opts {
		opt(base)
	}
	return &Logger{entry: logrus.NewEntry(base)}
}

// With returns a logger that adds fields to every line.
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data)}
}

// WithError returns a logger carrying err and, for typed application
// errors, its kind and context.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	fields := []Field{F("error", err.Error()), F("error_kind", errors.KindOf(err).String())}

	var storeErr *errors.StoreError
	if errors.As(err, &storeErr) {
		if storeErr.ID() != "" {
			fields = append(fields, F("id", storeErr.ID()))
		}
		if storeErr.Path() != "" {
			fields = append(fields, F("path", storeErr.Path()))
		}
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	var inputErr *errors.InputError
	if errors.As(err, &inputErr) && inputErr.Field() != "" {
		fields = append(fields, F("field", inputErr.Field()))
	}
	return l.With(fields...)
}

func (l *Logger) Debug(args ...interface{})                 { l.entry.Debug(args...) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *Logger) Info(args ...interface{})                  { l.entry.Info(args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *Logger) Warn(args ...interface{})                  { l.entry.Warn(args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *Logger) Error(args ...interface{})                 { l.entry.Error(args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

// Configure replaces the package-level logger.
func Configure(opts ...Option) {
	l := NewLogger(opts...)
	mu.Lock()
	logger = l
	mu.Unlock()
}

// Default returns the package-level logger.
func Default() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetDebug toggles debug output on the package-level logger.
func SetDebug(debug bool) {
	lvl := logrus.InfoLevel
	if debug {
		lvl = logrus.DebugLevel
	}
	Default().entry.Logger.SetLevel(lvl)
}

// LogWithFields returns the package-level logger with fields attached.
func LogWithFields(fields ...Field) *Logger {
	return Default().With(fields...)
}

// LogWithError returns the package-level logger with err attached.
func LogWithError(err error) *Logger {
	return Default().WithError(err)
}

func Info(args ...interface{})                  { Default().Info(args...) }
func Infof(format string, args ...interface{})  { Default().Infof(format, args...) }
func Debug(args ...interface{})                 { Default().Debug(args...) }
func Debugf(format string, args ...interface{}) { Default().Debugf(format, args...) }
func Warn(args ...interface{})                  { Default().Warn(args...) }
func Warnf(format string, args ...interface{})  { Default().Warnf(format, args...) }
func Error(args ...interface{})                 { Default().Error(args...) }
func Errorf(format string, args ...interface{}) { Default().Errorf(format, args...) }
