package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// LogLevel is the minimum severity a logger emits.
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l LogLevel) String() string {
	return levelNames[l]
}

// ParseLogLevel maps a level name to a LogLevel. Unknown names fall back
// to info rather than failing, so a typo in config degrades gracefully.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "debug", "DEBUG":
		return DebugLevel
	case "warn", "WARN", "warning":
		return WarnLevel
	case "error", "ERROR":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func (l LogLevel) toSlogLevel() slog.Level {
	switch l {
	case DebugLevel:
		return slog.LevelDebug
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger emits structured JSON log lines. Field-adding methods return a
// child logger and never mutate the receiver, so a Logger is safe to
// share across goroutines.
type Logger struct {
	inner *slog.Logger
	level LogLevel
}

// NewLogger builds a JSON logger writing to output at the given level.
// A nil output defaults to stdout.
func NewLogger(level LogLevel, output io.Writer) *Logger {
	if output == nil {
		output = os.Stdout
	}
	handler := slog.NewJSONHandler(output, &slog.HandlerOptions{
		Level: level.toSlogLevel(),
	})
	return &Logger{inner: slog.New(handler), level: level}
}

func (l *Logger) child(args ...interface{}) *Logger {
	return &Logger{inner: l.inner.With(args...), level: l.level}
}

// WithField returns a child logger carrying an extra key/value pair.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.child(key, value)
}

// WithFields returns a child logger carrying all the given fields.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return l.child(args...)
}

// WithError returns a child logger carrying err's message under the
// "error" key. A nil error returns the receiver unchanged.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.child("error", err.Error())
}

func (l *Logger) Debug(message string) { l.inner.Debug(message) }
func (l *Logger) Info(message string)  { l.inner.Info(message) }
func (l *Logger) Warn(message string)  { l.inner.Warn(message) }
func (l *Logger) Error(message string) { l.inner.Error(message) }

// Debugf and friends format the message before emitting. Prefer WithField
// for values that should stay machine-readable.
func (l *Logger) Debugf(format string, args ...interface{}) { l.inner.Debug(fmt.Sprintf(format, args...)) }
func (l *Logger) Infof(format string, args ...interface{})  { l.inner.Info(fmt.Sprintf(format, args...)) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.inner.Warn(fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.inner.Error(fmt.Sprintf(format, args...)) }

type contextKey string

const (
	// RequestIDKey carries the HTTP request ID.
	RequestIDKey contextKey = "request_id"
	// RunIDKey carries the lint run ID.
	RunIDKey contextKey = "run_id"
	// LoggerKey carries a request-scoped logger.
	LoggerKey contextKey = "logger"
)

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID returns the request ID, or "" when the context has none.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// WithRunID stores the lint run ID in the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID returns the lint run ID, or "" when the context has none.
func GetRunID(ctx context.Context) string {
	id, _ := ctx.Value(RunIDKey).(string)
	return id
}

// WithLogger stores a request-scoped logger in the context.
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// GetLogger returns the context's logger, or a default stdout logger at
// info level when none was stored.
func GetLogger(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(LoggerKey).(*Logger); ok {
		return logger
	}
	return NewLogger(InfoLevel, os.Stdout)
}

// FromContext returns the context's logger enriched with the request and
// run IDs present in the context. Handlers use this so every log line
// from one request carries the same correlation fields.
func FromContext(ctx context.Context) *Logger {
	logger := GetLogger(ctx)
	if requestID := GetRequestID(ctx); requestID != "" {
		logger = logger.WithField("request_id", requestID)
	}
	if runID := GetRunID(ctx); runID != "" {
		logger = logger.WithField("run_id", runID)
	}
	return logger
}
