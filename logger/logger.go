// Package logger provides a small logging facade so the csv1-go packages can
// emit structured logs without binding callers to a specific logging framework.
//
// The Logger interface defines leveled, key-value structured logging
// (Debug, Info, Warn, Error, Fatal). The default implementation is built on
// log/slog; a console handler is used in development and a JSON handler
// otherwise.
package logger

// Level indicates the logging severity level.
type Level = int8

const (
	// DebugLevel logs are voluminous and usually disabled in production.
	// The front-end tools map their verbose flag to this level.
	DebugLevel Level = iota - 1
	// InfoLevel is the default logging priority.
	InfoLevel
	// WarnLevel logs are more important than Info, but don't need individual
	// human review.
	WarnLevel
	// ErrorLevel logs are high-priority errors that require attention.
	ErrorLevel
	// FatalLevel logs a message, then calls os.Exit(1).
	FatalLevel
)

// Logger defines the common logging interface used throughout csv1-go.
type Logger interface {
	// Debug logs a message at DebugLevel with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)
	// Info logs a message at InfoLevel with optional key-value pairs.
	Info(msg string, keysAndValues ...any)
	// Warn logs a message at WarnLevel with optional key-value pairs.
	Warn(msg string, keysAndValues ...any)
	// Error logs a message at ErrorLevel with optional key-value pairs.
	Error(msg string, keysAndValues ...any)
	// Fatal logs a message at FatalLevel, then calls os.Exit(1) even if
	// logging at FatalLevel is disabled.
	Fatal(msg string, keysAndValues ...any)
	// With creates a child logger with additional structured context.
	// Key-values added to the child don't affect the parent, and vice versa.
	With(keyValues ...any) Logger
	// Level returns the minimum enabled level for this logger.
	Level() Level
	// SetLevel sets the minimum enabled level for this logger.
	SetLevel(level Level)
}
