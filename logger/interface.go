package logger

import (
	"context"
)

// Logger is the logging contract used by every spanbridge package.
//
// This interface is implemented by the concrete *LoggerClient type.
type Logger interface {
	// Debug logs a debug-level message.
	Debug(msg string, err error, fields ...map[string]interface{})

	// Info logs an informational message.
	Info(msg string, err error, fields ...map[string]interface{})

	// Warn logs a warning.
	Warn(msg string, err error, fields ...map[string]interface{})

	// Error logs an error.
	Error(msg string, err error, fields ...map[string]interface{})

	// Fatal logs and terminates the process.
	Fatal(msg string, err error, fields ...map[string]interface{})

	// DebugWithContext logs a debug-level message with trace context.
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// InfoWithContext logs an informational message with trace context.
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// WarnWithContext logs a warning with trace context.
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// ErrorWithContext logs an error with trace context.
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// FatalWithContext logs with trace context and terminates the process.
	FatalWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
