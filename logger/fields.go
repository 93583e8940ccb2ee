package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across typedoc.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldRunID = "run_id"

	// Components
	FieldComponent = "component"

	// Operations
	FieldOperation = "operation"
	FieldFormat    = "format"

	// Timing
	FieldDurationMS = "duration_ms"
	FieldDebounceMS = "debounce_ms"

	// Errors
	FieldError     = "error"
	FieldErrorType = "error_type"
	FieldFieldPath = "field_path"

	// Counts and sizes
	FieldCount = "count"
	FieldSize  = "size"

	// Files and paths
	FieldFile   = "file"
	FieldConfig = "config"

	// Decoding
	FieldRecord = "record" // Schema record name (DeclarationReflection, ArrayType, ...)
	FieldKind   = "kind"   // Discriminator value
	FieldFields = "fields" // Field names dropped or missing
	FieldNodeID = "node_id"
	FieldStrict = "strict"
)

// Context keys for propagating logging context
type contextKey string

const (
	runIDKey     contextKey = "logger_run_id"
	fileKey      contextKey = "logger_file"
	componentKey contextKey = "logger_component"
)

// WithRunID adds a decode run ID to the context for logging
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithFile adds the input file being decoded to the context for logging
func WithFile(ctx context.Context, file string) context.Context {
	return context.WithValue(ctx, fileKey, file)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		fields = append(fields, FieldRunID, runID)
	}
	if file, ok := ctx.Value(fileKey).(string); ok && file != "" {
		fields = append(fields, FieldFile, file)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// LoggerFromContext returns a logger with fields extracted from context.
// Use this to get a logger that automatically includes run_id, file, etc.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return Logger
	}
	return Logger.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	registry.Logger = logger.ComponentLogger("schema")
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
// Example:
//
//	runLogger := logger.ChildLogger(base, logger.FieldRunID, runID)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
