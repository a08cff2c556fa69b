package logger

import (
	"context"
	"time"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey struct{}

// logContextKey is the key for LogContext in context.Context
var logContextKey = contextKey{}

// LogContext holds operation-scoped logging context.
type LogContext struct {
	TraceID    string    // correlation id set by the operation surface (C8)
	NotebookID string    // notebook UUID the operation targets
	Operation  string    // engine operation name (CreateFolder, MoveFile, ...)
	Path       string    // folder/file path the operation targets, if any
	StartTime  time.Time // for duration calculation
}

// WithContext returns a new context with the given LogContext
func WithContext(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, logContextKey, lc)
}

// FromContext retrieves the LogContext from context, or nil if not present
func FromContext(ctx context.Context) *LogContext {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(logContextKey).(*LogContext)
	return lc
}

// NewLogContext creates a new LogContext for an operation against a notebook.
func NewLogContext(notebookID string) *LogContext {
	return &LogContext{
		NotebookID: notebookID,
		StartTime:  time.Now(),
	}
}

// Clone creates a copy of the LogContext
func (lc *LogContext) Clone() *LogContext {
	if lc == nil {
		return nil
	}
	return &LogContext{
		TraceID:    lc.TraceID,
		NotebookID: lc.NotebookID,
		Operation:  lc.Operation,
		Path:       lc.Path,
		StartTime:  lc.StartTime,
	}
}

// WithOperation returns a copy with the operation name set
func (lc *LogContext) WithOperation(operation string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.Operation = operation
	}
	return clone
}

// WithPath returns a copy with the path set
func (lc *LogContext) WithPath(path string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.Path = path
	}
	return clone
}

// WithTrace returns a copy with trace info set
func (lc *LogContext) WithTrace(traceID string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.TraceID = traceID
	}
	return clone
}

// DurationMs returns the duration since StartTime in milliseconds
func (lc *LogContext) DurationMs() float64 {
	if lc == nil || lc.StartTime.IsZero() {
		return 0
	}
	return float64(time.Since(lc.StartTime).Microseconds()) / 1000.0
}
