// Package slog adapts log/slog to the domain Logger interface.
package slog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ochairo/rsasxlsx/internal/domain/interfaces"
)

// Logger implements interfaces.Logger on top of a slog.Logger
type Logger struct {
	logger *slog.Logger
}

var _ interfaces.Logger = (*Logger)(nil)

// Sink is one log destination with its own minimum level
type Sink struct {
	Writer io.Writer
	Level  slog.Level
}

// New creates a logger writing text records to every sink at or above the sink's level
func New(sinks ...Sink) *Logger {
	handlers := make([]slog.Handler, 0, len(sinks))
	for _, s := range sinks {
		handlers = append(handlers, slog.NewTextHandler(s.Writer, &slog.HandlerOptions{Level: s.Level}))
	}
	return &Logger{logger: slog.New(fanoutHandler(handlers))}
}

// ParseLevel maps debug/info/warn/error to a slog level
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// OpenFile opens path for appending log records
func OpenFile(path string) (*os.File, error) {
	//nolint:gosec // G304: log path comes from configuration
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}

// With returns a logger that adds fields to every record
func (l *Logger) With(fields ...interfaces.Field) *Logger {
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		args = append(args, attr(f))
	}
	return &Logger{logger: l.logger.With(args...)}
}

// Debug logs debug-level messages
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	l.log(slog.LevelDebug, msg, fields)
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	l.log(slog.LevelInfo, msg, fields)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	l.log(slog.LevelWarn, msg, fields)
}

// Error logs error messages
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	l.log(slog.LevelError, msg, fields)
}

func (l *Logger) log(level slog.Level, msg string, fields []interfaces.Field) {
	ctx := context.Background()
	if !l.logger.Enabled(ctx, level) {
		return
	}
	attrs := make([]slog.Attr, 0, len(fields))
	for _, f := range fields {
		attrs = append(attrs, attr(f))
	}
	l.logger.LogAttrs(ctx, level, msg, attrs...)
}

func attr(f interfaces.Field) slog.Attr {
	if err, ok := f.Value.(error); ok {
		return slog.String(f.Key, err.Error())
	}
	return slog.Any(f.Key, f.Value)
}

// fanoutHandler dispatches each record to every handler that accepts its level
type fanoutHandler []slog.Handler

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := handler.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(fanoutHandler, len(h))
	for i, handler := range h {
		next[i] = handler.WithAttrs(attrs)
	}
	return next
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	next := make(fanoutHandler, len(h))
	for i, handler := range h {
		next[i] = handler.WithGroup(name)
	}
	return next
}
