package logging

import (
	"context"
	"io"
	"log/slog"
)

// SlogLogger implements Logger on top of log/slog, forwarding the request
// context so handler-level attributes (trace ids, deadlines) survive.
type SlogLogger struct {
	base *slog.Logger
}

// NewSlogLogger wraps an already-configured slog.Logger. Tests use this to
// swap in a text handler on a buffer.
func NewSlogLogger(base *slog.Logger) *SlogLogger {
	return &SlogLogger{base: base}
}

// NewJSONLogger builds the production logger: one JSON object per line
// written to w. The server points this at stdout.
func NewJSONLogger(w io.Writer) *SlogLogger {
	return &SlogLogger{base: slog.New(slog.NewJSONHandler(w, nil))}
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.base.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.base.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.base.ErrorContext(ctx, msg, args...)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{base: s.base.With(args...)}
}
