// Package logging defines the structured logger the gating server writes
// through. Every event is a message plus key-value fields; free-form
// formatting is deliberately absent so log lines stay machine-parseable.
//
// Privacy contract: user identifiers never appear raw in a log field.
// Callers hash them first (common.HashUserID) and log the digest.
package logging

import "context"

// Logger is the server-wide logging surface. The variadic args alternate
// key and value:
//
//	log.Warn(ctx, "rate counter unavailable", "scope", scope, "error", err)
type Logger interface {
	// Info records normal operation: startup, shutdown, request outcomes.
	Info(ctx context.Context, msg string, args ...any)

	// Warn records degraded but survivable conditions, such as the rate
	// counter store failing open.
	Warn(ctx context.Context, msg string, args ...any)

	// Error records failures that cost a request.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger whose lines always carry the given
	// fields, used to tag a component ("module", "http_server").
	With(args ...any) Logger
}
