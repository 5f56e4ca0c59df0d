// Package logging is the client's structured logger. Library packages take
// a Logger and default to Nop(); the CLI builds one from the configured
// level and writes it to stderr so it never mixes with REPL output.
package logging

import "context"

// Logger takes a message plus alternating key/value args:
//
//	log.Warn(ctx, "offline enqueue failed", "error", err)
//
// Bearer tokens and passwords are never passed as values.
type Logger interface {
	// Debug is for request traces and probe results.
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	// Warn records a failure that was absorbed, such as a queue write that
	// returned false to its caller.
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	// With returns a logger that adds args to every record, e.g. a
	// "component" tag.
	With(args ...any) Logger
}
