// Package logger builds configured slog.Logger instances.
//
// The factory supports JSON output for production log aggregation and
// text output for development, static attributes attached to every
// record, and context extractors that pull request-scoped values (such
// as request IDs or tenant IDs) into each log line.
package logger
