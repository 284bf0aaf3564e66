// Package logger configures the process-wide log/slog JSON logger and
// carries request-scoped loggers (tagged with a trace ID) in a context.
package logger
