// Package ciutil provides utilities for CI and environment-specific functionality.
//
// It centralizes CI detection and the environment variables that select the
// database used by tests. Tests run against in-memory SQLite unless a
// PostgreSQL URL is provided through the environment.
package ciutil
