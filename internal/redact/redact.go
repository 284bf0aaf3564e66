// Package redact removes sensitive information from strings before they are
// logged. Store and driver errors can carry connection strings, credentials,
// SQL fragments and file paths; none of those should reach the log sink.
package redact

import (
	"log/slog"
	"regexp"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedStackPlaceholder      = "[STACK_TRACE_REDACTED]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedHostPlaceholder       = "[REDACTED_HOST]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules are applied in order; earlier rules see the original text.
var rules = []rule{
	// Stack trace fragments
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), RedactedStackPlaceholder},

	// Database connection strings with user info
	{
		regexp.MustCompile(`(?i)(postgres|postgresql|pgx|mysql|sqlite|db|database)://[^@\s]+@`),
		RedactedCredentialPlaceholder,
	},

	// Credentials and keys
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`), RedactedCredentialPlaceholder},
	{
		regexp.MustCompile(`(?i)(api[_-]?key|token|secret)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`),
		RedactedKeyPlaceholder,
	},

	// SQL statements
	{
		regexp.MustCompile(
			`(?i)\b(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)\b[\s\w,*()$?]+\b(FROM|INTO|SET|TABLE|INDEX)\b[^;\n]*`,
		),
		RedactedSQLPlaceholder,
	},

	// File paths
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(\\[^\\\s]+)+`), RedactedPathPlaceholder},

	// Email addresses
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), RedactedEmailPlaceholder},

	// Fully qualified host names, optionally with a port
	{
		regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`),
		RedactedHostPlaceholder,
	},
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// ErrorAttr returns the redacted error as an "error" log attribute.
func ErrorAttr(err error) slog.Attr {
	return slog.String("error", Error(err))
}
