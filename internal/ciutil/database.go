package ciutil

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/phrazzld/task-manager-api/internal/redact"
)

// GetTestDatabaseURL returns the PostgreSQL URL tests should run against, or
// an empty string when tests should use SQLite.
// TASKMANAGER_TEST_DATABASE_URL is preferred over DATABASE_URL.
func GetTestDatabaseURL(logger *slog.Logger) string {
	dbURL := GetEnvWithFallbacks([]string{EnvTestDatabaseURL, EnvDatabaseURL}, "", logger)
	if dbURL != "" && logger != nil {
		logger.Info("using PostgreSQL test database",
			slog.String("url", MaskSensitiveValue(dbURL)),
			slog.Bool("ci", IsCI()))
	}
	return dbURL
}

// WithSearchPath sets the search_path runtime parameter on a PostgreSQL
// connection string. Both URL and keyword/value forms are accepted.
func WithSearchPath(dsn, schema string) (string, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("failed to parse database URL: %w", err)
		}
		q := u.Query()
		q.Set("search_path", schema)
		u.RawQuery = q.Encode()
		return u.String(), nil
	}

	if strings.TrimSpace(dsn) == "" {
		return "", fmt.Errorf("empty database connection string")
	}
	return fmt.Sprintf("%s search_path=%s", dsn, schema), nil
}

// MaskSensitiveValue hides the password of database URLs and redacts any
// other credentials before a value is logged.
func MaskSensitiveValue(value string) string {
	if u, err := url.Parse(value); err == nil && u.User != nil {
		if _, ok := u.User.Password(); ok {
			return u.Redacted()
		}
	}
	return redact.String(value)
}
