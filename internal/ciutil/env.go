package ciutil

import (
	"log/slog"
	"os"
)

// Common environment variable names used across the codebase.
const (
	// CI environment detection variables
	EnvCI            = "CI"
	EnvGitHubActions = "GITHUB_ACTIONS"
	EnvGitLabCI      = "GITLAB_CI"
	EnvJenkinsURL    = "JENKINS_URL"
	EnvCircleCI      = "CIRCLECI"

	// Database connection environment variables
	EnvTestDatabaseURL = "TASKMANAGER_TEST_DATABASE_URL" // Preferred name
	EnvDatabaseURL     = "DATABASE_URL"
)

// IsCI returns true if the current environment is a CI environment.
func IsCI() bool {
	for _, name := range []string{EnvCI, EnvGitHubActions, EnvGitLabCI, EnvJenkinsURL, EnvCircleCI} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// GetEnvWithFallbacks returns the value of the first non-empty environment variable
// from the provided list. If no environment variables are set, it returns the defaultValue.
func GetEnvWithFallbacks(envVars []string, defaultValue string, logger *slog.Logger) string {
	for i, envVar := range envVars {
		if val := os.Getenv(envVar); val != "" {
			if i > 0 && logger != nil {
				logger.Warn("using fallback environment variable",
					slog.String("used_var", envVar),
					slog.String("preferred_var", envVars[0]),
					slog.String("value", MaskSensitiveValue(val)))
			}
			return val
		}
	}
	return defaultValue
}
