// Package config handles configuration loading, parsing, and validation
// from defaults, an optional YAML file, a .env file and TASKMANAGER_*
// environment variables. It provides type-safe access to the server and
// database settings needed by cmd/server.
package config
