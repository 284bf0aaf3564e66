package config

import "time"

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=sqlite postgres"`
	// URL is a pgx connection string for postgres or a modernc DSN for sqlite.
	URL          string `mapstructure:"url" validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
	Seed         bool   `mapstructure:"seed"`
}
