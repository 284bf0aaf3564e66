package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. TASKMANAGER_SERVER_PORT.
const EnvPrefix = "TASKMANAGER"

// DefaultSQLiteURL keeps the database next to the binary and lets readers
// proceed while a write is in flight.
const DefaultSQLiteURL = "file:taskmanager.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.url", DefaultSQLiteURL)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.seed", true)
}

// Load configuration from defaults, an optional config file and environment
// variables, in increasing order of precedence. A .env file in the working
// directory is loaded into the environment first when present.
//
// If path is empty, config.yaml in the working directory is used when it
// exists. An explicit path that cannot be read is an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
