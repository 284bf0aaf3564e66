package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/phrazzld/task-manager-api/internal/config"
	"github.com/phrazzld/task-manager-api/internal/platform/migrations"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// sqlDriverName maps a configured driver to its database/sql driver name.
func sqlDriverName(driver string) (string, error) {
	switch driver {
	case config.DriverSQLite:
		return "sqlite", nil
	case config.DriverPostgres:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// setupAppDatabase establishes a connection to the database and configures connection pools.
// Returns the database connection if successful, or an error if the connection fails.
func setupAppDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	driverName, err := sqlDriverName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		// SQLite serializes writers, and an in-memory database lives on a
		// single connection.
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(max(cfg.MaxOpenConns/2, 1))
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established", slog.String("driver", cfg.Driver))
	return db, nil
}

// runMigrationCommand executes a single migration command against db.
func runMigrationCommand(ctx context.Context, db *sql.DB, driver, command string, logger *slog.Logger) error {
	m, err := migrations.NewMigrator(db, driver, logger)
	if err != nil {
		return err
	}
	return m.Run(ctx, command)
}

func closeDB(db *sql.DB, logger *slog.Logger) {
	if err := db.Close(); err != nil {
		logger.Error("failed to close database", slog.String("error", err.Error()))
	}
}
