package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-manager-api/internal/config"
	"github.com/phrazzld/task-manager-api/internal/redact"
	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var migrationFS embed.FS

// CreateTasksVersion is the migration that creates the tasks table.
const CreateTasksVersion int64 = 1

// Supported migration commands.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandStatus  = "status"
	CommandVersion = "version"
)

// ErrUnknownCommand is returned for a migration command that is not supported.
var ErrUnknownCommand = errors.New("unknown migration command")

// Migrator applies the embedded migrations for one database engine.
type Migrator struct {
	provider *goose.Provider
	logger   *slog.Logger
}

// NewMigrator creates a Migrator for db. driver is config.DriverSQLite or
// config.DriverPostgres. If logger is nil, a default logger will be used.
func NewMigrator(db *sql.DB, driver string, logger *slog.Logger) (*Migrator, error) {
	var dialect goose.Dialect
	switch driver {
	case config.DriverSQLite:
		dialect = goose.DialectSQLite3
	case config.DriverPostgres:
		dialect = goose.DialectPostgres
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	dir, err := fs.Sub(migrationFS, driver)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s migrations: %w", driver, err)
	}

	provider, err := goose.NewProvider(dialect, db, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Migrator{
		provider: provider,
		logger: logger.With(
			slog.String("component", "migrations"),
			slog.String("driver", driver),
		),
	}, nil
}

// Up applies every pending migration and returns the versions applied by
// this call, in order.
func (m *Migrator) Up(ctx context.Context) ([]int64, error) {
	log := m.logger.With(slog.String("correlation_id", uuid.NewString()))
	start := time.Now()

	results, err := m.provider.Up(ctx)
	applied := make([]int64, 0, len(results))
	for _, r := range results {
		if r.Error != nil {
			continue
		}
		applied = append(applied, r.Source.Version)
		log.Info("applied migration",
			slog.Int64("version", r.Source.Version),
			slog.Duration("duration", r.Duration))
	}
	if err != nil {
		log.Error("migration failed", redact.ErrorAttr(err))
		return applied, fmt.Errorf("failed to apply migrations: %w", err)
	}

	log.Info("migrations up to date",
		slog.Int("applied", len(applied)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return applied, nil
}

// Down rolls back the most recently applied migration.
func (m *Migrator) Down(ctx context.Context) (int64, error) {
	result, err := m.provider.Down(ctx)
	if err != nil {
		if errors.Is(err, goose.ErrNoNextVersion) {
			m.logger.Info("no migrations to roll back")
			return 0, nil
		}
		return 0, fmt.Errorf("failed to roll back migration: %w", err)
	}

	m.logger.Info("rolled back migration", slog.Int64("version", result.Source.Version))
	return result.Source.Version, nil
}

// Status reports every known migration and whether it has been applied.
func (m *Migrator) Status(ctx context.Context) ([]*goose.MigrationStatus, error) {
	status, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}
	return status, nil
}

// Version returns the current schema version. Zero means no migration has
// been applied.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// Run executes a migration command and logs its outcome.
func (m *Migrator) Run(ctx context.Context, command string) error {
	switch command {
	case CommandUp:
		_, err := m.Up(ctx)
		return err
	case CommandDown:
		_, err := m.Down(ctx)
		return err
	case CommandStatus:
		status, err := m.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range status {
			attrs := []any{
				slog.Int64("version", s.Source.Version),
				slog.String("state", string(s.State)),
			}
			if !s.AppliedAt.IsZero() {
				attrs = append(attrs, slog.Time("applied_at", s.AppliedAt))
			}
			m.logger.Info("migration status", attrs...)
		}
		return nil
	case CommandVersion:
		version, err := m.Version(ctx)
		if err != nil {
			return err
		}
		m.logger.Info("schema version", slog.Int64("version", version))
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
}

// Contains reports whether version is in versions.
func Contains(versions []int64, version int64) bool {
	for _, v := range versions {
		if v == version {
			return true
		}
	}
	return false
}
