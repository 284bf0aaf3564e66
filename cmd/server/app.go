package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/task-manager-api/internal/config"
	"github.com/phrazzld/task-manager-api/internal/platform/migrations"
	"github.com/phrazzld/task-manager-api/internal/platform/sqlstore"
	"github.com/phrazzld/task-manager-api/internal/service"
	"github.com/phrazzld/task-manager-api/internal/store"
	"github.com/phrazzld/task-manager-api/internal/validation"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	taskStore   store.TaskStore
	taskService service.TaskService
	validator   *validation.Validator

	now func() time.Time
}

// newApplication wires stores, services and the validator around an open
// database. When auto-migration is enabled it also brings the schema up to
// date and seeds a freshly created tasks table.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
		now:    time.Now,
	}

	if cfg.Database.AutoMigrate {
		m, err := migrations.NewMigrator(db, cfg.Database.Driver, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create migrator: %w", err)
		}
		taskStore := sqlstore.NewTaskStore(db, logger)
		if err := m.Migrate(ctx, taskStore, cfg.Database.Seed, app.now()); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	app.taskStore = sqlstore.NewTaskStore(db, logger)

	var err error
	app.taskService, err = service.NewTaskService(
		service.NewTaskRepositoryAdapter(app.taskStore, db),
		logger,
		service.WithClock(app.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.validator = validation.New(validation.WithClock(app.now))

	return app, nil
}

// newHTTPServer builds the HTTP server for the configured port.
func (app *application) newHTTPServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		closeDB(app.db, app.logger)
	}
}
