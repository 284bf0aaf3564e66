// Package main implements the entry point for the Task Manager API server,
// which serves the task CRUD and statistics endpoints over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/phrazzld/task-manager-api/internal/config"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
)

// options are the command-line flags of the server binary.
type options struct {
	configPath string
	migrate    string
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg, err := initializeApp(opts)
	if err != nil {
		slog.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	os.Exit(run(context.Background(), cfg, opts))
}

// parseFlags reads the server flags from args.
func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&opts.migrate, "migrate", "",
		"run a migration command (up, down, status, version) and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(output, "unexpected arguments: %v\n", fs.Args())
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if _, err := logger.Setup(cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver))

	return cfg, nil
}

// run opens the database and either executes a migration command or serves
// HTTP until shutdown. It returns the process exit code.
func run(ctx context.Context, cfg *config.Config, opts options) int {
	log := slog.Default()

	db, err := setupAppDatabase(ctx, cfg.Database, log)
	if err != nil {
		log.Error("failed to set up database", slog.String("error", err.Error()))
		return 1
	}

	if opts.migrate != "" {
		defer closeDB(db, log)
		if err := runMigrationCommand(ctx, db, cfg.Database.Driver, opts.migrate, log); err != nil {
			log.Error("migration command failed",
				slog.String("command", opts.migrate),
				slog.String("error", err.Error()))
			return 1
		}
		return 0
	}

	app, err := newApplication(ctx, cfg, log, db)
	if err != nil {
		closeDB(db, log)
		log.Error("failed to create application", slog.String("error", err.Error()))
		return 1
	}

	return app.serve(ctx)
}
