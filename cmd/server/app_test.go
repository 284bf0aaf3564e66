package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/task-manager-api/internal/config"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/platform/migrations"
	"github.com/phrazzld/task-manager-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            8080,
			LogLevel:        "debug",
			ShutdownTimeout: time.Second,
		},
		Database: config.DatabaseConfig{
			Driver:       config.DriverSQLite,
			URL:          testutils.TestDSN(),
			MaxOpenConns: 4,
			AutoMigrate:  true,
			Seed:         true,
		},
	}
}

func openTestDatabase(t *testing.T, cfg *config.Config) *sql.DB {
	t.Helper()

	log, _ := logger.GetTestLogger(t)
	db, err := setupAppDatabase(context.Background(), cfg.Database, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    options
		wantErr bool
	}{
		{name: "defaults", args: nil, want: options{}},
		{
			name: "all flags",
			args: []string{"-config", "conf.yaml", "-migrate", "status"},
			want: options{configPath: "conf.yaml", migrate: "status"},
		},
		{name: "unknown flag", args: []string{"-port", "1"}, wantErr: true},
		{name: "positional argument", args: []string{"serve"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseFlags(tc.args, io.Discard)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFlagsHelp(t *testing.T) {
	var out bytes.Buffer
	_, err := parseFlags([]string{"-h"}, &out)

	assert.True(t, errors.Is(err, flag.ErrHelp))
	assert.Contains(t, out.String(), "-migrate")
}

func TestSQLDriverName(t *testing.T) {
	name, err := sqlDriverName(config.DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", name)

	name, err = sqlDriverName(config.DriverPostgres)
	require.NoError(t, err)
	assert.Equal(t, "pgx", name)

	_, err = sqlDriverName("oracle")
	assert.Error(t, err)
}

func TestSetupAppDatabaseSQLitePool(t *testing.T) {
	db := openTestDatabase(t, testConfig())

	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
}

func TestNewApplicationMigratesAndSeedsOnce(t *testing.T) {
	cfg := testConfig()
	db := openTestDatabase(t, cfg)
	log, _ := logger.GetTestLogger(t)
	ctx := context.Background()

	_, err := newApplication(ctx, cfg, log, db)
	require.NoError(t, err)
	assert.Equal(t, 3, testutils.CountTasks(ctx, t, db))

	_, err = newApplication(ctx, cfg, log, db)
	require.NoError(t, err)
	assert.Equal(t, 3, testutils.CountTasks(ctx, t, db))
}

func TestNewApplicationWithoutSeed(t *testing.T) {
	cfg := testConfig()
	cfg.Database.Seed = false
	db := openTestDatabase(t, cfg)
	log, _ := logger.GetTestLogger(t)
	ctx := context.Background()

	_, err := newApplication(ctx, cfg, log, db)
	require.NoError(t, err)
	assert.Equal(t, 0, testutils.CountTasks(ctx, t, db))
}

func TestRunMigrationCommand(t *testing.T) {
	cfg := testConfig()
	db := openTestDatabase(t, cfg)
	log, _ := logger.GetTestLogger(t)
	ctx := context.Background()

	require.NoError(t, runMigrationCommand(ctx, db, cfg.Database.Driver, migrations.CommandUp, log))
	require.NoError(t, runMigrationCommand(ctx, db, cfg.Database.Driver, migrations.CommandStatus, log))
	require.NoError(t, runMigrationCommand(ctx, db, cfg.Database.Driver, migrations.CommandVersion, log))
	require.NoError(t, runMigrationCommand(ctx, db, cfg.Database.Driver, migrations.CommandDown, log))

	err := runMigrationCommand(ctx, db, cfg.Database.Driver, "sideways", log)
	assert.ErrorIs(t, err, migrations.ErrUnknownCommand)
}

func TestRouterEndToEnd(t *testing.T) {
	cfg := testConfig()
	cfg.Database.Seed = false
	db := openTestDatabase(t, cfg)
	log, _ := logger.GetTestLogger(t)

	app, err := newApplication(context.Background(), cfg, log, db)
	require.NoError(t, err)

	server := httptest.NewServer(app.setupRouter())
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/tasks", "application/json",
		strings.NewReader(`{"title":"From the wire","priority":"Urgent"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	location := resp.Header.Get("Location")
	assert.True(t, strings.HasPrefix(location, "/api/tasks/"), location)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))

	req, err := http.NewRequest(http.MethodGet, server.URL+location, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	getResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer getResp.Body.Close()

	require.Equal(t, http.StatusOK, getResp.StatusCode)
	assert.Equal(t, "*", getResp.Header.Get("Access-Control-Allow-Origin"))

	var task map[string]any
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&task))
	assert.Equal(t, "From the wire", task["title"])
	assert.Equal(t, "Urgent", task["priority"])

	healthResp, err := http.Get(server.URL + "/api/health")
	require.NoError(t, err)
	defer healthResp.Body.Close()
	assert.Equal(t, http.StatusOK, healthResp.StatusCode)
}

func TestRouterUnknownRoute(t *testing.T) {
	cfg := testConfig()
	db := openTestDatabase(t, cfg)
	log, _ := logger.GetTestLogger(t)

	app, err := newApplication(context.Background(), cfg, log, db)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/projects", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
