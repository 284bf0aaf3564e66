package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/phrazzld/task-manager-api/internal/ciutil"
	"github.com/phrazzld/task-manager-api/internal/config"
	"github.com/phrazzld/task-manager-api/internal/platform/migrations"
	_ "modernc.org/sqlite"
)

var dbCounter atomic.Int64

// TestDSN returns a DSN for a fresh, private in-memory SQLite database.
func TestDSN() string {
	return fmt.Sprintf("file:testdb%d?mode=memory&_pragma=foreign_keys(1)&_time_format=sqlite",
		dbCounter.Add(1))
}

// NewTestDB returns a migrated, empty database that is closed when the test
// ends. It is a private in-memory SQLite database unless a PostgreSQL URL is
// configured (see ciutil.GetTestDatabaseURL), in which case the test gets its
// own schema that is dropped afterwards.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()

	if dbURL := ciutil.GetTestDatabaseURL(nil); dbURL != "" {
		db := newPostgresTestDB(t, dbURL)
		migrateTestDB(t, db, config.DriverPostgres)
		return db
	}

	db, err := sql.Open("sqlite", TestDSN())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// An in-memory database lives as long as its only connection.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)
	t.Cleanup(func() { _ = db.Close() })

	migrateTestDB(t, db, config.DriverSQLite)
	return db
}

func newPostgresTestDB(t testing.TB, dbURL string) *sql.DB {
	t.Helper()

	admin, err := sql.Open("pgx", dbURL)
	if err != nil {
		t.Fatalf("failed to open postgres test database: %v", err)
	}

	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if _, err := admin.Exec("CREATE SCHEMA " + schema); err != nil {
		_ = admin.Close()
		t.Fatalf("failed to create test schema: %v", err)
	}

	dsn, err := ciutil.WithSearchPath(dbURL, schema)
	if err != nil {
		_ = admin.Close()
		t.Fatalf("failed to scope test database: %v", err)
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		_ = admin.Close()
		t.Fatalf("failed to open postgres test schema: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
		if _, err := admin.Exec("DROP SCHEMA " + schema + " CASCADE"); err != nil {
			t.Logf("failed to drop test schema %s: %v", schema, err)
		}
		_ = admin.Close()
	})
	return db
}

func migrateTestDB(t testing.TB, db *sql.DB, driver string) {
	t.Helper()

	m, err := migrations.NewMigrator(db, driver, nil)
	if err != nil {
		t.Fatalf("failed to create migrator: %v", err)
	}
	if _, err := m.Up(context.Background()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	fn(t, tx)
}

// CountTasks counts the rows of the tasks table.
func CountTasks(ctx context.Context, t *testing.T, db interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}) int {
	t.Helper()

	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n); err != nil {
		t.Fatalf("failed to count tasks: %v", err)
	}
	return n
}
