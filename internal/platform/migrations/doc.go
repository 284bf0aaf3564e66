// Package migrations owns the database schema. SQL migrations for each
// supported engine are embedded in the binary and applied with goose; the
// example tasks in seed.yaml are inserted when the tasks table is created.
package migrations
