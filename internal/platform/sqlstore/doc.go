// Package sqlstore implements the store interfaces over database/sql.
//
// The same SQL runs on PostgreSQL (through the pgx stdlib driver) and on
// SQLite (through modernc.org/sqlite). Queries use $N placeholders, which
// both engines bind by ordinal, and every timestamp is bound in UTC so that
// SQLite's text timestamps compare in chronological order.
package sqlstore
