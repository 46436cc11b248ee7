// Package database provides database access for the capacity checker.
//
// It supports two backends behind one database/sql connection:
//
//   - SQLite (default): a local file with WAL mode and a busy timeout,
//     suited to development and single-node deployments.
//   - PostgreSQL: selected when a database URL is configured (normally via
//     the DATABASE_URL environment variable), with SSL required and a
//     per-statement timeout.
//
// Repository queries are written once with ? placeholders and rebound to
// $1..$N for PostgreSQL via DB.Rebind.
//
// The package also runs embedded SQL migrations tracked in a
// schema_migrations table; migration files must be portable across both
// backends.
package database
