package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver

	"github.com/capacitymarket/capacity-checker/internal/infrastructure/config"
)

// Database configuration constants.
const (
	// dirPermissions is the permission mode for the SQLite database directory.
	dirPermissions = 0750

	// filePermissions is the permission mode for the SQLite database file.
	filePermissions = 0600

	// msPerSecond converts seconds to milliseconds.
	msPerSecond = 1000

	// connectionTimeout is the timeout for verifying database connectivity.
	connectionTimeout = 5 * time.Second

	// connMaxIdleTime is how long idle connections are kept open.
	connMaxIdleTime = 30 * time.Minute

	// postgresMaxOpenConns bounds the PostgreSQL connection pool.
	postgresMaxOpenConns = 10
)

// Driver identifies the active database backend.
type Driver string

// Supported drivers.
const (
	DriverSQLite   Driver = "sqlite3"
	DriverPostgres Driver = "pgx"
)

// DB wraps a sql.DB connection with backend-aware functionality.
// It provides migration support, health checks, placeholder rebinding,
// and proper lifecycle management.
type DB struct {
	*sql.DB
	driver Driver
	source string
}

// Open creates a new database connection from the application configuration.
//
// Backend selection follows the configuration: when a database URL is set
// (normally via DATABASE_URL) the service connects to PostgreSQL with SSL
// required and a per-statement timeout; otherwise it opens a local SQLite
// file, creating the directory if needed. Connections are kept alive for
// the configured max age for both backends.
func Open(cfg config.DatabaseConfig) (*DB, error) {
	var db *DB
	var err error

	if cfg.URL != "" {
		db, err = openPostgres(cfg)
	} else {
		db, err = openSQLite(cfg)
	}
	if err != nil {
		return nil, err
	}

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.DB.Close() //nolint:errcheck // Best effort cleanup on error path
		return nil, fmt.Errorf("verifying database connection: %w", err)
	}

	return db, nil
}

// openSQLite opens the local SQLite database file.
func openSQLite(cfg config.DatabaseConfig) (*DB, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	// Build connection string with pragmas
	// See: https://github.com/mattn/go-sqlite3#connection-string
	connStr := fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=on",
		cfg.Path,
		cfg.BusyTimeout*msPerSecond,
	)
	if cfg.WALMode {
		connStr += "&_journal_mode=WAL&_synchronous=NORMAL"
	}

	sqlDB, err := sql.Open(string(DriverSQLite), connStr)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// SQLite works best with a single writer, but multiple readers
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxAge) * time.Second)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	// Set file permissions (owner read/write only)
	// Ignore error - file might not exist yet on first run
	_ = os.Chmod(cfg.Path, filePermissions) //nolint:errcheck // First run creates file later

	return &DB{DB: sqlDB, driver: DriverSQLite, source: cfg.Path}, nil
}

// openPostgres opens a PostgreSQL connection from a database URL.
// SSL is required and a statement timeout is applied to every connection.
func openPostgres(cfg config.DatabaseConfig) (*DB, error) {
	dsn, err := buildPostgresDSN(cfg.URL, cfg.StatementTimeout)
	if err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open(string(DriverPostgres), dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres database: %w", err)
	}

	sqlDB.SetMaxOpenConns(postgresMaxOpenConns)
	sqlDB.SetMaxIdleConns(postgresMaxOpenConns / 2)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxAge) * time.Second)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return &DB{DB: sqlDB, driver: DriverPostgres, source: redactURL(cfg.URL)}, nil
}

// buildPostgresDSN enforces sslmode=require and a statement timeout on the
// connection URL. Existing sslmode and options parameters are preserved.
func buildPostgresDSN(rawURL string, statementTimeoutSec int) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing database URL: %w", err)
	}

	q := u.Query()
	if q.Get("sslmode") == "" {
		q.Set("sslmode", "require")
	}
	if statementTimeoutSec > 0 && q.Get("options") == "" {
		q.Set("options", "-c statement_timeout="+strconv.Itoa(statementTimeoutSec*msPerSecond))
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// redactURL strips credentials from a database URL for logging.
func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "postgres://***"
	}
	if u.User != nil {
		u.User = url.User(u.User.Username())
	}
	return u.Redacted()
}

// Close closes the database connection gracefully.
// It should be called when the application shuts down.
func (db *DB) Close() error {
	if db.DB == nil {
		return nil
	}
	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// Driver returns the active database driver.
func (db *DB) Driver() Driver {
	return db.driver
}

// Source returns a loggable description of the database (file path or
// credential-redacted URL).
func (db *DB) Source() string {
	return db.source
}

// Rebind converts ? placeholders to the driver's placeholder style.
// Queries throughout the repository layer are written with ? and rebound
// to $1..$N when running against PostgreSQL.
func (db *DB) Rebind(query string) string {
	if db.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// HealthCheck verifies the database is accessible and functioning.
// It performs a simple query to ensure the connection is alive.
func (db *DB) HealthCheck(ctx context.Context) error {
	var result int
	err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result)
	if err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// Stats returns database connection pool statistics.
// Useful for monitoring and debugging connection issues.
func (db *DB) Stats() sql.DBStats {
	return db.DB.Stats()
}

// BeginTx starts a new transaction with the given options.
// Always use transactions for operations that modify multiple rows/tables.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	tx, err := db.DB.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	return tx, nil
}
