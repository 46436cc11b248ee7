// Package config loads and validates application configuration.
//
// Configuration comes from three layers, later layers overriding earlier:
// hardcoded defaults, a YAML file, and CHECKER_* environment variables.
// The DATABASE_URL environment variable is honoured without a prefix and
// switches the database backend from SQLite to PostgreSQL.
package config
