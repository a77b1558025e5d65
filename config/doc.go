// Package config provides the command-line configuration of the library binary
// and factory functions for PostgreSQL connections (pgx.Pool, sql.DB, sqlx.DB)
// used when the catalog is read from a database.
package config
