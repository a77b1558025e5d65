// Package adapters lets the Postgres catalog loader read through pgx.Pool, sql.DB or sqlx.DB
// behind one DBAdapter interface.
package adapters
