// Package postgrescatalog loads the book catalog from a PostgreSQL table.
//
// The loader works with pgxpool.Pool, sql.DB or sqlx.DB connections. The table needs the columns
// id, name, page_count, author_first_name, author_last_name and book_type; rows are returned
// ordered by id. NULL text and page count columns load as "" and 0.
//
// Example:
//
//	loader, err := postgrescatalog.NewLoaderFromPGXPool(pool, postgrescatalog.WithTableName("books"))
//	books, err := loader.Load(ctx)
package postgrescatalog
