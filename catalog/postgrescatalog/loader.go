package postgrescatalog

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-circulation-go/catalog/postgrescatalog/internal/adapters"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

var (
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")
	ErrEmptyTableName        = errors.New("empty catalog table name supplied")
	ErrBuildingQueryFailed   = errors.New("building catalog query failed")
	ErrQueryingCatalogFailed = errors.New("querying catalog failed")
	ErrScanningDBRowFailed   = errors.New("scanning catalog row failed")
)

const (
	defaultTableName      = "books"
	dialectPostgres       = "postgres"
	colID                 = "id"
	colName               = "name"
	colPageCount          = "page_count"
	colAuthorFirstName    = "author_first_name"
	colAuthorLastName     = "author_last_name"
	colBookType           = "book_type"
	logMsgSQLExecuted     = "executed sql for catalog load"
	logMsgCatalogLoaded   = "catalog loaded"
	logMsgDBQueryFailed   = "catalog query execution failed"
	logMsgCloseRowsFailed = "failed to close database rows"
	logAttrError          = "error"
	logAttrQuery          = "query"
	logAttrTable          = "table"
	logAttrBookCount      = "book_count"
	logAttrDurationMS     = "duration_ms"
)

// Logger interface for SQL query logging and error reporting. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option defines a functional option for configuring a Loader.
type Option func(*Loader) error

// WithTableName sets the catalog table name.
func WithTableName(tableName string) Option {
	return func(l *Loader) error {
		if tableName == "" {
			return ErrEmptyTableName
		}

		l.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Loader.
// Debug level receives the executed SQL, Info level the number of loaded books.
func WithLogger(logger Logger) Option {
	return func(l *Loader) error {
		l.logger = logger
		return nil
	}
}

// Loader reads the book catalog from a Postgres table.
type Loader struct {
	db        adapters.DBAdapter
	tableName string
	logger    Logger
}

func NewLoaderFromPGXPool(db *pgxpool.Pool, options ...Option) (Loader, error) {
	if db == nil {
		return Loader{}, ErrNilDatabaseConnection
	}

	return newLoader(adapters.NewPGXAdapter(db), options...)
}

func NewLoaderFromSQLDB(db *sql.DB, options ...Option) (Loader, error) {
	if db == nil {
		return Loader{}, ErrNilDatabaseConnection
	}

	return newLoader(adapters.NewSQLAdapter(db), options...)
}

func NewLoaderFromSQLX(db *sqlx.DB, options ...Option) (Loader, error) {
	if db == nil {
		return Loader{}, ErrNilDatabaseConnection
	}

	return newLoader(adapters.NewSQLXAdapter(db), options...)
}

func newLoader(db adapters.DBAdapter, options ...Option) (Loader, error) {
	l := Loader{
		db:        db,
		tableName: defaultTableName,
	}

	for _, option := range options {
		if err := option(&l); err != nil {
			return Loader{}, err
		}
	}

	return l, nil
}

// Load returns all books of the catalog table ordered by id.
func (l Loader) Load(ctx context.Context) ([]circulation.Book, error) {
	sqlQuery, err := l.SelectQuery()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := l.db.Query(ctx, sqlQuery)
	duration := time.Since(start)

	if l.logger != nil {
		l.logger.Debug(logMsgSQLExecuted, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}

	if err != nil {
		if l.logger != nil {
			l.logger.Error(logMsgDBQueryFailed, logAttrError, err.Error(), logAttrQuery, sqlQuery)
		}

		return nil, errors.Join(ErrQueryingCatalogFailed, err)
	}
	defer l.closeRows(rows)

	books, err := scanBooks(rows)
	if err != nil {
		return nil, err
	}

	if l.logger != nil {
		l.logger.Info(logMsgCatalogLoaded, logAttrTable, l.tableName, logAttrBookCount, len(books))
	}

	return books, nil
}

// SelectQuery returns the SQL the Loader runs.
func (l Loader) SelectQuery() (string, error) {
	sqlQuery, _, err := goqu.Dialect(dialectPostgres).
		From(l.tableName).
		Select(colID, colName, colPageCount, colAuthorFirstName, colAuthorLastName, colBookType).
		Order(goqu.I(colID).Asc()).
		ToSQL()

	if err != nil {
		return "", errors.Join(ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

func scanBooks(rows adapters.DBRows) ([]circulation.Book, error) {
	books := make([]circulation.Book, 0)

	for rows.Next() {
		var (
			id                                      int64
			pageCount                               sql.NullInt64
			name, authorFirst, authorLast, bookType sql.NullString
		)

		if err := rows.Scan(&id, &name, &pageCount, &authorFirst, &authorLast, &bookType); err != nil {
			return nil, errors.Join(ErrScanningDBRowFailed, err)
		}

		books = append(books, circulation.Book{
			ID:              int(id),
			Name:            name.String,
			PageCount:       int(pageCount.Int64),
			AuthorFirstName: authorFirst.String,
			AuthorLastName:  authorLast.String,
			BookType:        bookType.String,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrQueryingCatalogFailed, err)
	}

	return books, nil
}

func (l Loader) closeRows(rows adapters.DBRows) {
	if err := rows.Close(); err != nil && l.logger != nil {
		l.logger.Warn(logMsgCloseRowsFailed, logAttrError, err.Error())
	}
}

func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
