package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	DriverPGX  = "pgx"
	DriverSQL  = "sql"
	DriverSQLX = "sqlx"

	LogFormatText = "text"
	LogFormatJSON = "json"

	defaultCatalogPath  = "library_books.csv"
	defaultCatalogTable = "books"
	defaultLoanDays     = 3
	defaultLogLevel     = "warn"
)

var (
	ErrInvalidDriver    = errors.New("catalog driver must be one of pgx, sql, sqlx")
	ErrInvalidLoanDays  = errors.New("loan days must be a positive integer")
	ErrInvalidLogLevel  = errors.New("log level must be one of debug, info, warn, error")
	ErrInvalidLogFormat = errors.New("log format must be one of text, json")
	ErrInvalidJournal   = errors.New("journal must be a boolean")
)

// Config holds the command-line configuration of the library binary.
type Config struct {
	CatalogPath    string
	CatalogDSN     string
	CatalogDriver  string
	CatalogTable   string
	LoanDays       int
	LogLevel       slog.Level
	LogFormat      string
	JournalEnabled bool
}

// Parse reads the flags in args. Each flag falls back to an environment variable, then to its default.
// lookupEnv is usually os.LookupEnv.
func Parse(args []string, lookupEnv func(string) (string, bool)) (Config, error) {
	getEnv := func(key, fallback string) string {
		if value, ok := lookupEnv(key); ok && value != "" {
			return value
		}

		return fallback
	}

	loanDaysDefault, err := strconv.Atoi(getEnv("LIBRARY_LOAN_DAYS", strconv.Itoa(defaultLoanDays)))
	if err != nil {
		return Config{}, errors.Join(ErrInvalidLoanDays, err)
	}

	journalDefault, err := strconv.ParseBool(getEnv("LIBRARY_JOURNAL", "true"))
	if err != nil {
		return Config{}, errors.Join(ErrInvalidJournal, err)
	}

	fs := flag.NewFlagSet("library", flag.ContinueOnError)

	var (
		catalogPath   = fs.String("catalog", getEnv("LIBRARY_CATALOG", defaultCatalogPath), "Path of the catalog CSV file")
		catalogDSN    = fs.String("catalog-dsn", getEnv("LIBRARY_CATALOG_DSN", ""), "PostgreSQL DSN; when set, the catalog is loaded from the database")
		catalogDriver = fs.String("catalog-driver", getEnv("LIBRARY_CATALOG_DRIVER", DriverPGX), "Database driver for the catalog: pgx, sql or sqlx")
		catalogTable  = fs.String("catalog-table", getEnv("LIBRARY_CATALOG_TABLE", defaultCatalogTable), "Catalog table name")
		loanDays      = fs.Int("loan-days", loanDaysDefault, "Loan period in days")
		logLevel      = fs.String("log-level", getEnv("LIBRARY_LOG_LEVEL", defaultLogLevel), "Log level: debug, info, warn or error")
		logFormat     = fs.String("log-format", getEnv("LIBRARY_LOG_FORMAT", LogFormatText), "Log format: text or json")
		journal       = fs.Bool("journal", journalDefault, "Record circulation events for the history view")
	)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if !slices.Contains([]string{DriverPGX, DriverSQL, DriverSQLX}, *catalogDriver) {
		return Config{}, fmt.Errorf("%w: %q", ErrInvalidDriver, *catalogDriver)
	}

	if *loanDays <= 0 {
		return Config{}, fmt.Errorf("%w: %d", ErrInvalidLoanDays, *loanDays)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		return Config{}, errors.Join(ErrInvalidLogLevel, err)
	}

	format := strings.ToLower(*logFormat)
	if format != LogFormatText && format != LogFormatJSON {
		return Config{}, fmt.Errorf("%w: %q", ErrInvalidLogFormat, *logFormat)
	}

	return Config{
		CatalogPath:    *catalogPath,
		CatalogDSN:     *catalogDSN,
		CatalogDriver:  *catalogDriver,
		CatalogTable:   *catalogTable,
		LoanDays:       *loanDays,
		LogLevel:       level,
		LogFormat:      format,
		JournalEnabled: *journal,
	}, nil
}

// LoanPeriod returns the configured loan period.
func (c Config) LoanPeriod() time.Duration {
	return time.Duration(c.LoanDays) * 24 * time.Hour
}

// NewLogger builds the slog logger described by the configuration.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	options := &slog.HandlerOptions{Level: c.LogLevel}

	if c.LogFormat == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, options))
	}

	return slog.New(slog.NewTextHandler(w, options))
}
