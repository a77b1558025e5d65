// Command library runs the interactive circulation desk over a book catalog loaded
// from a CSV file or a PostgreSQL table.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/catalog"
	"github.com/AntonStoeckl/library-circulation-go/catalog/postgrescatalog"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/config"
	"github.com/AntonStoeckl/library-circulation-go/eventjournal"
	"github.com/AntonStoeckl/library-circulation-go/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.LookupEnv, os.Stdin, os.Stdout, os.Stderr)
	if err != nil && !errors.Is(err, flag.ErrHelp) && !errors.Is(err, context.Canceled) {
		_, _ = fmt.Fprintf(os.Stderr, "library: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	args []string,
	lookupEnv func(string) (string, bool),
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
) error {

	cfg, err := config.Parse(args, lookupEnv)
	if err != nil {
		return err
	}

	logger := cfg.NewLogger(stderr)

	books, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		// the desk still opens with an empty catalog
		logger.Error("loading catalog failed", "error", err.Error())
	} else {
		_, _ = fmt.Fprintln(stdout, "Books loaded successfully.")
	}

	storeOptions := []circulation.Option{
		circulation.WithLoanPeriod(cfg.LoanPeriod()),
		circulation.WithContextualLogger(logger),
	}

	var sessionOptions []session.Option

	if cfg.JournalEnabled {
		recorder := shell.NewRecorder(eventjournal.NewMemoryJournal(eventjournal.WithLogger(logger)), uuid.New())
		storeOptions = append(storeOptions, circulation.WithEventRecorder(recorder))
		sessionOptions = append(sessionOptions, session.WithHistory(recorder))
	}

	store, err := circulation.NewStore(books, storeOptions...)
	if err != nil {
		return err
	}

	return session.New(store, stdin, stdout, sessionOptions...).Run(ctx)
}

func loadCatalog(ctx context.Context, cfg config.Config, logger *slog.Logger) ([]circulation.Book, error) {
	if cfg.CatalogDSN == "" {
		return catalog.LoadFile(cfg.CatalogPath, catalog.WithLogger(logger))
	}

	options := []postgrescatalog.Option{
		postgrescatalog.WithTableName(cfg.CatalogTable),
		postgrescatalog.WithLogger(logger),
	}

	switch cfg.CatalogDriver {
	case config.DriverSQL:
		db, err := config.OpenSQLDB(ctx, cfg.CatalogDSN)
		if err != nil {
			return nil, err
		}
		defer func() { _ = db.Close() }()

		loader, err := postgrescatalog.NewLoaderFromSQLDB(db, options...)
		if err != nil {
			return nil, err
		}

		return loader.Load(ctx)

	case config.DriverSQLX:
		db, err := config.OpenSQLX(ctx, cfg.CatalogDSN)
		if err != nil {
			return nil, err
		}
		defer func() { _ = db.Close() }()

		loader, err := postgrescatalog.NewLoaderFromSQLX(db, options...)
		if err != nil {
			return nil, err
		}

		return loader.Load(ctx)

	default:
		pool, err := config.NewPGXPool(ctx, cfg.CatalogDSN)
		if err != nil {
			return nil, err
		}
		defer pool.Close()

		loader, err := postgrescatalog.NewLoaderFromPGXPool(pool, options...)
		if err != nil {
			return nil, err
		}

		return loader.Load(ctx)
	}
}
