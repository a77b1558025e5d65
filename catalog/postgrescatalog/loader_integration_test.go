package postgrescatalog_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/catalog/postgrescatalog"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/config"
	"github.com/AntonStoeckl/library-circulation-go/testutil/helper"
)

const integrationTable = "library_catalog_loader_test"

func givenTestDSN(t *testing.T) string {
	t.Helper()

	dsn := os.Getenv("LIBRARY_TEST_DSN")
	if dsn == "" {
		t.Skip("LIBRARY_TEST_DSN not set")
	}

	return dsn
}

func givenCatalogTable(t *testing.T, dsn string) {
	t.Helper()
	ctx := context.Background()

	db, err := config.OpenSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = db.ExecContext(context.Background(), "DROP TABLE IF EXISTS "+integrationTable)
		_ = db.Close()
	})

	_, err = db.ExecContext(ctx, "DROP TABLE IF EXISTS "+integrationTable)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `CREATE TABLE `+integrationTable+` (
		id integer PRIMARY KEY,
		name text,
		page_count integer,
		author_first_name text,
		author_last_name text,
		book_type text
	)`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO `+integrationTable+` VALUES
		(2, 'Neuromancer', 271, 'William', 'Gibson', 'Cyberpunk'),
		(1, 'Dune', 412, 'Frank', 'Herbert', 'Science Fiction'),
		(3, 'Beowulf', NULL, NULL, NULL, NULL)`)
	require.NoError(t, err)
}

func Test_Loader_Load_AllDrivers(t *testing.T) {
	dsn := givenTestDSN(t)
	givenCatalogTable(t, dsn)
	ctx := context.Background()

	expected := []circulation.Book{
		{ID: 1, Name: "Dune", PageCount: 412, AuthorFirstName: "Frank", AuthorLastName: "Herbert", BookType: "Science Fiction"},
		{ID: 2, Name: "Neuromancer", PageCount: 271, AuthorFirstName: "William", AuthorLastName: "Gibson", BookType: "Cyberpunk"},
		{ID: 3, Name: "Beowulf"},
	}

	loaders := map[string]func(t *testing.T, options ...postgrescatalog.Option) postgrescatalog.Loader{
		config.DriverPGX: func(t *testing.T, options ...postgrescatalog.Option) postgrescatalog.Loader {
			pool, err := config.NewPGXPool(ctx, dsn)
			require.NoError(t, err)
			t.Cleanup(pool.Close)
			loader, err := postgrescatalog.NewLoaderFromPGXPool(pool, options...)
			require.NoError(t, err)
			return loader
		},
		config.DriverSQL: func(t *testing.T, options ...postgrescatalog.Option) postgrescatalog.Loader {
			db, err := config.OpenSQLDB(ctx, dsn)
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })
			loader, err := postgrescatalog.NewLoaderFromSQLDB(db, options...)
			require.NoError(t, err)
			return loader
		},
		config.DriverSQLX: func(t *testing.T, options ...postgrescatalog.Option) postgrescatalog.Loader {
			db, err := config.OpenSQLX(ctx, dsn)
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })
			loader, err := postgrescatalog.NewLoaderFromSQLX(db, options...)
			require.NoError(t, err)
			return loader
		},
	}

	for driver, newLoader := range loaders {
		t.Run(driver, func(t *testing.T) {
			// arrange
			logHandler := helper.NewLogHandlerSpy(false)
			loader := newLoader(t,
				postgrescatalog.WithTableName(integrationTable),
				postgrescatalog.WithLogger(logHandler.NewLogger()),
			)

			// act
			books, err := loader.Load(ctx)

			// assert
			require.NoError(t, err)
			assert.Equal(t, expected, books)
			assert.True(t, logHandler.HasInfoLogWithMessage("catalog loaded").WithAttr("book_count", 3).Assert())
		})
	}
}

func Test_Loader_Load_MissingTable(t *testing.T) {
	dsn := givenTestDSN(t)
	ctx := context.Background()

	db, err := config.OpenSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	loader, err := postgrescatalog.NewLoaderFromSQLDB(db, postgrescatalog.WithTableName("no_such_catalog_table"))
	require.NoError(t, err)

	_, err = loader.Load(ctx)

	assert.ErrorIs(t, err, postgrescatalog.ErrQueryingCatalogFailed)
}
