package sqlstore_test

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookshelf/catalog"
	"github.com/AntonStoeckl/bookshelf/catalog/sqlstore"
	"github.com/AntonStoeckl/bookshelf/testutil/catalogtest"
	"github.com/AntonStoeckl/bookshelf/testutil/testdoubles"
)

const envTestDSN = "BOOKSHELF_TEST_DSN"

func openSQLiteStore(t *testing.T, options ...sqlstore.Option) sqlstore.Store {
	t.Helper()

	store, err := sqlstore.NewStoreFromSQLite(catalogtest.OpenSQLite(t), options...)
	require.NoError(t, err, "error in arranging test data")
	require.NoError(t, store.Migrate(context.Background()), "error in arranging test data")

	return store
}

func repositories(store sqlstore.Store) catalogtest.Repositories {
	return catalogtest.Repositories{Books: store.Books(), Categories: store.Categories()}
}

func Test_SQLite_Store_Fulfills_The_Repository_Contract(t *testing.T) {
	catalogtest.RunRepositoryContract(t, func(t *testing.T) catalogtest.Repositories {
		return repositories(openSQLiteStore(t))
	})
}

func Test_SQLX_SQLite_Store_Fulfills_The_Repository_Contract(t *testing.T) {
	catalogtest.RunRepositoryContract(t, func(t *testing.T) catalogtest.Repositories {
		store, err := sqlstore.NewStoreFromSQLX(sqlx.NewDb(catalogtest.OpenSQLite(t), "sqlite3"))
		require.NoError(t, err)
		require.NoError(t, store.Migrate(context.Background()))

		return repositories(store)
	})
}

func Test_Store_Selects_Book_Fields_With_The_Category_Alias(t *testing.T) {
	store := openSQLiteStore(t)

	fields := store.BookFields()

	assert.Equal(t,
		[]string{"book.book_type", "book.title", "book.author", "book.published", "book.isbn13", "book.id.id", "book.category_id.id"},
		fields.Paths(),
	)

	category, ok := fields.Lookup("book.category_id.id")
	require.True(t, ok)
	assert.Equal(t, "category_id", category.Column)
	assert.Equal(t, "categoryId", category.Name)

	id, ok := fields.Lookup("book.id.id")
	require.True(t, ok)
	assert.Equal(t, "id", id.Column)
	assert.Equal(t, "id", id.Name)
}

func Test_Store_With_Custom_Table_Names(t *testing.T) {
	ctx := context.Background()
	store := openSQLiteStore(t,
		sqlstore.WithBooksTableName("library_books"),
		sqlstore.WithCategoriesTableName("library_categories"),
	)

	c := catalogtest.GivenCatalog(t, ctx, repositories(store))

	books, err := store.Books().Find(ctx, catalog.BooksQuery{Title: "dune"})
	require.NoError(t, err)
	assert.Equal(t, []string{catalogtest.TitleDune}, catalogtest.Titles(books))

	inUse, err := store.Categories().InUse(ctx, c.ScienceFiction.ID)
	require.NoError(t, err)
	assert.True(t, inUse)
}

func Test_Store_Migrate_Is_Repeatable(t *testing.T) {
	store := openSQLiteStore(t)

	assert.NoError(t, store.Migrate(context.Background()))
}

func Test_Store_Logs_Statements_And_Operations(t *testing.T) {
	ctx := context.Background()
	logger := testdoubles.NewLoggerSpy()
	store := openSQLiteStore(t, sqlstore.WithLogger(logger))
	catalogtest.GivenCatalog(t, ctx, repositories(store))
	logger.Reset()

	_, err := store.Books().Find(ctx, catalog.BooksQuery{Keyword: "gibson"})
	require.NoError(t, err)

	assert.True(t, logger.HasLog("debug", "executed sql for: find books"))
	assert.True(t, logger.HasLog("info", "catalog operation: find books"))
	assert.Empty(t, logger.Records("error"))
}

func Test_Store_Reports_Database_Errors(t *testing.T) {
	ctx := context.Background()
	logger := testdoubles.NewLoggerSpy()

	// no Migrate, so the tables are missing
	store, err := sqlstore.NewStoreFromSQLite(catalogtest.OpenSQLite(t), sqlstore.WithLogger(logger))
	require.NoError(t, err)

	_, err = store.Books().FindAll(ctx)

	assert.ErrorIs(t, err, sqlstore.ErrQueryingFailed)
	assert.True(t, logger.HasLog("error", "database query execution failed"))
}

func Test_FactoryFunctions_Should_Fail_With_Nil_Database_Connection(t *testing.T) {
	testCases := []struct {
		name        string
		factoryFunc func() (sqlstore.Store, error)
	}{
		{
			name:        "NewStoreFromPGXPool with nil",
			factoryFunc: func() (sqlstore.Store, error) { return sqlstore.NewStoreFromPGXPool(nil) },
		},
		{
			name:        "NewStoreFromPGXPoolAndReplica with nil",
			factoryFunc: func() (sqlstore.Store, error) { return sqlstore.NewStoreFromPGXPoolAndReplica(nil, nil) },
		},
		{
			name:        "NewStoreFromSQLDB with nil",
			factoryFunc: func() (sqlstore.Store, error) { return sqlstore.NewStoreFromSQLDB(nil) },
		},
		{
			name:        "NewStoreFromSQLite with nil",
			factoryFunc: func() (sqlstore.Store, error) { return sqlstore.NewStoreFromSQLite(nil) },
		},
		{
			name:        "NewStoreFromSQLX with nil",
			factoryFunc: func() (sqlstore.Store, error) { return sqlstore.NewStoreFromSQLX(nil) },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.factoryFunc()

			assert.ErrorIs(t, err, sqlstore.ErrNilDatabaseConnection)
		})
	}
}

func Test_FactoryFunctions_Should_Fail_With_Empty_Table_Names(t *testing.T) {
	db := catalogtest.OpenSQLite(t)

	_, err := sqlstore.NewStoreFromSQLite(db, sqlstore.WithBooksTableName(""))
	assert.ErrorIs(t, err, sqlstore.ErrEmptyTableName)

	_, err = sqlstore.NewStoreFromSQLite(db, sqlstore.WithCategoriesTableName(""))
	assert.ErrorIs(t, err, sqlstore.ErrEmptyTableName)
}

/***** PostgreSQL *****/

func postgresDSN(t *testing.T) string {
	t.Helper()

	dsn := os.Getenv(envTestDSN)
	if dsn == "" {
		t.Skipf("%s is not set", envTestDSN)
	}

	return dsn
}

// tableNames isolates tests that share one database.
func tableNames(t *testing.T) (string, string, []sqlstore.Option) {
	t.Helper()

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	books, categories := "books_"+suffix, "categories_"+suffix

	return books, categories, []sqlstore.Option{
		sqlstore.WithBooksTableName(books),
		sqlstore.WithCategoriesTableName(categories),
	}
}

func migratePostgres(t *testing.T, store sqlstore.Store, dropTables func()) catalogtest.Repositories {
	t.Helper()

	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(dropTables)

	return repositories(store)
}

func Test_Postgres_Stores_Fulfill_The_Repository_Contract(t *testing.T) {
	dsn := postgresDSN(t)
	ctx := context.Background()

	t.Run("pgx", func(t *testing.T) {
		pool, err := pgxpool.New(ctx, dsn)
		require.NoError(t, err)
		t.Cleanup(pool.Close)

		catalogtest.RunRepositoryContract(t, func(t *testing.T) catalogtest.Repositories {
			books, categories, options := tableNames(t)
			store, err := sqlstore.NewStoreFromPGXPool(pool, options...)
			require.NoError(t, err)

			return migratePostgres(t, store, func() {
				_, _ = pool.Exec(ctx, `DROP TABLE IF EXISTS "`+books+`", "`+categories+`"`)
			})
		})
	})

	t.Run("sql_db", func(t *testing.T) {
		db, err := sql.Open("postgres", dsn)
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		catalogtest.RunRepositoryContract(t, func(t *testing.T) catalogtest.Repositories {
			books, categories, options := tableNames(t)
			store, err := sqlstore.NewStoreFromSQLDB(db, options...)
			require.NoError(t, err)

			return migratePostgres(t, store, func() {
				_, _ = db.ExecContext(ctx, `DROP TABLE IF EXISTS "`+books+`", "`+categories+`"`)
			})
		})
	})

	t.Run("sqlx", func(t *testing.T) {
		db, err := sqlx.Open("postgres", dsn)
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		catalogtest.RunRepositoryContract(t, func(t *testing.T) catalogtest.Repositories {
			books, categories, options := tableNames(t)
			store, err := sqlstore.NewStoreFromSQLX(db, options...)
			require.NoError(t, err)

			return migratePostgres(t, store, func() {
				_, _ = db.ExecContext(ctx, `DROP TABLE IF EXISTS "`+books+`", "`+categories+`"`)
			})
		})
	})
}
