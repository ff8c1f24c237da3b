package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/bookshelf/catalog"
	"github.com/AntonStoeckl/bookshelf/catalog/sqlstore/internal/adapters"
	"github.com/AntonStoeckl/bookshelf/fieldpath"
	"github.com/AntonStoeckl/bookshelf/predicate/goquexpr"
)

const (
	defaultBooksTableName      = "books"
	defaultCategoriesTableName = "categories"
	dialectPostgres            = "postgres"
	dialectSQLite              = "sqlite3"
	driverSQLite               = "sqlite3"
	logMsgBuildQueryFailed     = "failed to build query"
	logMsgDBQueryFailed        = "database query execution failed"
	logMsgDBExecFailed         = "database execution failed"
	logMsgCloseRowsFailed      = "failed to close database rows"
	logMsgScanRowFailed        = "failed to scan database row"
	logMsgRowsAffectedFailed   = "failed to get rows affected count"
	logMsgSQLExecuted          = "executed sql for: "
	logMsgOperation            = "catalog operation: "
	logAttrError               = "error"
	logAttrQuery               = "query"
	logAttrDurationMS          = "duration_ms"
	logAttrRowsAffected        = "rows_affected"
	logAttrBookCount           = "book_count"
	logAttrCategoryCount       = "category_count"
	logAttrBookID              = "book_id"
	logAttrCategoryID          = "category_id"
)

type (
	sqlQueryString = string
	queryArgs      = []any
)

// Store gives access to the SQL repositories of books and categories.
type Store struct {
	db                  adapters.DBAdapter
	dialect             goqu.DialectWrapper
	dialectName         string
	booksTableName      string
	categoriesTableName string
	bookFields          fieldpath.Fields
	bookSelect          []any
	logger              Logger
}

// NewStoreFromPGXPool creates a new Store for PostgreSQL using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), dialectPostgres, options...)
}

// NewStoreFromPGXPoolAndReplica creates a new Store for PostgreSQL that reads from the replica pool
// and writes to the primary pool. Reads directly after writes can be stale.
func NewStoreFromPGXPoolAndReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil || replica == nil {
		return Store{}, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapterWithReplica(db, replica), dialectPostgres, options...)
}

// NewStoreFromSQLDB creates a new Store for PostgreSQL using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), dialectPostgres, options...)
}

// NewStoreFromSQLite creates a new Store for SQLite using a sql.DB opened with the sqlite3 driver.
func NewStoreFromSQLite(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), dialectSQLite, options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
// The SQL dialect follows the driver the sqlx.DB was opened with.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, ErrNilDatabaseConnection
	}

	dialect := dialectPostgres
	if db.DriverName() == driverSQLite {
		dialect = dialectSQLite
	}

	return newStore(adapters.NewSQLXAdapter(db), dialect, options...)
}

func newStore(db adapters.DBAdapter, dialect string, options ...Option) (Store, error) {
	fields, err := collectBookFields()
	if err != nil {
		return Store{}, err
	}

	s := Store{
		db:                  db,
		dialect:             goqu.Dialect(dialect),
		dialectName:         dialect,
		booksTableName:      defaultBooksTableName,
		categoriesTableName: defaultCategoriesTableName,
		bookFields:          fields,
		bookSelect:          goquexpr.Select(fields),
	}

	for _, option := range options {
		if err := option(&s); err != nil {
			return Store{}, err
		}
	}

	return s, nil
}

// Books returns the book repository of the store.
func (s Store) Books() BookStore {
	return BookStore{store: s}
}

// Categories returns the category repository of the store.
func (s Store) Categories() CategoryStore {
	return CategoryStore{store: s}
}

// BookFields returns the fields book queries select, in select order.
func (s Store) BookFields() fieldpath.Fields {
	return s.bookFields
}

/***** execution *****/

type toSQLer interface {
	ToSQL() (string, []any, error)
}

func (s Store) toSQL(action string, statement toSQLer) (sqlQueryString, queryArgs, error) {
	sqlQuery, args, err := statement.ToSQL()
	if err != nil {
		if s.logger != nil {
			s.logger.Error(logMsgBuildQueryFailed+" for "+action, logAttrError, err.Error())
		}

		return "", nil, errors.Join(ErrBuildingQueryFailed, err)
	}

	return sqlQuery, args, nil
}

func (s Store) query(ctx context.Context, action string, statement toSQLer) (adapters.DBRows, error) {
	sqlQuery, args, err := s.toSQL(action, statement)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := s.db.Query(ctx, sqlQuery, args...)
	s.logQueryWithDuration(sqlQuery, action, time.Since(start))

	if err != nil {
		if s.logger != nil {
			s.logger.Error(logMsgDBQueryFailed, logAttrError, err.Error(), logAttrQuery, sqlQuery)
		}

		return nil, errors.Join(ErrQueryingFailed, err)
	}

	return rows, nil
}

func (s Store) exec(ctx context.Context, action string, statement toSQLer) (adapters.DBResult, error) {
	sqlQuery, args, err := s.toSQL(action, statement)
	if err != nil {
		return nil, err
	}

	return s.execSQL(ctx, action, sqlQuery, args...)
}

func (s Store) execSQL(ctx context.Context, action string, sqlQuery sqlQueryString, args ...any) (adapters.DBResult, error) {
	start := time.Now()
	result, err := s.db.Exec(ctx, sqlQuery, args...)
	s.logQueryWithDuration(sqlQuery, action, time.Since(start))

	if err != nil {
		if s.logger != nil {
			s.logger.Error(logMsgDBExecFailed, logAttrError, err.Error(), logAttrQuery, sqlQuery)
		}

		return nil, errors.Join(ErrQueryingFailed, err)
	}

	return result, nil
}

// execAffecting runs the statement and reports whether it changed at least one row.
func (s Store) execAffecting(ctx context.Context, action string, statement toSQLer) (bool, error) {
	result, err := s.exec(ctx, action, statement)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		if s.logger != nil {
			s.logger.Error(logMsgRowsAffectedFailed, logAttrError, err.Error())
		}

		return false, errors.Join(ErrQueryingFailed, err)
	}

	s.logOperation(action, logAttrRowsAffected, rowsAffected)

	return rowsAffected > 0, nil
}

// exists reports whether the query yields at least one row.
func (s Store) exists(ctx context.Context, action string, statement toSQLer) (bool, error) {
	rows, err := s.query(ctx, action, statement)
	if err != nil {
		return false, err
	}
	defer s.closeRows(rows)

	found := rows.Next()
	if err := rows.Err(); err != nil {
		return false, errors.Join(ErrQueryingFailed, err)
	}

	return found, nil
}

func (s Store) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if s.logger != nil {
			s.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

func (s Store) supportsReturning() bool {
	return s.dialectName == dialectPostgres
}

/***** logging *****/

// logQueryWithDuration logs SQL statements at debug level with execution time.
func (s Store) logQueryWithDuration(sqlQuery sqlQueryString, action string, duration time.Duration) {
	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level.
func (s Store) logOperation(action string, args ...any) {
	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}

// durationToMilliseconds converts a duration to milliseconds with a precision of one decimal place.
func durationToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()/100_000) / 10
}

func (s Store) scanFailed(err error) error {
	if s.logger != nil {
		s.logger.Error(logMsgScanRowFailed, logAttrError, err.Error())
	}

	return fmt.Errorf("%w: %w", ErrQueryingFailed, err)
}

var _ catalog.BookRepository = BookStore{}
var _ catalog.CategoryRepository = CategoryStore{}
