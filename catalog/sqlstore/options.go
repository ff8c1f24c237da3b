package sqlstore

import (
	"errors"
)

var (
	// ErrNilDatabaseConnection is returned when a store is created without a database connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyTableName is returned when an empty table name is configured.
	ErrEmptyTableName = errors.New("table name must not be empty")

	// ErrBuildingQueryFailed is returned when goqu can not render a statement.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrQueryingFailed is returned when a statement fails in the database.
	ErrQueryingFailed = errors.New("querying the database failed")

	// ErrUnmappedField is returned when the book descriptor yields a field the store can not scan.
	ErrUnmappedField = errors.New("field of the book projection is not mapped")
)

// Logger interface for SQL query logging, operational information, warnings, and error reporting.
// It is satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option defines a functional option for configuring a Store.
type Option func(*Store) error

// WithBooksTableName sets the table name for books.
func WithBooksTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return ErrEmptyTableName
		}

		s.booksTableName = tableName

		return nil
	}
}

// WithCategoriesTableName sets the table name for categories.
func WithCategoriesTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return ErrEmptyTableName
		}

		s.categoriesTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Store.
//
// Debug level: SQL statements with execution timing (development use)
// Info level: row counts of changes (production-safe)
// Error level: failures that cause operation failures.
func WithLogger(logger Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}
