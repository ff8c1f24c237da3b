package sqlstore

import (
	"context"
	"fmt"
)

const logActionMigrate = "migrate"

// Migrate creates the tables of the store if they do not exist yet.
func (s Store) Migrate(ctx context.Context) error {
	for _, statement := range s.schema() {
		if _, err := s.execSQL(ctx, logActionMigrate, statement); err != nil {
			return err
		}
	}

	s.logOperation(logActionMigrate, "books_table", s.booksTableName, "categories_table", s.categoriesTableName)

	return nil
}

func (s Store) schema() []sqlQueryString {
	if s.dialectName == dialectSQLite {
		return []sqlQueryString{
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS "%s" (
				id   INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL
			)`, s.categoriesTableName),
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS "%s" (
				id          TEXT PRIMARY KEY,
				category_id INTEGER NOT NULL REFERENCES "%s" (id),
				book_type   INTEGER NOT NULL,
				title       TEXT NOT NULL,
				author      TEXT NOT NULL DEFAULT '',
				published   TIMESTAMP,
				isbn13      TEXT NOT NULL DEFAULT ''
			)`, s.booksTableName, s.categoriesTableName),
		}
	}

	return []sqlQueryString{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS "%s" (
			id   SERIAL PRIMARY KEY,
			name VARCHAR(50) NOT NULL
		)`, s.categoriesTableName),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS "%s" (
			id          VARCHAR(36) PRIMARY KEY,
			category_id INTEGER NOT NULL REFERENCES "%s" (id),
			book_type   INTEGER NOT NULL,
			title       VARCHAR(100) NOT NULL,
			author      VARCHAR(50) NOT NULL DEFAULT '',
			published   TIMESTAMP WITH TIME ZONE,
			isbn13      VARCHAR(13) NOT NULL DEFAULT ''
		)`, s.booksTableName, s.categoriesTableName),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS "%s_category_id_idx" ON "%s" (category_id)`, s.booksTableName, s.booksTableName),
	}
}
