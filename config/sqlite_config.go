package config

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3" // sqlite driver
)

// SQLiteDB opens and pings a *sql.DB for the SQLite DSN.
func SQLiteDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// SQLite serializes writers, and each connection to ":memory:" would see its own database.
	db.SetMaxOpenConns(1)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, pingErr
	}

	return db, nil
}
