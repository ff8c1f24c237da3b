// Package adapters lets the SQL catalog store run on pgx.Pool, sql.DB (lib/pq or go-sqlite3) and sqlx.DB.
//
// *sql.Rows, *sqlx.Rows and sql.Result already satisfy DBRows and DBResult, so only pgx needs wrapping.
package adapters
