// Package config provides the runtime configuration of the bookshelf service and factory functions for
// database connections with the supported drivers (pgx.Pool, sql.DB, sqlx.DB for PostgreSQL and
// sql.DB for SQLite).
//
// Settings are read from the environment:
//
//	BOOKSHELF_DSN          database DSN, defaults per adapter
//	BOOKSHELF_REPLICA_DSN  optional read replica, pgx.pool only
//	BOOKSHELF_ADAPTER      pgx.pool (default), sql.db, sqlx.db or sqlite
//	BOOKSHELF_ADDR         listen address of the HTTP API, defaults to :8080
package config
