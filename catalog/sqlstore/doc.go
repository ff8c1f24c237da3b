// Package sqlstore provides the SQL implementation of the catalog repositories.
//
// Queries are built with goqu for the postgres or the sqlite3 dialect and executed through one of
// the supported database adapters (pgx, sql.DB, sqlx). Filters for listing books are composed with
// the predicate package, and the projection list of book queries is collected once per store from
// the catalog.Book descriptor.
//
// Usage examples:
//
//	// Basic usage
//	db, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := sqlstore.NewStoreFromPGXPool(db)
//
//	// With custom table names and logging
//	store, _ := sqlstore.NewStoreFromSQLDB(
//		db,
//		sqlstore.WithBooksTableName("library_books"),
//		sqlstore.WithLogger(logger),
//	)
//
//	books, _ := store.Books().Find(ctx, catalog.BooksQuery{Title: "dune"})
package sqlstore
