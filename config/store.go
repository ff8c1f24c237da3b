package config

import (
	"context"
	"fmt"

	"github.com/AntonStoeckl/bookshelf/catalog/sqlstore"
)

// CloseFunc releases the database connections of a store.
type CloseFunc func()

// OpenStore connects to the database with the configured adapter and creates the store.
func OpenStore(ctx context.Context, s Settings, options ...sqlstore.Option) (sqlstore.Store, CloseFunc, error) {
	switch s.Adapter {
	case AdapterPGXPool:
		return openPGXStore(ctx, s, options...)

	case AdapterSQLDB:
		db, err := PostgresSQLDB(ctx, s.DSN)
		if err != nil {
			return sqlstore.Store{}, nil, err
		}

		return storeOrClose(func() { _ = db.Close() })(sqlstore.NewStoreFromSQLDB(db, options...))

	case AdapterSQLX:
		db, err := PostgresSQLX(ctx, s.DSN)
		if err != nil {
			return sqlstore.Store{}, nil, err
		}

		return storeOrClose(func() { _ = db.Close() })(sqlstore.NewStoreFromSQLX(db, options...))

	case AdapterSQLite:
		db, err := SQLiteDB(ctx, s.DSN)
		if err != nil {
			return sqlstore.Store{}, nil, err
		}

		return storeOrClose(func() { _ = db.Close() })(sqlstore.NewStoreFromSQLite(db, options...))

	default:
		return sqlstore.Store{}, nil, fmt.Errorf("%w: '%s'", ErrUnsupportedAdapter, s.Adapter)
	}
}

func openPGXStore(ctx context.Context, s Settings, options ...sqlstore.Option) (sqlstore.Store, CloseFunc, error) {
	pool, err := PostgresPGXPool(ctx, s.DSN)
	if err != nil {
		return sqlstore.Store{}, nil, err
	}

	if s.ReplicaDSN == "" {
		return storeOrClose(pool.Close)(sqlstore.NewStoreFromPGXPool(pool, options...))
	}

	replica, err := PostgresPGXPool(ctx, s.ReplicaDSN)
	if err != nil {
		pool.Close()
		return sqlstore.Store{}, nil, err
	}

	closeBoth := func() {
		replica.Close()
		pool.Close()
	}

	return storeOrClose(closeBoth)(sqlstore.NewStoreFromPGXPoolAndReplica(pool, replica, options...))
}

// storeOrClose hands out closeFn with the store, or calls it if the store could not be created.
func storeOrClose(closeFn CloseFunc) func(sqlstore.Store, error) (sqlstore.Store, CloseFunc, error) {
	return func(store sqlstore.Store, err error) (sqlstore.Store, CloseFunc, error) {
		if err != nil {
			closeFn()
			return sqlstore.Store{}, nil, err
		}

		return store, closeFn, nil
	}
}
