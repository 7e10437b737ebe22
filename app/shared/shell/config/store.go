package config

import (
	"context"
	"fmt"

	"github.com/mikietechie/sapp-library/lendingstore/sqlengine"
)

// OpenStore connects to the configured database and returns a Store for it.
// The returned close function releases the connection pool.
func OpenStore(ctx context.Context, cfg Config, options ...sqlengine.Option) (sqlengine.Store, func(), error) {
	switch cfg.DBDriver {
	case DriverPGX:
		pool, err := PostgresPGXPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return sqlengine.Store{}, nil, err
		}

		store, err := sqlengine.NewStoreFromPGXPool(pool, options...)
		if err != nil {
			pool.Close()
			return sqlengine.Store{}, nil, err
		}

		return store, pool.Close, nil

	case DriverPostgres:
		db, err := PostgresSQLDB(ctx, cfg.PostgresDSN)
		if err != nil {
			return sqlengine.Store{}, nil, err
		}

		store, err := sqlengine.NewStoreFromSQLDB(db, options...)
		if err != nil {
			_ = db.Close()
			return sqlengine.Store{}, nil, err
		}

		return store, func() { _ = db.Close() }, nil

	case DriverSQLX:
		db, err := PostgresSQLX(ctx, cfg.PostgresDSN)
		if err != nil {
			return sqlengine.Store{}, nil, err
		}

		store, err := sqlengine.NewStoreFromSQLX(db, options...)
		if err != nil {
			_ = db.Close()
			return sqlengine.Store{}, nil, err
		}

		return store, func() { _ = db.Close() }, nil

	case DriverSQLite:
		db, err := SQLiteSQLDB(ctx, cfg.SQLitePath)
		if err != nil {
			return sqlengine.Store{}, nil, err
		}

		store, err := sqlengine.NewStoreFromSQLite(db, options...)
		if err != nil {
			_ = db.Close()
			return sqlengine.Store{}, nil, err
		}

		return store, func() { _ = db.Close() }, nil

	default:
		return sqlengine.Store{}, nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.DBDriver)
	}
}
