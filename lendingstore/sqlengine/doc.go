// Package sqlengine provides the SQL implementation of the lending store.
//
// The Store persists the catalog, inventory, members, leases, bookings and restock
// actions of the lendingstore package. It runs on PostgreSQL through pgx.Pool, sql.DB
// (lib/pq) or sqlx.DB, and on SQLite through sql.DB (go-sqlite3). Queries are built
// with goqu for the matching dialect.
//
// Cross-entity writes are transactional: ApplyLeaseWrite persists a lease and
// re-derives the availability of its book item in one transaction, and RecordRestock
// inserts a restock action together with all copies it produced.
//
// Usage:
//
//	store, err := sqlengine.NewStoreFromPGXPool(pool, sqlengine.WithLogger(logger))
//	if err != nil {
//		// handle error
//	}
//
//	if err = store.CreateSchema(ctx); err != nil {
//		// handle error
//	}
//
//	result, err := store.ApplyLeaseWrite(ctx, lease)
package sqlengine
