// Package adapters provide database adapter implementations for the SQL lending store.
//
// This package implements the adapter pattern to support multiple database libraries:
// pgxpool.Pool, sql.DB (lib/pq for Postgres, go-sqlite3 for SQLite) and sqlx.DB.
// All adapters provide equivalent functionality through a common DBAdapter interface,
// including transactions, and classify driver-specific errors into a small set of kinds
// the store maps onto its sentinel errors.
package adapters
