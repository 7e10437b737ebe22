// Package config provides configuration loading and database connection factories for the library service.
//
// Load reads the LIBRARY_* environment variables, optionally from a .env file.
// The factory functions create connections for the supported drivers:
// pgx.Pool, sql.DB and sqlx.DB for PostgreSQL, sql.DB with go-sqlite3 for SQLite.
// OpenStore combines both and returns a ready sqlengine.Store.
//
// This package is part of the shell (infrastructure) layer.
package config
