package config

import (
	"context"
	"database/sql"
	"net/url"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
)

// SQLiteDSN returns the go-sqlite3 DSN for the database file at path.
// Foreign keys are enforced, transactions take the write lock when they begin,
// and a locked database is retried for up to five seconds.
func SQLiteDSN(path string) string {
	params := url.Values{}
	params.Set("_foreign_keys", "1")
	params.Set("_busy_timeout", "5000")
	params.Set("_txlock", "immediate")

	return "file:" + path + "?" + params.Encode()
}

// SQLiteSQLDB opens a *sql.DB for the SQLite file at path and checks the connection.
// SQLite allows one writer at a time, so the pool holds a single connection.
func SQLiteSQLDB(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", SQLiteDSN(path))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, pingErr
	}

	return db, nil
}
