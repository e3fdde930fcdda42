// Package db reads usage records from the SQLite store populated by the bots.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	// Import modernc.org/sqlite as a blank import to register the driver
	_ "modernc.org/sqlite"
)

// Errors returned by the reader. Callers match them with errors.Is.
var (
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrQuery            = errors.New("query error")
)

// DB wraps the SQL database connection with read-only helpers.
type DB struct {
	*sql.DB
	path string
}

// Open connects to an existing database file. It never creates the file:
// a missing path is reported as ErrStoreUnavailable.
func Open(path string) (*DB, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrStoreUnavailable, path)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", ErrStoreUnavailable, err)
	}

	db := &DB{
		DB:   sqlDB,
		path: path,
	}

	// Ping is lazy about the file header, so touch the schema to make sure
	// this is really a database.
	var tables int
	err = db.QueryRowContext(context.Background(), "SELECT count(*) FROM sqlite_master").Scan(&tables)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: failed to connect to database: %w", ErrStoreUnavailable, err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.DB.Close()
}
