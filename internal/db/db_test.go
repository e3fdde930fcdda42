package db

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen(t *testing.T) {
	dbPath := newRequestsFile(t)

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		t.Errorf("Ping() failed: %v", err)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "missing.db")

	_, err := Open(dbPath)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("Open() error = %v, want ErrStoreUnavailable", err)
	}

	if _, statErr := os.Stat(dbPath); !os.IsNotExist(statErr) {
		t.Error("Open() must not create the database file")
	}
}

func TestOpen_Directory(t *testing.T) {
	_, err := Open(t.TempDir())
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("Open() error = %v, want ErrStoreUnavailable", err)
	}
}

func TestOpen_NotADatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.db")
	if err := os.WriteFile(path, bytes.Repeat([]byte("not a database "), 100), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	_, err := Open(path)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("Open() error = %v, want ErrStoreUnavailable", err)
	}
}

func TestClose(t *testing.T) {
	db := newTestDB(t, newRequestsFile(t))

	if err := db.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	_, err := db.QueryContext(context.Background(), "SELECT 1")
	if err == nil {
		t.Error("Expected error querying closed database")
	}
}

// newRequestsFile creates a database with a requests table holding rows.
func newRequestsFile(t *testing.T, rows ...[3]any) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "database.db")
	execSQL(t, path, `CREATE TABLE requests (id INTEGER PRIMARY KEY, chat_id INTEGER, bot TEXT)`)
	for _, r := range rows {
		execSQL(t, path, `INSERT INTO requests (id, chat_id, bot) VALUES (?, ?, ?)`, r[0], r[1], r[2])
	}
	return path
}

// execSQL runs one statement against the file at path, creating it if needed.
func execSQL(t *testing.T, path, query string, args ...any) {
	t.Helper()

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(context.Background(), query, args...); err != nil {
		t.Fatalf("exec %q failed: %v", query, err)
	}
}

func newTestDB(t *testing.T, path string) *DB {
	t.Helper()
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	return db
}
