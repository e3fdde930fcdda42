package db

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestReadTable(t *testing.T) {
	path := newRequestsFile(t,
		[3]any{1, 10, "doggobot"},
		[3]any{2, 10, "sentweetbot"},
		[3]any{3, 11, "doggobot"},
	)
	db := newTestDB(t, path)
	defer db.Close()

	table, err := db.ReadTable(context.Background(), "requests")
	if err != nil {
		t.Fatalf("ReadTable() failed: %v", err)
	}

	wantColumns := []string{"id", "chat_id", "bot"}
	if !reflect.DeepEqual(table.Columns, wantColumns) {
		t.Errorf("Columns = %v, want %v", table.Columns, wantColumns)
	}
	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}

	first := table.Rows[0]
	if first["chat_id"] != int64(10) {
		t.Errorf("chat_id = %#v, want int64(10)", first["chat_id"])
	}
	if first["bot"] != "doggobot" {
		t.Errorf("bot = %#v, want doggobot", first["bot"])
	}
}

func TestReadTable_Empty(t *testing.T) {
	db := newTestDB(t, newRequestsFile(t))
	defer db.Close()

	table, err := db.ReadTable(context.Background(), "requests")
	if err != nil {
		t.Fatalf("ReadTable() failed: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("Len() = %d, want 0", table.Len())
	}
	if len(table.Columns) != 3 {
		t.Errorf("Columns = %v, want three columns", table.Columns)
	}
}

func TestReadTable_UnknownTable(t *testing.T) {
	path := newRequestsFile(t)
	db := newTestDB(t, path)
	defer db.Close()

	_, err := db.ReadTable(context.Background(), "nope")
	if !errors.Is(err, ErrQuery) {
		t.Fatalf("ReadTable() error = %v, want ErrQuery", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q should name the database file", err)
	}
}

func TestReadTable_QuotedName(t *testing.T) {
	path := newRequestsFile(t)
	execSQL(t, path, `CREATE TABLE "odd ""name""" (x TEXT)`)
	execSQL(t, path, `INSERT INTO "odd ""name""" (x) VALUES ('a')`)

	db := newTestDB(t, path)
	defer db.Close()

	table, err := db.ReadTable(context.Background(), `odd "name"`)
	if err != nil {
		t.Fatalf("ReadTable() failed: %v", err)
	}
	if table.Len() != 1 || table.Rows[0]["x"] != "a" {
		t.Errorf("unexpected rows: %#v", table.Rows)
	}
}

func TestReadTable_BlobNormalized(t *testing.T) {
	path := newRequestsFile(t)
	execSQL(t, path, `INSERT INTO requests (id, chat_id, bot) VALUES (1, 5, CAST('doggobot' AS BLOB))`)

	db := newTestDB(t, path)
	defer db.Close()

	table, err := db.ReadTable(context.Background(), "requests")
	if err != nil {
		t.Fatalf("ReadTable() failed: %v", err)
	}
	if got := table.Rows[0]["bot"]; got != "doggobot" {
		t.Errorf("bot = %#v, want string doggobot", got)
	}
}

func TestHasColumns(t *testing.T) {
	table := &Table{Columns: []string{"id", "chat_id"}}

	if missing, ok := table.HasColumns("id", "chat_id"); !ok {
		t.Errorf("HasColumns() reported %q missing", missing)
	}
	if missing, ok := table.HasColumns("id", "bot"); ok || missing != "bot" {
		t.Errorf("HasColumns() = (%q, %v), want (\"bot\", false)", missing, ok)
	}
}
