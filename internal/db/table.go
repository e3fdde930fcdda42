package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Row maps column name to the cell value returned by the driver.
type Row map[string]any

// Table is the full content of one table, in the order the store returned it.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumns reports whether every given column exists. When one is missing
// it is returned as the first value.
func (t *Table) HasColumns(names ...string) (string, bool) {
	missing, found := lo.Find(names, func(name string) bool {
		return !lo.Contains(t.Columns, name)
	})
	return missing, !found
}

// ReadTable returns every row of the named table.
func (db *DB) ReadTable(ctx context.Context, name string) (*Table, error) {
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(name))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query table %q in %s: %w", ErrQuery, name, db.path, err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read columns of %q: %w", ErrQuery, name, err)
	}

	table := &Table{Name: name, Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: failed to scan row of %q: %w", ErrQuery, name, err)
		}

		row := make(Row, len(columns))
		for i, col := range columns {
			row[col] = normalizeCell(values[i])
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate %q: %w", ErrQuery, name, err)
	}

	return table, nil
}

// quoteIdent quotes name as an SQL identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// normalizeCell makes driver values comparable. BLOBs come back as []byte.
func normalizeCell(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
