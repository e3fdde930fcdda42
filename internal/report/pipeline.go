package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/j-veylop/reportbot/internal/db"
	"github.com/j-veylop/reportbot/internal/models"
)

// Store is the read side of the usage database.
type Store interface {
	ReadTable(ctx context.Context, name string) (*db.Table, error)
	Close() error
}

// OpenFunc opens the store at path.
type OpenFunc func(path string) (Store, error)

// OpenSQLite opens the SQLite file at path.
func OpenSQLite(path string) (Store, error) {
	store, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Template controls how a Report is rendered.
type Template struct {
	// Services is the fixed label order of the report.
	Services []string
	// Strict reports MissingServiceData instead of printing zero for
	// services without records.
	Strict bool
}

// Result is the outcome of one pipeline run.
type Result struct {
	Report  models.Report
	Text    string
	Records int
}

// Pipeline reads the requests table, aggregates it and renders the message.
// It holds no state between runs: every run reopens the store.
type Pipeline struct {
	Open         OpenFunc
	DatabasePath string
	Table        string
}

// NewPipeline returns a pipeline over the SQLite file at path.
func NewPipeline(path, table string) *Pipeline {
	return &Pipeline{
		Open:         OpenSQLite,
		DatabasePath: path,
		Table:        table,
	}
}

// Build reads the table and aggregates it.
func (p *Pipeline) Build(ctx context.Context, log *slog.Logger) (models.Report, int, error) {
	store, err := p.Open(p.DatabasePath)
	if err != nil {
		return models.Report{}, 0, err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("failed to close store", "path", p.DatabasePath, "error", err)
		}
	}()

	table, err := store.ReadTable(ctx, p.Table)
	if err != nil {
		return models.Report{}, 0, err
	}
	log.Debug("read table", "table", p.Table, "rows", table.Len())

	records, err := table.Records()
	if err != nil {
		return models.Report{}, 0, err
	}

	return Aggregate(records), len(records), nil
}

// Run builds the report and renders it with tmpl.
func (p *Pipeline) Run(ctx context.Context, log *slog.Logger, tmpl Template) (*Result, error) {
	rep, n, err := p.Build(ctx, log)
	if err != nil {
		return nil, err
	}

	rendered := rep
	if !tmpl.Strict {
		rendered = FillReport(rep, tmpl.Services)
	}

	text, err := Render(rendered, tmpl.Services)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	log.Debug("report built",
		"records", n,
		"users", rep.TotalUsers,
		"usages", rep.TotalUsages,
	)

	return &Result{Report: rendered, Text: text, Records: n}, nil
}
