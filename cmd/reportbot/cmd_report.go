package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/j-veylop/reportbot/internal/config"
	"github.com/j-veylop/reportbot/internal/report"
	"github.com/j-veylop/reportbot/internal/ui"
)

// errReported marks failures already shown to the user.
var errReported = errors.New("report failed")

type reportOptions struct {
	databasePath string
	table        string
	raw          bool
	strict       bool
	width        int
}

func newReportCommand() *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the report once and print it",
		Long: `Build the report from the local database and print it.

With --raw the exact MarkdownV2 text the bot would send is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			if cmd.Flags().Changed("db") {
				cfg.DatabasePath = opts.databasePath
			}
			if cmd.Flags().Changed("table") {
				cfg.RequestsTable = opts.table
			}
			if cmd.Flags().Changed("strict") {
				cfg.Report.Strict = opts.strict
			}
			if opts.width <= 0 {
				opts.width = terminalWidth()
			}

			return runReport(cmd, cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.databasePath, "db", "", "SQLite database path (overrides DATABASE_PATH)")
	cmd.Flags().StringVar(&opts.table, "table", "", "requests table (overrides REQUESTS_TABLE)")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "print the Telegram message text")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when a service has no records")
	cmd.Flags().IntVar(&opts.width, "width", 0, "output width (default: $COLUMNS or 60)")

	return cmd
}

func runReport(cmd *cobra.Command, cfg *config.Config, opts reportOptions) error {
	log := newLogger(cfg)
	tmpl := report.Template{Services: cfg.Report.Services, Strict: cfg.Report.Strict}

	res, err := report.NewPipeline(cfg.DatabasePath, cfg.RequestsTable).Run(cmd.Context(), log, tmpl)
	if err != nil {
		if opts.raw {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), ui.RenderError(err))
		return fmt.Errorf("%w: %w", errReported, err)
	}

	out := cmd.OutOrStdout()
	if opts.raw {
		fmt.Fprintln(out, res.Text)
		return nil
	}
	fmt.Fprintln(out, ui.Render(res.Report, tmpl.Services, opts.width))
	return nil
}

func terminalWidth() int {
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return ui.DefaultWidth
}
