// Package main is the entry point for reportbot, a Telegram bot that answers
// /report with a usage summary of the other bots sharing its database.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/j-veylop/reportbot/internal/version"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "reportbot",
		Short: "Telegram bot reporting users and usages per bot",
		Long: `reportbot answers /report with the number of distinct users and requests
per bot, read from the shared SQLite requests table.

Configuration is read from .env files (current directory,
~/.config/reportbot/.env), environment variables and the optional TOML
file at CONFIG_PATH. Environment variables win over the file.

Environment Variables:
  TELEGRAM_TOKEN          Bot API token (required by serve)
  TELEGRAM_POLL_TIMEOUT   Long poll timeout (default: 60s)
  DATABASE_PATH           SQLite database path (default: database.db)
  REQUESTS_TABLE          Table holding one row per request (default: requests)
  REPORT_SERVICES         Comma separated service labels in report order
  REPORT_STRICT           Fail instead of printing zero for idle services
  ALLOWED_CHATS           Comma separated chat ids allowed to request reports
  LOG_LEVEL               debug, info, warn or error (default: info)
  LOG_FORMAT              text or json (default: text)
  METRICS_ADDR            Listen address for /metrics (default: disabled)
  CONFIG_PATH             TOML config file`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCommand(), newReportCommand(), newVersionCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
		},
	}
}
