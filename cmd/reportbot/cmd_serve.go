package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/j-veylop/reportbot/internal/config"
	"github.com/j-veylop/reportbot/internal/logger"
	"github.com/j-veylop/reportbot/internal/metrics"
	"github.com/j-veylop/reportbot/internal/report"
	"github.com/j-veylop/reportbot/internal/settings"
	"github.com/j-veylop/reportbot/internal/telegram"
	"github.com/j-veylop/reportbot/internal/version"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx)
		},
	}
}

// runServe wires configuration, settings, metrics and the bot together.
func runServe(ctx context.Context) error {
	// 1. Load configuration from .env files, environment and config file
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.RequireToken(); err != nil {
		return err
	}

	log := newLogger(cfg)
	log.Info("starting",
		"version", version.GetVersion(),
		"commit", version.GetCommit(),
		"built", version.GetDate(),
		"database", cfg.DatabasePath,
		"table", cfg.RequestsTable,
	)

	// 2. Hot-reloaded report settings
	svc, err := settings.New(cfg.ConfigPath, cfg.Report, log)
	if err != nil {
		return fmt.Errorf("failed to initialize settings: %w", err)
	}
	defer func() {
		if closeErr := svc.Close(); closeErr != nil {
			log.Warn("error closing settings", "error", closeErr)
		}
	}()

	// 3. Metrics
	metrics.Register()
	go watchSettings(ctx, svc.Events())
	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, log); err != nil {
				log.Error("metrics server failed", "error", err)
			}
		}()
	}

	// 4. Telegram transport
	client, err := telegram.NewClient(cfg.TelegramToken, "")
	if err != nil {
		return fmt.Errorf("failed to connect to telegram: %w", err)
	}
	log.Info("authorized", "bot", client.UserName())

	if err := client.RegisterCommands(); err != nil {
		log.Warn("failed to register bot commands", "error", err)
	}

	// 5. Run until a signal arrives
	pipeline := report.NewPipeline(cfg.DatabasePath, cfg.RequestsTable)
	handler := telegram.NewHandler(pipeline, svc, client, log)
	bot := telegram.NewBot(client, handler, log, cfg.PollTimeout)

	return bot.Run(ctx)
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logger.New(os.Stderr, logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: cfg.LogFormat,
	})
}

// watchSettings counts settings reloads until ctx is done. The settings
// service logs the details itself.
func watchSettings(ctx context.Context, events <-chan settings.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			metrics.ObserveSettingsReload(ev.Error)
		}
	}
}
