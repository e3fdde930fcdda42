package telegram

import (
	"context"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/j-veylop/reportbot/internal/config"
	"github.com/j-veylop/reportbot/internal/logger"
	"github.com/j-veylop/reportbot/internal/metrics"
	"github.com/j-veylop/reportbot/internal/report"
)

// Commands understood by the bot.
const (
	CommandReport = "report"
	CommandStart  = "start"
	CommandHelp   = "help"
)

// FailureNotice is sent instead of a report when the report cannot be built.
const FailureNotice = "Report unavailable, please try again later."

const helpText = "Commands:\n/report - usage summary of all bots\n/help - this message"

// Command is an inbound bot command.
type Command struct {
	Name   string
	ChatID int64
}

// CommandFromUpdate extracts the command carried by u, if any.
func CommandFromUpdate(u tgbotapi.Update) (Command, bool) {
	if u.Message == nil || u.Message.Chat == nil || !u.Message.IsCommand() {
		return Command{}, false
	}
	return Command{Name: u.Message.Command(), ChatID: u.Message.Chat.ID}, true
}

// Runner builds the report text.
type Runner interface {
	Run(ctx context.Context, log *slog.Logger, tmpl report.Template) (*report.Result, error)
}

// Access provides the live report settings.
type Access interface {
	Current() config.ReportSettings
	Allowed(chatID int64) bool
}

// Handler answers bot commands.
type Handler struct {
	pipeline Runner
	settings Access
	sender   Sender
	log      *slog.Logger
}

// NewHandler returns a handler replying through sender.
func NewHandler(pipeline Runner, settings Access, sender Sender, log *slog.Logger) *Handler {
	return &Handler{
		pipeline: pipeline,
		settings: settings,
		sender:   sender,
		log:      log,
	}
}

// Handle runs cmd to completion. Errors are logged and, for reports,
// answered with FailureNotice; they are also returned for the caller.
func (h *Handler) Handle(ctx context.Context, cmd Command) error {
	log := logger.ForInvocation(h.log, cmd.Name, cmd.ChatID)

	switch cmd.Name {
	case CommandReport:
		return h.handleReport(ctx, log, cmd.ChatID)
	case CommandStart, CommandHelp:
		if err := h.sender.Send(ctx, Message{ChatID: cmd.ChatID, Text: helpText}); err != nil {
			log.Error("failed to send help", "error", err)
			return err
		}
		return nil
	default:
		log.Debug("ignoring unknown command")
		return nil
	}
}

func (h *Handler) handleReport(ctx context.Context, log *slog.Logger, chatID int64) error {
	if !h.settings.Allowed(chatID) {
		log.Warn("chat is not allowed to request reports")
		return nil
	}

	start := time.Now()
	current := h.settings.Current()

	var records int
	res, err := h.pipeline.Run(ctx, log, report.Template{
		Services: current.Services,
		Strict:   current.Strict,
	})
	if err == nil {
		records = res.Records
		err = h.sender.Send(ctx, Message{ChatID: chatID, Text: res.Text, Markdown: true})
	}

	kind := report.Kind(err)
	metrics.ObserveReport(kind, time.Since(start), records)

	if err != nil {
		log.Error("report failed", "kind", kind, "error", err)
		if kind != "transport_send" {
			if notifyErr := h.sender.Send(ctx, Message{ChatID: chatID, Text: FailureNotice}); notifyErr != nil {
				log.Error("failed to send failure notice", "error", notifyErr)
			}
		}
		return err
	}

	log.Info("report sent",
		"records", records,
		"users", res.Report.TotalUsers,
		"usages", res.Report.TotalUsages,
		"duration", time.Since(start),
	)
	return nil
}
