package telegram

import (
	"context"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Poller is a source of updates.
type Poller interface {
	Updates(timeout time.Duration) tgbotapi.UpdatesChannel
	Stop()
}

// Bot feeds updates to a Handler, one at a time.
type Bot struct {
	poller  Poller
	handler *Handler
	log     *slog.Logger
	timeout time.Duration
}

// NewBot returns a bot polling with the given long-poll timeout.
func NewBot(poller Poller, handler *Handler, log *slog.Logger, timeout time.Duration) *Bot {
	return &Bot{
		poller:  poller,
		handler: handler,
		log:     log,
		timeout: timeout,
	}
}

// Run handles updates until ctx is cancelled or the update stream ends.
// Commands are handled sequentially.
func (b *Bot) Run(ctx context.Context) error {
	updates := b.poller.Updates(b.timeout)
	defer b.poller.Stop()

	b.log.Info("polling for updates", "timeout", b.timeout)

	for {
		select {
		case <-ctx.Done():
			b.log.Info("stopping bot")
			return nil

		case update, ok := <-updates:
			if !ok {
				return nil
			}

			cmd, ok := CommandFromUpdate(update)
			if !ok {
				continue
			}
			// Handle logs its own failures.
			_ = b.handler.Handle(ctx, cmd)
		}
	}
}
