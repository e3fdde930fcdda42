package telegram

import (
	"context"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/j-veylop/reportbot/internal/logger"
)

type fakePoller struct {
	ch      chan tgbotapi.Update
	mu      sync.Mutex
	stopped bool
	timeout time.Duration
}

func (f *fakePoller) Updates(timeout time.Duration) tgbotapi.UpdatesChannel {
	f.timeout = timeout
	return f.ch
}

func (f *fakePoller) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func TestBot_Run_HandlesCommandsUntilClosed(t *testing.T) {
	poller := &fakePoller{ch: make(chan tgbotapi.Update, 3)}
	runner := &fakeRunner{result: okResult()}
	sender := &fakeSender{}
	h := NewHandler(runner, &fakeAccess{}, sender, logger.Discard())
	bot := NewBot(poller, h, logger.Discard(), 30*time.Second)

	poller.ch <- commandUpdate("/report", 1)
	poller.ch <- tgbotapi.Update{Message: &tgbotapi.Message{Text: "hi", Chat: &tgbotapi.Chat{ID: 1}}}
	poller.ch <- commandUpdate("/report", 2)
	close(poller.ch)

	if err := bot.Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if len(runner.calls) != 2 {
		t.Errorf("pipeline ran %d times, want 2", len(runner.calls))
	}
	sent := sender.messages()
	if len(sent) != 2 || sent[0].ChatID != 1 || sent[1].ChatID != 2 {
		t.Errorf("sent = %+v", sent)
	}
	if !poller.stopped {
		t.Error("poller should be stopped when Run returns")
	}
	if poller.timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", poller.timeout)
	}
}

func TestBot_Run_StopsOnCancel(t *testing.T) {
	poller := &fakePoller{ch: make(chan tgbotapi.Update)}
	h := NewHandler(&fakeRunner{}, &fakeAccess{}, &fakeSender{}, logger.Discard())
	bot := NewBot(poller, h, logger.Discard(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- bot.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
