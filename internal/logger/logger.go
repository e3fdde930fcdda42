// Package logger builds the slog loggers used by the bot. There is no global
// logger: main constructs one and hands it down, and every command gets its
// own child via ForInvocation.
package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options configures New.
type Options struct {
	Level  slog.Level
	Format string
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	if strings.EqualFold(opts.Format, FormatJSON) {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps debug/info/warn/error to a level. Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ForInvocation returns a child of base tagged with a fresh invocation id,
// the command name and the chat it came from.
func ForInvocation(base *slog.Logger, command string, chatID int64) *slog.Logger {
	return base.With(
		"invocation", uuid.NewString(),
		"command", command,
		"chat_id", chatID,
	)
}
