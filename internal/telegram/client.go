// Package telegram connects the report pipeline to the Telegram Bot API.
package telegram

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/j-veylop/reportbot/internal/report"
)

// Message is one outbound message.
type Message struct {
	ChatID int64
	Text   string
	// Markdown sends Text with the MarkdownV2 parse mode.
	Markdown bool
}

// Sender delivers messages to chats.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// botAPI is the subset of *tgbotapi.BotAPI the client uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Client talks to the Bot API on behalf of one bot token.
type Client struct {
	api      botAPI
	userName string
}

// NewClient authenticates token against endpoint, a format string with two
// %s verbs (token, method). An empty endpoint uses the public Bot API.
func NewClient(token, endpoint string) (*Client, error) {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate bot: %w", err)
	}

	return &Client{api: api, userName: api.Self.UserName}, nil
}

// UserName returns the bot's @name as reported by getMe.
func (c *Client) UserName() string {
	return c.userName
}

// Send delivers msg. Failures wrap report.ErrTransportSend.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", report.ErrTransportSend, err)
	}

	out := tgbotapi.NewMessage(msg.ChatID, msg.Text)
	if msg.Markdown {
		out.ParseMode = tgbotapi.ModeMarkdownV2
	}

	if _, err := c.api.Send(out); err != nil {
		return fmt.Errorf("%w: %w", report.ErrTransportSend, err)
	}
	return nil
}

// RegisterCommands publishes the command list shown in Telegram clients.
func (c *Client) RegisterCommands() error {
	cmds := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: CommandReport, Description: "Usage summary of all bots"},
		tgbotapi.BotCommand{Command: CommandHelp, Description: "Show available commands"},
	)
	if _, err := c.api.Request(cmds); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}
	return nil
}

// Updates starts long polling with the given server-side timeout.
func (c *Client) Updates(timeout time.Duration) tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = int(timeout / time.Second)
	return c.api.GetUpdatesChan(u)
}

// Stop ends long polling. The updates channel is closed afterwards.
func (c *Client) Stop() {
	c.api.StopReceivingUpdates()
}
