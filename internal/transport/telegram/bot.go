package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/sandevgo/motivate/internal/core"
	"github.com/sandevgo/motivate/pkg/log"
)

const baseContextKey = "base_context"

const greeting = "Hi! Tell me what you are working on and I will help you keep going."

type Bot struct {
	bot      *tele.Bot
	chat     core.ChatService
	commands core.CmdRouter
	ownerID  int64
}

func NewBot(
	ctx context.Context,
	cfg core.TelegramConfig,
	chat core.ChatService,
	commands core.CmdRouter,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.GetTelegramToken(),
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			log.FromCtx(ctx).Error().Err(err).Msg("telegram handler failed")
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:      b,
		chat:     chat,
		commands: commands,
		ownerID:  cfg.GetTelegramOwnerID(),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: drop everyone but the owner when one is configured
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil || !bot.allowed(c.Sender().ID) {
				return nil
			}
			return next(c)
		}
	})

	b.Handle("/start", func(c tele.Context) error {
		return c.Send(greeting)
	})
	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

// Start blocks in the long poller until Shutdown.
func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) allowed(senderID int64) bool {
	return b.ownerID == 0 || senderID == b.ownerID
}

func sessionKey(chatID int64) string {
	return fmt.Sprintf("telegram-%d", chatID)
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)

	_ = c.Notify(tele.Typing)

	chunks, err := b.respond(ctx, c.Chat().ID, c.Text())
	if err != nil {
		logger.Error().Err(err).Int64("chat", c.Chat().ID).Msg("chat turn failed")
		return c.Send(errorText(err))
	}

	for i, chunk := range chunks {
		if err := c.Send(chunk, tele.ModeHTML); err != nil {
			logger.Error().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("failed to send telegram chunk")
			return err
		}
	}
	return nil
}

// respond runs a slash command or one chat turn and returns the answer as Telegram
// HTML chunks.
func (b *Bot) respond(ctx context.Context, chatID int64, text string) ([]string, error) {
	if err := core.ValidateMessage(text); err != nil {
		return nil, err
	}

	key := sessionKey(chatID)
	if b.commands != nil {
		if out, ok := b.commands.Execute(ctx, key, text); ok {
			return renderChunks(out), nil
		}
	}

	reply, err := b.chat.HandleTurn(ctx, key, text)
	if err != nil {
		return nil, err
	}
	return renderChunks(reply), nil
}

func errorText(err error) string {
	switch {
	case errors.Is(err, core.ErrEmptyMessage):
		return "Send me some text and I will reply."
	case errors.Is(err, core.ErrInferenceFailed):
		return "I could not reach the model just now. Please try again in a moment."
	default:
		return fmt.Sprintf("error: %v", err)
	}
}

// toTelegramHTML is swapped in tests.
var toTelegramHTML = markdownToTelegram

// renderChunks converts markdown to Telegram HTML. When sanitizing leaves nothing the
// raw text is sent escaped, since every chunk goes out in HTML parse mode.
func renderChunks(md string) []string {
	out := strings.TrimSpace(toTelegramHTML(md))
	if out == "" {
		out = html.EscapeString(strings.TrimSpace(md))
	}
	if out == "" {
		return nil
	}
	return splitHTML(out, maxTelegramMsgLen)
}
