package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"content_plan_bot/internal/config"
	"content_plan_bot/internal/model"
	"content_plan_bot/internal/storage"
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	MakeRequest(endpoint string, params tgbotapi.Params) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Reminder runs one content-plan reminder.
type Reminder interface {
	Run(ctx context.Context, trigger model.Trigger) (model.Run, error)
}

// Bot delivers digests to the team chat and answers operator commands.
type Bot struct {
	api      telegramAPI
	store    storage.Storage
	cfg      *config.Config
	reminder Reminder
	log      *slog.Logger
}

// New creates a Bot with the given Telegram token, storage, and config.
func New(token string, store storage.Storage, cfg *config.Config, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	return &Bot{
		api:   api,
		store: store,
		cfg:   cfg,
		log:   log,
	}, nil
}

// SetReminder wires the service behind /remind and the "remind now" button.
func (b *Bot) SetReminder(r Reminder) {
	b.reminder = r
}

// Run starts the bot's long-polling loop, blocking until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.CallbackQuery != nil {
				b.handleCallback(ctx, update.CallbackQuery)
				continue
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			if update.Message.From == nil || !b.cfg.IsUserAllowed(update.Message.From.ID) {
				b.reply(update.Message.Chat.ID, "Доступ заборонено.")
				continue
			}
			b.handleCommand(ctx, update.Message)
		}
	}
}

// SendChunk sends one digest message to the team chat as HTML. Silent
// messages are delivered without a notification sound.
func (b *Bot) SendChunk(ctx context.Context, text string, silent bool) error {
	return b.sendToTeam(ctx, text, tgbotapi.ModeHTML, silent)
}

// SendPlain sends an unformatted message to the team chat.
func (b *Bot) SendPlain(ctx context.Context, text string) error {
	return b.sendToTeam(ctx, text, "", false)
}

func (b *Bot) sendToTeam(ctx context.Context, text, parseMode string, silent bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// The library's MessageConfig has no forum-topic field, so topic
	// messages go through the raw endpoint.
	if b.cfg.MessageThreadID != 0 {
		params := tgbotapi.Params{"text": text}
		params.AddNonZero64("chat_id", b.cfg.ChatID)
		params.AddNonZero("message_thread_id", b.cfg.MessageThreadID)
		params.AddNonEmpty("parse_mode", parseMode)
		params.AddBool("disable_notification", silent)
		params.AddBool("disable_web_page_preview", true)
		if _, err := b.api.MakeRequest("sendMessage", params); err != nil {
			return fmt.Errorf("send message to topic %d: %w", b.cfg.MessageThreadID, err)
		}
		return nil
	}

	msg := tgbotapi.NewMessage(b.cfg.ChatID, text)
	msg.ParseMode = parseMode
	msg.DisableNotification = silent
	msg.DisableWebPagePreview = true
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send reply", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	cmd := msg.Command()
	args := strings.TrimSpace(msg.CommandArguments())
	chatID := msg.Chat.ID

	b.log.Debug("command", "cmd", cmd, "args", args, "chat_id", chatID)

	switch cmd {
	case "start":
		b.handleStart(chatID)
	case "help":
		b.handleHelp(chatID)
	case cmdRemind:
		b.handleRemind(ctx, chatID)
	case cmdStatus:
		b.handleStatus(ctx, chatID, args)
	default:
		b.reply(chatID, "Невідома команда. Використайте /help.")
	}
}
