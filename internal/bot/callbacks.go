package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	cmdRemind = "remind"
	cmdStatus = "status"

	cbRemindNow = "remind:now"
)

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	callback := tgbotapi.NewCallback(cb.ID, "")
	if _, err := b.api.Request(callback); err != nil {
		b.log.Error("send callback ack", "error", err)
	}

	if cb.From == nil || !b.cfg.IsUserAllowed(cb.From.ID) {
		b.reply(chatID, "Доступ заборонено.")
		return
	}

	b.log.Info("callback",
		"data", cb.Data,
		"chat_id", chatID,
		"user_id", cb.From.ID,
		"username", cb.From.UserName,
	)

	if cb.Data == cbRemindNow {
		b.handleRemind(ctx, chatID)
	}
}
