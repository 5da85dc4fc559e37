package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"content_plan_bot/internal/model"
)

func (b *Bot) handleStart(chatID int64) {
	b.reply(chatID, `Привіт! Я нагадую про дедлайни контент-плану.

Щодня я надсилаю в робочий чат зведення: прострочені пости, пости на сьогодні, завтра і через 3 дні.

Використайте /help, щоб побачити всі команди.`)
}

func (b *Bot) handleHelp(chatID int64) {
	b.reply(chatID, `Команди:
/remind — надіслати зведення зараз
/status [n] — останні n запусків (типово 5, максимум 20)
/help — ця довідка`)
}

func (b *Bot) handleRemind(ctx context.Context, chatID int64) {
	if b.reminder == nil {
		b.reply(chatID, "Нагадування ще не налаштовано.")
		return
	}
	run, err := b.reminder.Run(ctx, model.TriggerManual)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Помилка: %v", err))
		return
	}
	b.reply(chatID, FormatRunResult(run))
}

func (b *Bot) handleStatus(ctx context.Context, chatID int64, args string) {
	limit, err := ParseLimitArg(args, defaultStatusLimit, maxStatusLimit)
	if err != nil {
		b.reply(chatID, err.Error())
		return
	}

	runs, err := b.store.ListRuns(ctx, limit)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Помилка: %v", err))
		return
	}

	msg := tgbotapi.NewMessage(chatID, FormatRuns(runs, b.cfg.Location()))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Нагадати зараз", cbRemindNow),
		),
	)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send status", "chat_id", chatID, "error", err)
	}
}
