package notify

import (
	"context"
	"fmt"
	"html"

	"github.com/Freeeeeet/clinic_calendar/internal/formatting"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// TelegramNotifier отправляет уведомления о записях в чат персонала
type TelegramNotifier struct {
	bot    *bot.Bot
	chatID int64
}

// NewTelegramNotifier создаёт бота по токену (проверяет токен через getMe)
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: b, chatID: chatID}, nil
}

func (n *TelegramNotifier) Notify(ctx context.Context, event Event) error {
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    n.chatID,
		Text:      FormatEvent(event),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

// FormatEvent текст уведомления в HTML разметке Telegram
func FormatEvent(event Event) string {
	b := event.Booking

	title := "✅ <b>Новая запись</b>"
	if event.Type == EventBookingDeleted {
		title = "🗑 <b>Запись удалена</b>"
	}

	return fmt.Sprintf("%s\n\n"+
		"👤 %s\n"+
		"🩺 %s\n"+
		"📅 %s, %s\n"+
		"🕐 %s",
		title,
		html.EscapeString(b.Surname),
		html.EscapeString(b.Worker),
		formatting.WeekdayName(b.Date.Weekday()),
		formatting.FormatDate(b.Date),
		b.Time,
	)
}
