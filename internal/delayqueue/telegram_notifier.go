package delayqueue

import (
	"context"
	"fmt"
	"html"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// MessageSender - часть API бота, нужная для отправки сообщений (реализуется *bot.Bot)
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TelegramNotifier отправляет уведомления в чат студента с ограничением частоты
type TelegramNotifier struct {
	sender  MessageSender
	chatID  int64
	limiter *rate.Limiter
	logger  *zap.Logger
}

func NewTelegramNotifier(sender MessageSender, chatID int64, perSecond float64, logger *zap.Logger) *TelegramNotifier {
	if perSecond <= 0 {
		perSecond = 1
	}
	return &TelegramNotifier{
		sender:  sender,
		chatID:  chatID,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
		logger:  logger,
	}
}

func (n *TelegramNotifier) Deliver(ctx context.Context, title, body string) error {
	// получатель не настроен
	if n.chatID == 0 {
		return nil
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait rate limiter: %w", err)
	}

	_, err := n.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    n.chatID,
		Text:      fmt.Sprintf("🔔 <b>%s</b>\n\n%s", html.EscapeString(title), html.EscapeString(body)),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("send telegram notification: %w", err)
	}

	n.logger.Debug("Notification sent", zap.Int64("chat_id", n.chatID), zap.String("title", title))
	return nil
}
