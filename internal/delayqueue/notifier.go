package delayqueue

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// LogNotifier пишет уведомления в лог (когда других каналов нет)
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Deliver(_ context.Context, title, body string) error {
	n.logger.Info("🔔 Notification", zap.String("title", title), zap.String("body", body))
	return nil
}

// MultiNotifier рассылает уведомление во все каналы. Доставка успешна, если
// сработал хотя бы один канал: иначе повтор задачи продублирует сообщение
// в исправных каналах. Сбои отдельных каналов только логируются.
type MultiNotifier struct {
	channels []Notifier
	logger   *zap.Logger
}

func NewMultiNotifier(logger *zap.Logger, channels ...Notifier) *MultiNotifier {
	return &MultiNotifier{channels: channels, logger: logger}
}

func (m *MultiNotifier) Add(n Notifier) {
	m.channels = append(m.channels, n)
}

func (m *MultiNotifier) Len() int {
	return len(m.channels)
}

func (m *MultiNotifier) Deliver(ctx context.Context, title, body string) error {
	var errs error
	delivered := 0
	for i, n := range m.channels {
		if err := n.Deliver(ctx, title, body); err != nil {
			m.logger.Warn("Notification channel failed",
				zap.Int("channel", i),
				zap.String("title", title),
				zap.Error(err),
			)
			errs = multierr.Append(errs, err)
			continue
		}
		delivered++
	}

	if delivered == 0 && errs != nil {
		return fmt.Errorf("all notification channels failed: %w", errs)
	}
	return nil
}
