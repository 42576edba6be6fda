package delayqueue

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher - часть канала AMQP, нужная для публикации (реализуется *amqp091.Channel)
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

type notificationPayload struct {
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	SentAt time.Time `json:"sent_at"`
}

// AMQPNotifier публикует уведомления в очередь RabbitMQ для внешних потребителей
type AMQPNotifier struct {
	publisher Publisher
	queue     string
	logger    *zap.Logger
}

// NewAMQPNotifier открывает канал и объявляет durable-очередь
func NewAMQPNotifier(conn *amqp091.Connection, queue string, logger *zap.Logger) (*AMQPNotifier, *amqp091.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, fmt.Errorf("open amqp channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}

	return NewAMQPNotifierWithPublisher(ch, queue, logger), ch, nil
}

func NewAMQPNotifierWithPublisher(publisher Publisher, queue string, logger *zap.Logger) *AMQPNotifier {
	return &AMQPNotifier{
		publisher: publisher,
		queue:     queue,
		logger:    logger,
	}
}

func (n *AMQPNotifier) Deliver(ctx context.Context, title, body string) error {
	payload, err := json.Marshal(notificationPayload{Title: title, Body: body, SentAt: time.Now()})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	err = n.publisher.PublishWithContext(ctx, "", n.queue, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         payload,
	})
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}

	n.logger.Debug("Notification published", zap.String("queue", n.queue))
	return nil
}
