// Package delayqueue хранит отложенные уведомления и доставляет наступившие
// (at-least-once: при сбое доставки задача возвращается в очередь,
// но не более model.MaxReminderAttempts раз).
package delayqueue

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"go.uber.org/zap"
)

// DefaultBatchSize - сколько задач забирается за один проход диспетчера
const DefaultBatchSize = 50

// TaskStore - персистентное хранилище задач
type TaskStore interface {
	Insert(ctx context.Context, task *model.ReminderTask) (bool, error)
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*model.ReminderTask, error)
	MarkDelivered(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
	Release(ctx context.Context, id string) error
	DeletePendingByReservation(ctx context.Context, reservationID string) (int64, error)
}

// Notifier - канал доставки уведомлений пользователю
type Notifier interface {
	Deliver(ctx context.Context, title, body string) error
}

type Queue struct {
	store     TaskStore
	notifier  Notifier
	clock     model.Clock
	batchSize int
	logger    *zap.Logger
}

func NewQueue(store TaskStore, notifier Notifier, clock model.Clock, batchSize int, logger *zap.Logger) *Queue {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Queue{
		store:     store,
		notifier:  notifier,
		clock:     clock,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Enqueue сохраняет задачу. Повторная постановка задачи с тем же ID - no-op.
func (q *Queue) Enqueue(ctx context.Context, task *model.ReminderTask) (string, error) {
	inserted, err := q.store.Insert(ctx, task)
	if err != nil {
		return "", fmt.Errorf("enqueue reminder: %w", err)
	}

	if inserted {
		q.logger.Debug("Reminder enqueued",
			zap.String("task_id", task.ID),
			zap.String("kind", string(task.Kind)),
			zap.Time("fire_at", task.FireAt),
		)
	}

	return task.ID, nil
}

// Revoke удаляет ещё не доставленные задачи бронирования
func (q *Queue) Revoke(ctx context.Context, reservationID string) (int, error) {
	n, err := q.store.DeletePendingByReservation(ctx, reservationID)
	if err != nil {
		return 0, fmt.Errorf("revoke reminders: %w", err)
	}
	return int(n), nil
}

// DispatchDue доставляет наступившие задачи и возвращает число успешно доставленных
func (q *Queue) DispatchDue(ctx context.Context) (int, error) {
	tasks, err := q.store.ClaimDue(ctx, q.clock.Now(), q.batchSize)
	if err != nil {
		return 0, fmt.Errorf("claim due reminders: %w", err)
	}

	delivered := 0
	for _, task := range tasks {
		if err := q.notifier.Deliver(ctx, TitleFor(task.Kind), BodyFor(task)); err != nil {
			q.logger.Error("Failed to deliver reminder",
				zap.String("task_id", task.ID),
				zap.Int("attempts", task.Attempts),
				zap.Error(err),
			)
			q.giveUpOrRelease(ctx, task)
			continue
		}

		if err := q.store.MarkDelivered(ctx, task.ID); err != nil {
			// задача уйдёт повторно после таймаута - допустимо для at-least-once
			q.logger.Error("Failed to mark reminder delivered", zap.String("task_id", task.ID), zap.Error(err))
			continue
		}
		delivered++
	}

	return delivered, nil
}

func (q *Queue) giveUpOrRelease(ctx context.Context, task *model.ReminderTask) {
	if task.Attempts >= model.MaxReminderAttempts {
		q.logger.Error("Giving up on reminder",
			zap.String("task_id", task.ID),
			zap.String("kind", string(task.Kind)),
			zap.Int("attempts", task.Attempts),
		)
		if err := q.store.MarkFailed(ctx, task.ID); err != nil {
			q.logger.Error("Failed to mark reminder failed", zap.String("task_id", task.ID), zap.Error(err))
		}
		return
	}

	if err := q.store.Release(ctx, task.ID); err != nil {
		q.logger.Error("Failed to release reminder", zap.String("task_id", task.ID), zap.Error(err))
	}
}
