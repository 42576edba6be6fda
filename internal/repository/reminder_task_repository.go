package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StaleClaimTimeout - через сколько задача в статусе delivering снова считается свободной
const StaleClaimTimeout = 5 * time.Minute

const reminderColumns = `id::text, reservation_id::text, kind, fire_at, teacher_name, subject, slot_time, message, status, attempts, created_at`

type ReminderTaskRepository struct {
	*base.Repository
}

func NewReminderTaskRepository(pool *pgxpool.Pool) *ReminderTaskRepository {
	return &ReminderTaskRepository{Repository: base.NewRepository(pool)}
}

// Insert сохраняет задачу. Повторная вставка того же ID ничего не делает и возвращает false.
func (r *ReminderTaskRepository) Insert(ctx context.Context, task *model.ReminderTask) (bool, error) {
	query := `
		INSERT INTO reminder_tasks (id, reservation_id, kind, fire_at, teacher_name, subject, slot_time, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'pending')
		ON CONFLICT (id) DO NOTHING
	`

	affected, err := r.ExecAffected(
		ctx, query,
		task.ID,
		task.ReservationID,
		task.Kind,
		task.FireAt,
		task.TeacherName,
		task.Subject,
		task.Time,
		task.Message,
	)
	if err != nil {
		return false, fmt.Errorf("insert reminder task: %w", err)
	}

	return affected > 0, nil
}

// ClaimDue забирает до limit наступивших задач и переводит их в delivering.
// Зависшие в delivering дольше StaleClaimTimeout задачи забираются повторно.
// Задачи, исчерпавшие model.MaxReminderAttempts, больше не забираются.
func (r *ReminderTaskRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*model.ReminderTask, error) {
	query := `
		UPDATE reminder_tasks
		SET status = 'delivering', attempts = attempts + 1, claimed_at = $1
		WHERE id IN (
			SELECT id FROM reminder_tasks
			WHERE ((status = 'pending' AND fire_at <= $1)
			   OR (status = 'delivering' AND claimed_at < $2))
			  AND attempts < $4
			ORDER BY fire_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING ` + reminderColumns

	rows, err := r.Query(ctx, query, now, now.Add(-StaleClaimTimeout), limit, model.MaxReminderAttempts)
	if err != nil {
		return nil, fmt.Errorf("claim due reminder tasks: %w", err)
	}
	tasks, err := base.Collect(rows, scanReminderTask)
	if err != nil {
		return nil, fmt.Errorf("claim due reminder tasks: %w", err)
	}
	return tasks, nil
}

// MarkDelivered отмечает задачу доставленной
func (r *ReminderTaskRepository) MarkDelivered(ctx context.Context, id string) error {
	_, err := r.ExecAffected(ctx, `UPDATE reminder_tasks SET status = 'delivered', delivered_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark reminder delivered: %w", err)
	}
	return nil
}

// MarkFailed снимает задачу с доставки после исчерпания попыток
func (r *ReminderTaskRepository) MarkFailed(ctx context.Context, id string) error {
	_, err := r.ExecAffected(ctx, `UPDATE reminder_tasks SET status = 'failed', claimed_at = NULL WHERE id = $1 AND status = 'delivering'`, id)
	if err != nil {
		return fmt.Errorf("mark reminder failed: %w", err)
	}
	return nil
}

// Release возвращает задачу в очередь после неудачной доставки
func (r *ReminderTaskRepository) Release(ctx context.Context, id string) error {
	_, err := r.ExecAffected(ctx, `UPDATE reminder_tasks SET status = 'pending', claimed_at = NULL WHERE id = $1 AND status = 'delivering'`, id)
	if err != nil {
		return fmt.Errorf("release reminder task: %w", err)
	}
	return nil
}

// DeletePendingByReservation удаляет ещё не доставленные задачи бронирования
func (r *ReminderTaskRepository) DeletePendingByReservation(ctx context.Context, reservationID string) (int64, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM reminder_tasks WHERE reservation_id = $1 AND status = 'pending'`, reservationID)
	if err != nil {
		return 0, fmt.Errorf("delete pending reminder tasks: %w", err)
	}
	return affected, nil
}

// GetByID получает задачу по ID
func (r *ReminderTaskRepository) GetByID(ctx context.Context, id string) (*model.ReminderTask, error) {
	task, err := scanReminderTask(r.QueryRow(ctx, `SELECT `+reminderColumns+` FROM reminder_tasks WHERE id = $1`, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reminder task by id: %w", err)
	}
	return task, nil
}

func scanReminderTask(row pgx.Row) (*model.ReminderTask, error) {
	var task model.ReminderTask
	err := row.Scan(
		&task.ID,
		&task.ReservationID,
		&task.Kind,
		&task.FireAt,
		&task.TeacherName,
		&task.Subject,
		&task.Time,
		&task.Message,
		&task.Status,
		&task.Attempts,
		&task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
