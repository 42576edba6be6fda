package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	probeDelay   = 10 * time.Second
	probeTeacher = "Мария Гомес"
	probeSubject = "Математика"
)

// пространство имён для детерминированных ID задач
var reminderNamespace = uuid.MustParse("6f1c3b0e-2d4a-5e8f-9b7c-1a2b3c4d5e6f")

type reminderOffset struct {
	kind   model.ReminderKind
	before time.Duration
}

var reminderOffsets = []reminderOffset{
	{kind: model.ReminderKindDayBefore, before: 24 * time.Hour},
	{kind: model.ReminderKindHourBefore, before: time.Hour},
}

// ReminderService превращает бронирования в отложенные уведомления
type ReminderService struct {
	queue  TaskQueue
	clock  model.Clock
	loc    *time.Location
	logger *zap.Logger
}

// NewReminderService создаёт планировщик напоминаний. loc == nil означает локальную зону.
func NewReminderService(queue TaskQueue, clock model.Clock, loc *time.Location, logger *zap.Logger) *ReminderService {
	if loc == nil {
		loc = time.Local
	}
	return &ReminderService{
		queue:  queue,
		clock:  clock,
		loc:    loc,
		logger: logger,
	}
}

// TaskID возвращает детерминированный ID задачи для бронирования и типа
func TaskID(reservationID string, kind model.ReminderKind) string {
	return uuid.NewSHA1(reminderNamespace, []byte(reservationID+":"+string(kind))).String()
}

// Schedule ставит напоминания за сутки и за час до занятия.
// Уже прошедшие моменты пропускаются. Повторный вызов для той же записи ничего не добавляет.
func (s *ReminderService) Schedule(ctx context.Context, res *model.Reservation) (int, error) {
	anchor := res.StartsAt(s.loc)
	now := s.clock.Now()
	clock := model.FormatClock(res.Time)

	scheduled := 0
	for _, off := range reminderOffsets {
		fireAt := anchor.Add(-off.before)
		if !fireAt.After(now) {
			continue
		}

		resID := res.ID
		task := &model.ReminderTask{
			ID:            TaskID(res.ID, off.kind),
			ReservationID: &resID,
			Kind:          off.kind,
			FireAt:        fireAt,
			TeacherName:   res.TeacherName,
			Subject:       res.Subject,
			Time:          clock,
			Message:       reminderMessage(off.kind, res.Subject, clock),
		}

		if _, err := s.queue.Enqueue(ctx, task); err != nil {
			return scheduled, fmt.Errorf("schedule %s reminder: %w", off.kind, err)
		}
		scheduled++
	}

	s.logger.Info("Reminders scheduled",
		zap.String("reservation_id", res.ID),
		zap.Int("count", scheduled),
	)

	return scheduled, nil
}

// ScheduleConfirmation ставит немедленное уведомление о подтверждении записи
func (s *ReminderService) ScheduleConfirmation(ctx context.Context, res *model.Reservation) error {
	resID := res.ID
	clock := model.FormatClock(res.Time)
	task := &model.ReminderTask{
		ID:            TaskID(res.ID, model.ReminderKindConfirmation),
		ReservationID: &resID,
		Kind:          model.ReminderKindConfirmation,
		FireAt:        s.clock.Now(),
		TeacherName:   res.TeacherName,
		Subject:       res.Subject,
		Time:          clock,
		Message: fmt.Sprintf("Вы записаны к %s на %s: %s в %s.",
			res.TeacherName, res.Subject, FormatDate(res.Date), clock),
	}

	if _, err := s.queue.Enqueue(ctx, task); err != nil {
		return fmt.Errorf("schedule confirmation: %w", err)
	}
	return nil
}

// ScheduleProbe ставит пробное напоминание через 10 секунд (для отладки канала доставки)
func (s *ReminderService) ScheduleProbe(ctx context.Context) (string, error) {
	fireAt := s.clock.Now().Add(probeDelay)
	clock := fireAt.In(s.loc).Format("15:04")

	task := &model.ReminderTask{
		ID:          uuid.NewString(),
		Kind:        model.ReminderKindProbe,
		FireAt:      fireAt,
		TeacherName: probeTeacher,
		Subject:     probeSubject,
		Time:        clock,
		Message:     fmt.Sprintf("Тестовое напоминание: занятие по %s с %s в %s.", probeSubject, probeTeacher, clock),
	}

	id, err := s.queue.Enqueue(ctx, task)
	if err != nil {
		return "", fmt.Errorf("schedule probe: %w", err)
	}

	s.logger.Info("Probe reminder scheduled", zap.String("task_id", id), zap.Time("fire_at", fireAt))
	return id, nil
}

// Revoke удаляет ещё не доставленные напоминания бронирования
func (s *ReminderService) Revoke(ctx context.Context, reservationID string) (int, error) {
	n, err := s.queue.Revoke(ctx, reservationID)
	if err != nil {
		return 0, fmt.Errorf("revoke reminders: %w", err)
	}
	return n, nil
}

func reminderMessage(kind model.ReminderKind, subject, clock string) string {
	switch kind {
	case model.ReminderKindDayBefore:
		return fmt.Sprintf("Завтра у вас занятие по %s в %s.", subject, clock)
	case model.ReminderKindHourBefore:
		return fmt.Sprintf("Занятие по %s начнётся через час!", subject)
	default:
		return ""
	}
}
