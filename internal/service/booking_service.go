package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/availability"
	"github.com/Freeeeeet/tutoring_bot/internal/lock"
	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/repository"
	"github.com/golang-sql/civil"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService struct {
	store        ReservationStore
	teachers     *TeacherService
	reminders    *ReminderService
	locker       lock.Locker
	slotDuration time.Duration
	logger       *zap.Logger
}

func NewBookingService(
	store ReservationStore,
	teachers *TeacherService,
	reminders *ReminderService,
	locker lock.Locker,
	slotDuration time.Duration,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		store:        store,
		teachers:     teachers,
		reminders:    reminders,
		locker:       locker,
		slotDuration: slotDuration,
		logger:       logger,
	}
}

func lockKey(teacherName string, date civil.Date) string {
	return teacherName + "|" + date.String()
}

// Create бронирует слот. Проверка сетки, проверка занятости и вставка
// выполняются под блокировкой (учитель, дата).
func (s *BookingService) Create(ctx context.Context, teacher *model.Teacher, date civil.Date, at civil.Time, subject string) (*model.Reservation, error) {
	if subject == "" {
		subject = teacher.Subject
	}

	res, err := s.insertLocked(ctx, teacher, date, at, subject)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reservation created",
		zap.String("reservation_id", res.ID),
		zap.String("teacher", res.TeacherName),
		zap.String("date", res.Date.String()),
		zap.String("time", model.FormatClock(res.Time)),
	)

	// напоминания не влияют на результат бронирования
	if _, err := s.reminders.Schedule(ctx, res); err != nil {
		s.logger.Error("Failed to schedule reminders", zap.String("reservation_id", res.ID), zap.Error(err))
	}
	if err := s.reminders.ScheduleConfirmation(ctx, res); err != nil {
		s.logger.Error("Failed to schedule confirmation", zap.String("reservation_id", res.ID), zap.Error(err))
	}

	return res, nil
}

func (s *BookingService) insertLocked(ctx context.Context, teacher *model.Teacher, date civil.Date, at civil.Time, subject string) (*model.Reservation, error) {
	unlock, err := s.locker.Lock(ctx, lockKey(teacher.Name, date))
	if err != nil {
		return nil, fmt.Errorf("acquire booking lock: %w", err)
	}
	defer unlock()

	if !availability.Contains(date, teacher.Availability, s.slotDuration, at) {
		return nil, fmt.Errorf("%w: %s %s %s", ErrInvalidSlot, teacher.Name, date, model.FormatClock(at))
	}

	existing, err := s.store.ListFor(ctx, teacher.Name, date)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	for _, r := range existing {
		if model.ClockMinutes(r.Time) == model.ClockMinutes(at) {
			return nil, fmt.Errorf("%w: %s %s %s", ErrConflict, teacher.Name, date, model.FormatClock(at))
		}
	}

	res := &model.Reservation{
		ID:          uuid.NewString(),
		TeacherName: teacher.Name,
		Subject:     subject,
		Date:        date,
		Time:        at,
	}

	if err := s.store.Insert(ctx, res); err != nil {
		if errors.Is(err, repository.ErrDuplicateReservation) {
			return nil, fmt.Errorf("%w: %s %s %s", ErrConflict, teacher.Name, date, model.FormatClock(at))
		}
		return nil, fmt.Errorf("insert reservation: %w", err)
	}

	return res, nil
}

// CreateByName ищет учителя в справочнике и бронирует слот на его предмет
func (s *BookingService) CreateByName(ctx context.Context, teacherName string, date civil.Date, at civil.Time) (*model.Reservation, error) {
	teacher, err := s.teachers.GetByName(ctx, teacherName)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, teacher, date, at, "")
}

// Cancel удаляет бронирование. Отсутствующая запись - не ошибка.
func (s *BookingService) Cancel(ctx context.Context, res *model.Reservation) error {
	unlock, err := s.locker.Lock(ctx, lockKey(res.TeacherName, res.Date))
	if err != nil {
		return fmt.Errorf("acquire booking lock: %w", err)
	}
	deleted, err := s.store.DeleteByID(ctx, res.ID)
	unlock()
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}

	if !deleted {
		s.logger.Debug("Reservation already cancelled", zap.String("reservation_id", res.ID))
		return nil
	}

	s.logger.Info("Reservation cancelled", zap.String("reservation_id", res.ID))

	if n, err := s.reminders.Revoke(ctx, res.ID); err != nil {
		s.logger.Error("Failed to revoke reminders", zap.String("reservation_id", res.ID), zap.Error(err))
	} else if n > 0 {
		s.logger.Info("Reminders revoked", zap.String("reservation_id", res.ID), zap.Int("count", n))
	}

	return nil
}

// CancelByID отменяет бронирование по ID. Неизвестный ID - no-op.
func (s *BookingService) CancelByID(ctx context.Context, id string) error {
	res, err := s.store.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get reservation: %w", err)
	}
	if res == nil {
		return nil
	}
	return s.Cancel(ctx, res)
}

// Reschedule отменяет старую запись и создаёт новую у того же учителя.
// Если создание не удалось, старая запись не восстанавливается: возвращается RescheduleLostSlotError.
func (s *BookingService) Reschedule(ctx context.Context, old *model.Reservation, date civil.Date, at civil.Time) (*model.Reservation, error) {
	// справочник проверяется до отмены
	teacher, err := s.teachers.GetByName(ctx, old.TeacherName)
	if err != nil {
		return nil, err
	}

	if err := s.Cancel(ctx, old); err != nil {
		return nil, fmt.Errorf("cancel old reservation: %w", err)
	}

	res, err := s.Create(ctx, teacher, date, at, old.Subject)
	if err != nil {
		s.logger.Warn("Reschedule lost the original slot",
			zap.String("reservation_id", old.ID),
			zap.Error(err),
		)
		return nil, &RescheduleLostSlotError{Old: old, Cause: err}
	}

	return res, nil
}

// RescheduleByID - Reschedule по ID существующей записи
func (s *BookingService) RescheduleByID(ctx context.Context, id string, date civil.Date, at civil.Time) (*model.Reservation, error) {
	old, err := s.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Reschedule(ctx, old, date, at)
}

// GetReservation возвращает запись или ErrReservationNotFound
func (s *BookingService) GetReservation(ctx context.Context, id string) (*model.Reservation, error) {
	res, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	if res == nil {
		return nil, fmt.Errorf("%w: %s", ErrReservationNotFound, id)
	}
	return res, nil
}

// ListReservations возвращает все записи по возрастанию (дата, время)
func (s *BookingService) ListReservations(ctx context.Context) ([]*model.Reservation, error) {
	list, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return list, nil
}

// NextReservation возвращает ближайшую запись начиная с today, nil если записей нет
func (s *BookingService) NextReservation(ctx context.Context, today civil.Date) (*model.Reservation, error) {
	res, err := s.store.FindNext(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("find next reservation: %w", err)
	}
	return res, nil
}
