package service

import (
	"errors"
	"fmt"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/repository"
)

var (
	// ErrInvalidSlot - время не входит в доступность учителя на эту дату
	ErrInvalidSlot = errors.New("time is not a valid slot for this teacher and date")

	// ErrConflict - слот уже занят другой записью
	ErrConflict = errors.New("slot is already booked")

	// ErrDirectoryUnavailable - справочник учителей недоступен
	ErrDirectoryUnavailable = repository.ErrDirectoryUnavailable

	// ErrRescheduleLostSlot - старая запись отменена, а новая не создана
	ErrRescheduleLostSlot = errors.New("reschedule failed after the original reservation was cancelled")

	ErrTeacherNotFound     = errors.New("teacher not found")
	ErrReservationNotFound = errors.New("reservation not found")
)

// RescheduleLostSlotError сообщает, что перенос не удался и прежняя запись не восстановлена.
// Совпадает через errors.Is и с ErrRescheduleLostSlot, и с причиной.
type RescheduleLostSlotError struct {
	Old   *model.Reservation
	Cause error
}

func (e *RescheduleLostSlotError) Error() string {
	return fmt.Sprintf("%v: %s %s %s: %v",
		ErrRescheduleLostSlot, e.Old.TeacherName, e.Old.Date, model.FormatClock(e.Old.Time), e.Cause)
}

func (e *RescheduleLostSlotError) Unwrap() []error {
	return []error{ErrRescheduleLostSlot, e.Cause}
}
