package model

import "time"

type ReminderKind string

const (
	ReminderKindDayBefore    ReminderKind = "day_before"
	ReminderKindHourBefore   ReminderKind = "hour_before"
	ReminderKindProbe        ReminderKind = "probe"
	ReminderKindConfirmation ReminderKind = "confirmation"
)

type ReminderStatus string

const (
	ReminderStatusPending    ReminderStatus = "pending"
	ReminderStatusDelivering ReminderStatus = "delivering"
	ReminderStatusDelivered  ReminderStatus = "delivered"
	ReminderStatusFailed     ReminderStatus = "failed"
)

// MaxReminderAttempts - после стольких неудачных доставок задача помечается failed
const MaxReminderAttempts = 5

// ReminderTask - отложенное уведомление. Содержит все данные для доставки,
// поэтому в момент срабатывания журнал бронирований не читается.
type ReminderTask struct {
	ID            string         `json:"id"`
	ReservationID *string        `json:"reservation_id,omitempty"` // NULL для пробных напоминаний
	Kind          ReminderKind   `json:"kind"`
	FireAt        time.Time      `json:"fire_at"`
	TeacherName   string         `json:"teacher_name"`
	Subject       string         `json:"subject"`
	Time          string         `json:"time"`
	Message       string         `json:"message"`
	Status        ReminderStatus `json:"status"`
	Attempts      int            `json:"attempts"`
	CreatedAt     time.Time      `json:"created_at"`
}

// IsDue проверяет, наступило ли время доставки
func (t *ReminderTask) IsDue(now time.Time) bool {
	return !t.FireAt.After(now)
}
