package model

import (
	"time"

	"github.com/golang-sql/civil"
)

type Reservation struct {
	ID          string     `json:"id"`
	TeacherName string     `json:"teacher_name"`
	Subject     string     `json:"subject"`
	Date        civil.Date `json:"date"`
	Time        civil.Time `json:"time"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ReservationKey - естественный ключ бронирования, уникальный среди живых записей
type ReservationKey struct {
	TeacherName string
	Date        civil.Date
	Minute      int
}

// Key возвращает естественный ключ (учитель, дата, время)
func (r *Reservation) Key() ReservationKey {
	return ReservationKey{
		TeacherName: r.TeacherName,
		Date:        r.Date,
		Minute:      ClockMinutes(r.Time),
	}
}

// StartsAt возвращает абсолютное время начала занятия в указанной зоне
func (r *Reservation) StartsAt(loc *time.Location) time.Time {
	return civil.DateTime{Date: r.Date, Time: r.Time}.In(loc)
}

// Before сравнивает бронирования по (дата, время)
func (r *Reservation) Before(other *Reservation) bool {
	if r.Date != other.Date {
		return r.Date.Before(other.Date)
	}
	return ClockMinutes(r.Time) < ClockMinutes(other.Time)
}
