package model

import (
	"fmt"
	"time"

	"github.com/golang-sql/civil"
)

const clockLayout = "15:04"

// ParseClock разбирает время суток в формате HH:MM
func ParseClock(s string) (civil.Time, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return civil.Time{}, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return civil.TimeOf(t), nil
}

// FormatClock форматирует время суток как HH:MM
func FormatClock(t civil.Time) string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ClockMinutes возвращает количество минут от полуночи
func ClockMinutes(t civil.Time) int {
	return t.Hour*60 + t.Minute
}

// ClockFromMinutes обратна ClockMinutes
func ClockFromMinutes(m int) civil.Time {
	return civil.Time{Hour: m / 60, Minute: m % 60}
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d, nil
}

// Weekday возвращает день недели календарной даты
func Weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

// Clock - источник текущего времени
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FixedClock всегда возвращает одно и то же время (для тестов и отладки)
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }
