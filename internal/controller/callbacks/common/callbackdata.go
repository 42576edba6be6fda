package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/golang-sql/civil"
)

// Форматы callback data. Telegram ограничивает их 64 байтами,
// поэтому даты и время кодируются компактно: 20251006, 0900.
const (
	TeachersPrefix       = "teachers:" // teachers:<page>
	TeacherPrefix        = "tch:"      // tch:<teacher_id>
	DaysPrefix           = "days:"     // days:<teacher_id>
	DayPrefix            = "day:"      // day:<teacher_id>:<date>
	SlotPrefix           = "slot:"     // slot:<teacher_id>:<date>:<time>
	BookPrefix           = "book:"     // book:<teacher_id>:<date>:<time>
	BookingsData         = "bookings"
	ReservationPrefix    = "res:"        // res:<reservation_id>
	CancelPrefix         = "rcancel:"    // rcancel:<reservation_id>
	CancelConfirmPrefix  = "rcancel_ok:" // rcancel_ok:<reservation_id>
	ReschedulePrefix     = "rsch:"       // rsch:<reservation_id>
	RescheduleDayPrefix  = "rday:"       // rday:<date>
	RescheduleSlotPrefix = "rslot:"      // rslot:<date>:<time>
	RescheduleDoPrefix   = "rdo:"        // rdo:<date>:<time>
)

func EncodeDate(d civil.Date) string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, int(d.Month), d.Day)
}

func DecodeDate(s string) (civil.Date, error) {
	t, err := time.Parse("20060102", s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: date %q", ErrInvalidFormat, s)
	}
	return civil.DateOf(t), nil
}

func EncodeTime(t civil.Time) string {
	return fmt.Sprintf("%02d%02d", t.Hour, t.Minute)
}

func DecodeTime(s string) (civil.Time, error) {
	t, err := time.Parse("1504", s)
	if err != nil {
		return civil.Time{}, fmt.Errorf("%w: time %q", ErrInvalidFormat, s)
	}
	return civil.TimeOf(t), nil
}

// splitData отрезает префикс и делит остаток на n частей
func splitData(data, prefix string, n int) ([]string, error) {
	if !strings.HasPrefix(data, prefix) {
		return nil, ErrInvalidFormat
	}
	parts := strings.Split(strings.TrimPrefix(data, prefix), ":")
	if len(parts) != n {
		return nil, ErrInvalidFormat
	}
	return parts, nil
}

// ParseID извлекает числовой ID: "tch:3" -> 3
func ParseID(data, prefix string) (int64, error) {
	parts, err := splitData(data, prefix, 1)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id %q", ErrInvalidFormat, parts[0])
	}
	return id, nil
}

// ParseString извлекает строковый аргумент: "res:<uuid>" -> uuid
func ParseString(data, prefix string) (string, error) {
	parts, err := splitData(data, prefix, 1)
	if err != nil {
		return "", err
	}
	if parts[0] == "" {
		return "", ErrInvalidFormat
	}
	return parts[0], nil
}

func DayData(teacherID int64, d civil.Date) string {
	return fmt.Sprintf("%s%d:%s", DayPrefix, teacherID, EncodeDate(d))
}

// ParseDay разбирает day:<teacher_id>:<date>
func ParseDay(data string) (int64, civil.Date, error) {
	parts, err := splitData(data, DayPrefix, 2)
	if err != nil {
		return 0, civil.Date{}, err
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, civil.Date{}, fmt.Errorf("%w: id %q", ErrInvalidFormat, parts[0])
	}
	d, err := DecodeDate(parts[1])
	if err != nil {
		return 0, civil.Date{}, err
	}
	return id, d, nil
}

func SlotData(prefix string, teacherID int64, d civil.Date, t civil.Time) string {
	return fmt.Sprintf("%s%d:%s:%s", prefix, teacherID, EncodeDate(d), EncodeTime(t))
}

// ParseSlot разбирает <prefix><teacher_id>:<date>:<time> (slot: и book:)
func ParseSlot(data, prefix string) (int64, civil.Date, civil.Time, error) {
	parts, err := splitData(data, prefix, 3)
	if err != nil {
		return 0, civil.Date{}, civil.Time{}, err
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, civil.Date{}, civil.Time{}, fmt.Errorf("%w: id %q", ErrInvalidFormat, parts[0])
	}
	d, err := DecodeDate(parts[1])
	if err != nil {
		return 0, civil.Date{}, civil.Time{}, err
	}
	t, err := DecodeTime(parts[2])
	if err != nil {
		return 0, civil.Date{}, civil.Time{}, err
	}
	return id, d, t, nil
}

func RescheduleDayData(d civil.Date) string {
	return RescheduleDayPrefix + EncodeDate(d)
}

func RescheduleSlotData(prefix string, d civil.Date, t civil.Time) string {
	return prefix + EncodeDate(d) + ":" + EncodeTime(t)
}

// ParseRescheduleDay разбирает rday:<date>
func ParseRescheduleDay(data string) (civil.Date, error) {
	parts, err := splitData(data, RescheduleDayPrefix, 1)
	if err != nil {
		return civil.Date{}, err
	}
	return DecodeDate(parts[0])
}

// ParseRescheduleSlot разбирает rslot:/rdo: <date>:<time>
func ParseRescheduleSlot(data, prefix string) (civil.Date, civil.Time, error) {
	parts, err := splitData(data, prefix, 2)
	if err != nil {
		return civil.Date{}, civil.Time{}, err
	}
	d, err := DecodeDate(parts[0])
	if err != nil {
		return civil.Date{}, civil.Time{}, err
	}
	t, err := DecodeTime(parts[1])
	if err != nil {
		return civil.Date{}, civil.Time{}, err
	}
	return d, t, nil
}

// UpcomingDates возвращает даты в пределах days дней начиная с from,
// в которые у учителя есть хотя бы одно окно доступности
func UpcomingDates(teacher *model.Teacher, from civil.Date, days int) []civil.Date {
	var out []civil.Date
	for i := 0; i < days; i++ {
		d := from.AddDays(i)
		if len(teacher.AvailabilityFor(model.Weekday(d))) > 0 {
			out = append(out, d)
		}
	}
	return out
}
