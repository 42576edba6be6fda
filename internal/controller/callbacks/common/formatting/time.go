package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/golang-sql/civil"
)

var weekdayNames = [...]string{
	"Воскресенье",
	"Понедельник",
	"Вторник",
	"Среда",
	"Четверг",
	"Пятница",
	"Суббота",
}

var weekdayShortNames = [...]string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}

// WeekdayName возвращает название дня недели на русском
func WeekdayName(day time.Weekday) string {
	if day >= time.Sunday && day <= time.Saturday {
		return weekdayNames[day]
	}
	return "Неизвестно"
}

// WeekdayShortName возвращает краткое название дня недели на русском
func WeekdayShortName(day time.Weekday) string {
	if day >= time.Sunday && day <= time.Saturday {
		return weekdayShortNames[day]
	}
	return "?"
}

// FormatDate форматирует дату как ДД.ММ.ГГГГ
func FormatDate(d civil.Date) string {
	return fmt.Sprintf("%02d.%02d.%04d", d.Day, int(d.Month), d.Year)
}

// FormatDateWithWeekday - "Понедельник, 06.10.2025"
func FormatDateWithWeekday(d civil.Date) string {
	return fmt.Sprintf("%s, %s", WeekdayName(model.Weekday(d)), FormatDate(d))
}

// FormatDayButton - короткая подпись даты для кнопки: "Пн 06.10"
func FormatDayButton(d civil.Date) string {
	return fmt.Sprintf("%s %02d.%02d", WeekdayShortName(model.Weekday(d)), d.Day, int(d.Month))
}

// FormatSlot форматирует слот: занятые помечаются замком
func FormatSlot(s model.Slot) string {
	if s.IsBooked {
		return "🔒 " + s.Label()
	}
	return s.Label()
}

// FormatAvailability - "Понедельник: 09:00-12:00"
func FormatAvailability(a model.Availability) string {
	return fmt.Sprintf("%s: %s-%s", WeekdayName(a.Day), a.StartTime, a.EndTime)
}
