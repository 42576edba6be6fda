package formatting

import (
	"fmt"
	"html"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
)

// FormatReservation форматирует запись одной строкой
func FormatReservation(r *model.Reservation) string {
	return fmt.Sprintf("%s %s · %s (%s)",
		FormatDayButton(r.Date), model.FormatClock(r.Time), html.EscapeString(r.TeacherName), html.EscapeString(r.Subject))
}

// FormatReservationCard форматирует карточку записи (HTML)
func FormatReservationCard(r *model.Reservation) string {
	return fmt.Sprintf(
		"📅 <b>Запись</b>\n\n"+
			"👩‍🏫 Учитель: %s\n"+
			"📚 Предмет: %s\n"+
			"🗓 Дата: %s\n"+
			"🕐 Время: %s",
		html.EscapeString(r.TeacherName),
		html.EscapeString(r.Subject),
		FormatDateWithWeekday(r.Date),
		model.FormatClock(r.Time),
	)
}
