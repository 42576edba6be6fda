package common

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/go-telegram/bot/models"
	"github.com/golang-sql/civil"
)

// TeachersPageSize - учителей на одной странице списка
const TeachersPageSize = 8

// BuildMainMenuScreen формирует главное меню
func BuildMainMenuScreen() (string, *models.InlineKeyboardMarkup) {
	text := "🏠 <b>Главное меню</b>\n\nВыберите действие:"
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("👩‍🏫 Учителя", TeachersPrefix+"0")).
		Row(keyboard.Button("📅 Мои записи", BookingsData)).
		Build()
	return text, kb
}

// BuildTeachersScreen формирует постраничный список учителей
func BuildTeachersScreen(teachers []*model.Teacher, page int) (string, *models.InlineKeyboardMarkup) {
	if len(teachers) == 0 {
		return "😔 В справочнике пока нет учителей.",
			keyboard.NewBuilder().AddBackToMainButton().Build()
	}

	totalPages := (len(teachers) + TeachersPageSize - 1) / TeachersPageSize
	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}

	start := page * TeachersPageSize
	end := start + TeachersPageSize
	if end > len(teachers) {
		end = len(teachers)
	}

	b := keyboard.NewBuilder()
	for _, t := range teachers[start:end] {
		b.Row(keyboard.Button(fmt.Sprintf("%s · %s", t.Name, t.Subject), fmt.Sprintf("%s%d", TeacherPrefix, t.ID)))
	}
	b.AddPagination(TeachersPrefix, page, totalPages).AddBackToMainButton()

	text := fmt.Sprintf("👩‍🏫 <b>Учителя</b> (%d %s)\n\nВыберите учителя:",
		len(teachers), formatting.PluralizeTeachers(len(teachers)))
	return text, b.Build()
}

// BuildTeacherCardScreen формирует карточку учителя с окнами доступности
func BuildTeacherCardScreen(t *model.Teacher) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "👩‍🏫 <b>%s</b>\n📚 %s\n", html.EscapeString(t.Name), html.EscapeString(t.Subject))
	if t.Email != "" {
		fmt.Fprintf(&sb, "✉️ %s\n", html.EscapeString(t.Email))
	}

	sb.WriteString("\n🗓 <b>Доступность:</b>\n")
	if len(t.Availability) == 0 {
		sb.WriteString("нет окон\n")
	}
	for _, a := range t.Availability {
		sb.WriteString("• " + formatting.FormatAvailability(a) + "\n")
	}

	b := keyboard.NewBuilder()
	if len(t.Availability) > 0 {
		b.Row(keyboard.Button("📅 Записаться", fmt.Sprintf("%s%d", DaysPrefix, t.ID)))
	}
	b.AddBackButton(TeachersPrefix + "0")

	return sb.String(), b.Build()
}

// BuildDatePickerScreen формирует выбор даты; dayData строит callback для даты
func BuildDatePickerScreen(title string, dates []civil.Date, dayData func(civil.Date) string, back string) (string, *models.InlineKeyboardMarkup) {
	b := keyboard.NewBuilder()
	if len(dates) == 0 {
		return title + "\n\n😔 В ближайшие дни нет доступных дат.", b.AddBackButton(back).Build()
	}

	buttons := make([]models.InlineKeyboardButton, 0, len(dates))
	for _, d := range dates {
		buttons = append(buttons, keyboard.Button(formatting.FormatDayButton(d), dayData(d)))
	}
	b.Grid(3, buttons...).AddBackButton(back)

	return title + "\n\nВыберите дату:", b.Build()
}

// BuildSlotGridScreen формирует сетку слотов. Занятые слоты видны, но не выбираются.
func BuildSlotGridScreen(title string, slots []model.Slot, slotData func(model.Slot) string, back string) (string, *models.InlineKeyboardMarkup) {
	b := keyboard.NewBuilder()
	if len(slots) == 0 {
		return title + "\n\n😔 На эту дату нет слотов.", b.AddBackButton(back).Build()
	}

	free := 0
	buttons := make([]models.InlineKeyboardButton, 0, len(slots))
	for _, s := range slots {
		data := keyboard.NoopData
		if !s.IsBooked {
			data = slotData(s)
			free++
		}
		buttons = append(buttons, keyboard.Button(formatting.FormatSlot(s), data))
	}
	b.Grid(4, buttons...).AddBackButton(back)

	text := fmt.Sprintf("%s\n\nСвободно %d %s из %d. 🔒 - занято.",
		title, free, formatting.PluralizeSlots(free), len(slots))
	return text, b.Build()
}

// BuildConfirmBookingScreen формирует подтверждение записи
func BuildConfirmBookingScreen(t *model.Teacher, d civil.Date, at civil.Time) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf(
		"📝 <b>Подтвердите запись</b>\n\n"+
			"👩‍🏫 Учитель: %s\n"+
			"📚 Предмет: %s\n"+
			"🗓 Дата: %s\n"+
			"🕐 Время: %s",
		html.EscapeString(t.Name),
		html.EscapeString(t.Subject),
		formatting.FormatDateWithWeekday(d),
		model.FormatClock(at),
	)
	kb := keyboard.NewBuilder().
		AddConfirmCancel(SlotData(BookPrefix, t.ID, d, at), DayData(t.ID, d)).
		Build()
	return text, kb
}

// BuildReservationsScreen формирует список записей
func BuildReservationsScreen(list []*model.Reservation) (string, *models.InlineKeyboardMarkup) {
	b := keyboard.NewBuilder()
	if len(list) == 0 {
		b.Row(keyboard.Button("👩‍🏫 Записаться", TeachersPrefix+"0")).AddBackToMainButton()
		return "📭 У вас пока нет записей.", b.Build()
	}

	for _, r := range list {
		b.Row(keyboard.Button(
			fmt.Sprintf("%s %s · %s", formatting.FormatDayButton(r.Date), model.FormatClock(r.Time), r.TeacherName),
			ReservationPrefix+r.ID,
		))
	}
	b.AddBackToMainButton()

	text := fmt.Sprintf("📅 <b>Мои записи</b> (%d %s)", len(list), formatting.PluralizeBookings(len(list)))
	return text, b.Build()
}

// BuildReservationCardScreen формирует карточку записи с действиями
func BuildReservationCardScreen(r *model.Reservation) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("🔄 Перенести", ReschedulePrefix+r.ID),
			keyboard.Button("🗑 Отменить", CancelPrefix+r.ID),
		).
		AddBackButton(BookingsData).
		Build()
	return formatting.FormatReservationCard(r), kb
}

// BuildCancelConfirmScreen формирует подтверждение отмены записи
func BuildCancelConfirmScreen(r *model.Reservation) (string, *models.InlineKeyboardMarkup) {
	text := formatting.FormatReservationCard(r) + "\n\n❓ Отменить эту запись?"
	kb := keyboard.NewBuilder().
		AddConfirmCancel(CancelConfirmPrefix+r.ID, ReservationPrefix+r.ID).
		Build()
	return text, kb
}

// BuildNextReservationText - текст о ближайшем занятии
func BuildNextReservationText(r *model.Reservation) string {
	if r == nil {
		return "📭 Ближайших занятий нет."
	}
	return "⏭ <b>Ближайшее занятие</b>\n\n" + formatting.FormatReservationCard(r)
}
