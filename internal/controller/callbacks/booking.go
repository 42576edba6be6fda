package callbacks

import (
	"fmt"
	"html"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/go-telegram/bot/models"
	"github.com/golang-sql/civil"
	"go.uber.org/zap"
)

func (h *Handler) handleTeachers(hc *common.HandlerContext) {
	page, err := common.ParseID(hc.Callback.Data, common.TeachersPrefix)
	if err != nil {
		page = 0
	}

	teachers, err := h.Teachers.ListTeachers(hc.Ctx)
	if err != nil {
		h.fail(hc, "Failed to list teachers", err)
		return
	}

	text, kb := common.BuildTeachersScreen(teachers, int(page))
	h.show(hc, text, kb)
}

func (h *Handler) handleTeacherCard(hc *common.HandlerContext) {
	teacher, ok := h.teacherFromData(hc, common.TeacherPrefix)
	if !ok {
		return
	}
	text, kb := common.BuildTeacherCardScreen(teacher)
	h.show(hc, text, kb)
}

func (h *Handler) handleDatePicker(hc *common.HandlerContext) {
	teacher, ok := h.teacherFromData(hc, common.DaysPrefix)
	if !ok {
		return
	}

	dates := common.UpcomingDates(teacher, h.today(), BookingHorizonDays)
	title := fmt.Sprintf("📅 <b>%s</b> · %s", html.EscapeString(teacher.Name), html.EscapeString(teacher.Subject))
	text, kb := common.BuildDatePickerScreen(title, dates, func(d civil.Date) string {
		return common.DayData(teacher.ID, d)
	}, fmt.Sprintf("%s%d", common.TeacherPrefix, teacher.ID))

	h.show(hc, text, kb)
}

func (h *Handler) handleSlotGrid(hc *common.HandlerContext) {
	teacherID, date, err := common.ParseDay(hc.Callback.Data)
	if err != nil {
		h.fail(hc, "Invalid day callback", err)
		return
	}
	teacher, err := h.Teachers.GetByID(hc.Ctx, teacherID)
	if err != nil {
		h.fail(hc, "Failed to get teacher", err)
		return
	}

	text, kb, err := h.slotGrid(hc, teacher, date)
	if err != nil {
		h.fail(hc, "Failed to resolve slots", err)
		return
	}
	h.show(hc, text, kb)
}

// slotGrid строит экран слотов учителя на дату
func (h *Handler) slotGrid(hc *common.HandlerContext, teacher *model.Teacher, date civil.Date) (string, *models.InlineKeyboardMarkup, error) {
	slots, err := h.Slots.Resolve(hc.Ctx, teacher, date)
	if err != nil {
		return "", nil, err
	}

	title := fmt.Sprintf("🕐 <b>%s</b> · %s", html.EscapeString(teacher.Name), formatting.FormatDateWithWeekday(date))
	text, kb := common.BuildSlotGridScreen(title, slots, func(s model.Slot) string {
		return common.SlotData(common.SlotPrefix, teacher.ID, date, s.Time)
	}, fmt.Sprintf("%s%d", common.DaysPrefix, teacher.ID))

	return text, kb, nil
}

func (h *Handler) handleConfirmBooking(hc *common.HandlerContext) {
	teacherID, date, at, err := common.ParseSlot(hc.Callback.Data, common.SlotPrefix)
	if err != nil {
		h.fail(hc, "Invalid slot callback", err)
		return
	}
	teacher, err := h.Teachers.GetByID(hc.Ctx, teacherID)
	if err != nil {
		h.fail(hc, "Failed to get teacher", err)
		return
	}

	text, kb := common.BuildConfirmBookingScreen(teacher, date, at)
	h.show(hc, text, kb)
}

func (h *Handler) handleBook(hc *common.HandlerContext) {
	teacherID, date, at, err := common.ParseSlot(hc.Callback.Data, common.BookPrefix)
	if err != nil {
		h.fail(hc, "Invalid book callback", err)
		return
	}
	teacher, err := h.Teachers.GetByID(hc.Ctx, teacherID)
	if err != nil {
		h.fail(hc, "Failed to get teacher", err)
		return
	}

	res, err := h.Booking.Create(hc.Ctx, teacher, date, at, "")
	if err != nil {
		h.Logger.Warn("Booking rejected",
			zap.String("teacher", teacher.Name),
			zap.String("date", date.String()),
			zap.Error(err),
		)
		hc.AnswerAlert(common.ErrorMessage(err))

		// показываем актуальную сетку
		if text, kb, gridErr := h.slotGrid(hc, teacher, date); gridErr == nil {
			if err := hc.Edit(text, kb); err != nil {
				h.Logger.Error("Failed to edit message", zap.Error(err))
			}
		}
		return
	}

	text := "✅ <b>Вы записаны!</b>\n\n" + formatting.FormatReservationCard(res) +
		"\n\n🔔 Напомним за сутки и за час до занятия."
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📅 Мои записи", common.BookingsData)).
		AddBackToMainButton().
		Build()

	h.show(hc, text, kb)
}

// teacherFromData достаёт учителя по ID из callback data, при ошибке отвечает alert
func (h *Handler) teacherFromData(hc *common.HandlerContext, prefix string) (*model.Teacher, bool) {
	id, err := common.ParseID(hc.Callback.Data, prefix)
	if err != nil {
		h.fail(hc, "Invalid teacher callback", err)
		return nil, false
	}
	teacher, err := h.Teachers.GetByID(hc.Ctx, id)
	if err != nil {
		h.fail(hc, "Failed to get teacher", err)
		return nil, false
	}
	return teacher, true
}
