package callbacks

import (
	"errors"
	"fmt"
	"html"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/state"
	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/service"
	"github.com/golang-sql/civil"
	"go.uber.org/zap"
)

func (h *Handler) handleReservations(hc *common.HandlerContext) {
	list, err := h.Booking.ListReservations(hc.Ctx)
	if err != nil {
		h.fail(hc, "Failed to list reservations", err)
		return
	}
	text, kb := common.BuildReservationsScreen(list)
	h.show(hc, text, kb)
}

func (h *Handler) handleReservationCard(hc *common.HandlerContext) {
	res, ok := h.reservationFromData(hc, common.ReservationPrefix)
	if !ok {
		return
	}
	text, kb := common.BuildReservationCardScreen(res)
	h.show(hc, text, kb)
}

func (h *Handler) handleCancelPrompt(hc *common.HandlerContext) {
	res, ok := h.reservationFromData(hc, common.CancelPrefix)
	if !ok {
		return
	}
	text, kb := common.BuildCancelConfirmScreen(res)
	h.show(hc, text, kb)
}

func (h *Handler) handleCancelConfirmed(hc *common.HandlerContext) {
	id, err := common.ParseString(hc.Callback.Data, common.CancelConfirmPrefix)
	if err != nil {
		h.fail(hc, "Invalid cancel callback", err)
		return
	}

	if err := h.Booking.CancelByID(hc.Ctx, id); err != nil {
		h.fail(hc, "Failed to cancel reservation", err)
		return
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📅 Мои записи", common.BookingsData)).
		AddBackToMainButton().
		Build()
	h.show(hc, "✅ Запись отменена.", kb)
}

func (h *Handler) handleRescheduleStart(hc *common.HandlerContext) {
	res, ok := h.reservationFromData(hc, common.ReschedulePrefix)
	if !ok {
		return
	}
	teacher, err := h.Teachers.GetByName(hc.Ctx, res.TeacherName)
	if err != nil {
		h.fail(hc, "Failed to get teacher for reschedule", err)
		return
	}

	h.State.SetState(hc.TelegramID, state.StateRescheduling)
	h.State.SetData(hc.TelegramID, state.KeyReservationID, res.ID)

	dates := common.UpcomingDates(teacher, h.today(), BookingHorizonDays)
	title := fmt.Sprintf("🔄 <b>Перенос записи</b>\n%s", formatting.FormatReservation(res))
	text, kb := common.BuildDatePickerScreen(title, dates, common.RescheduleDayData, common.ReservationPrefix+res.ID)
	h.show(hc, text, kb)
}

func (h *Handler) handleRescheduleDay(hc *common.HandlerContext) {
	res, ok := h.reservationFromState(hc)
	if !ok {
		return
	}
	date, err := common.ParseRescheduleDay(hc.Callback.Data)
	if err != nil {
		h.fail(hc, "Invalid reschedule day callback", err)
		return
	}

	slots, err := h.Slots.ResolveByName(hc.Ctx, res.TeacherName, date)
	if err != nil {
		h.fail(hc, "Failed to resolve slots", err)
		return
	}

	title := fmt.Sprintf("🔄 <b>%s</b> · %s", html.EscapeString(res.TeacherName), formatting.FormatDateWithWeekday(date))
	text, kb := common.BuildSlotGridScreen(title, slots, func(s model.Slot) string {
		return common.RescheduleSlotData(common.RescheduleSlotPrefix, date, s.Time)
	}, common.ReschedulePrefix+res.ID)
	h.show(hc, text, kb)
}

func (h *Handler) handleRescheduleConfirm(hc *common.HandlerContext) {
	res, ok := h.reservationFromState(hc)
	if !ok {
		return
	}
	date, at, err := common.ParseRescheduleSlot(hc.Callback.Data, common.RescheduleSlotPrefix)
	if err != nil {
		h.fail(hc, "Invalid reschedule slot callback", err)
		return
	}

	text := fmt.Sprintf(
		"🔄 <b>Подтвердите перенос</b>\n\n"+
			"Было: %s\n"+
			"Станет: %s %s\n\n"+
			"⚠️ Старая запись будет отменена сразу. Если новый слот успеют занять, старый не вернётся.",
		formatting.FormatReservation(res),
		formatting.FormatDayButton(date),
		model.FormatClock(at),
	)
	kb := keyboard.NewBuilder().
		AddConfirmCancel(common.RescheduleSlotData(common.RescheduleDoPrefix, date, at), common.RescheduleDayData(date)).
		Build()
	h.show(hc, text, kb)
}

func (h *Handler) handleRescheduleDo(hc *common.HandlerContext) {
	res, ok := h.reservationFromState(hc)
	if !ok {
		return
	}
	date, at, err := common.ParseRescheduleSlot(hc.Callback.Data, common.RescheduleDoPrefix)
	if err != nil {
		h.fail(hc, "Invalid reschedule callback", err)
		return
	}

	moved, err := h.Booking.Reschedule(hc.Ctx, res, date, at)
	h.State.ClearState(hc.TelegramID)

	if err != nil {
		h.Logger.Warn("Reschedule failed", zap.String("reservation_id", res.ID), zap.Error(err))
		if errors.Is(err, service.ErrRescheduleLostSlot) {
			h.showRescheduleLost(hc, res, date, err)
			return
		}
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	text := "✅ <b>Запись перенесена</b>\n\n" + formatting.FormatReservationCard(moved)
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📅 Мои записи", common.BookingsData)).
		AddBackToMainButton().
		Build()
	h.show(hc, text, kb)
}

// showRescheduleLost явно сообщает, что старая запись потеряна
func (h *Handler) showRescheduleLost(hc *common.HandlerContext, old *model.Reservation, date civil.Date, err error) {
	text := "⚠️ <b>Перенос не удался</b>\n\n" +
		"Запись " + formatting.FormatReservation(old) + " отменена, а новый слот занять не получилось.\n\n" +
		common.ErrorMessage(lostCause(err))

	b := keyboard.NewBuilder()
	if teacher, tErr := h.Teachers.GetByName(hc.Ctx, old.TeacherName); tErr == nil {
		b.Row(keyboard.Button("🕐 Выбрать другое время", common.DayData(teacher.ID, date)))
	}
	b.AddBackToMainButton()

	h.show(hc, text, b.Build())
}

// lostCause возвращает причину неудачного переноса
func lostCause(err error) error {
	var lost *service.RescheduleLostSlotError
	if errors.As(err, &lost) && lost.Cause != nil {
		return lost.Cause
	}
	return err
}

// reservationFromData достаёт запись по ID из callback data
func (h *Handler) reservationFromData(hc *common.HandlerContext, prefix string) (*model.Reservation, bool) {
	id, err := common.ParseString(hc.Callback.Data, prefix)
	if err != nil {
		h.fail(hc, "Invalid reservation callback", err)
		return nil, false
	}
	res, err := h.Booking.GetReservation(hc.Ctx, id)
	if err != nil {
		h.fail(hc, "Failed to get reservation", err)
		return nil, false
	}
	return res, true
}

// reservationFromState достаёт переносимую запись из состояния диалога
func (h *Handler) reservationFromState(hc *common.HandlerContext) (*model.Reservation, bool) {
	if h.State.GetState(hc.TelegramID) != state.StateRescheduling {
		hc.AnswerAlert("⌛ Перенос устарел. Откройте запись заново.")
		return nil, false
	}
	id, ok := h.State.GetString(hc.TelegramID, state.KeyReservationID)
	if !ok {
		hc.AnswerAlert("⌛ Перенос устарел. Откройте запись заново.")
		return nil, false
	}
	res, err := h.Booking.GetReservation(hc.Ctx, id)
	if err != nil {
		h.State.ClearState(hc.TelegramID)
		h.fail(hc, "Failed to get reservation for reschedule", err)
		return nil, false
	}
	return res, true
}
