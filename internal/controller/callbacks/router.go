package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery
	h.Logger.Info("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID),
	)

	h.route(common.NewHandlerContext(ctx, b, callback))
}

// route распределяет callback query по соответствующим обработчикам
func (h *Handler) route(hc *common.HandlerContext) {
	data := hc.Callback.Data

	switch {
	case data == keyboard.NoopData:
		hc.Answer("")
	case data == keyboard.BackToMainData:
		h.handleBackToMain(hc)

	// ===== Запись =====
	case strings.HasPrefix(data, common.TeachersPrefix):
		h.handleTeachers(hc)
	case strings.HasPrefix(data, common.TeacherPrefix):
		h.handleTeacherCard(hc)
	case strings.HasPrefix(data, common.DaysPrefix):
		h.handleDatePicker(hc)
	case strings.HasPrefix(data, common.DayPrefix):
		h.handleSlotGrid(hc)
	case strings.HasPrefix(data, common.SlotPrefix):
		h.handleConfirmBooking(hc)
	case strings.HasPrefix(data, common.BookPrefix):
		h.handleBook(hc)

	// ===== Мои записи =====
	case data == common.BookingsData:
		h.handleReservations(hc)
	case strings.HasPrefix(data, common.ReservationPrefix):
		h.handleReservationCard(hc)
	case strings.HasPrefix(data, common.CancelConfirmPrefix):
		h.handleCancelConfirmed(hc)
	case strings.HasPrefix(data, common.CancelPrefix):
		h.handleCancelPrompt(hc)

	// ===== Перенос =====
	case strings.HasPrefix(data, common.ReschedulePrefix):
		h.handleRescheduleStart(hc)
	case strings.HasPrefix(data, common.RescheduleDayPrefix):
		h.handleRescheduleDay(hc)
	case strings.HasPrefix(data, common.RescheduleSlotPrefix):
		h.handleRescheduleConfirm(hc)
	case strings.HasPrefix(data, common.RescheduleDoPrefix):
		h.handleRescheduleDo(hc)

	default:
		h.Logger.Warn("Unknown callback data", zap.String("data", data))
		hc.AnswerAlert("❌ Неизвестная команда")
	}
}

func (h *Handler) handleBackToMain(hc *common.HandlerContext) {
	h.State.ClearState(hc.TelegramID)
	text, kb := common.BuildMainMenuScreen()
	h.show(hc, text, kb)
}

// show отвечает на callback и перерисовывает сообщение
func (h *Handler) show(hc *common.HandlerContext, text string, kb *models.InlineKeyboardMarkup) {
	hc.Answer("")
	if err := hc.Edit(text, kb); err != nil {
		h.Logger.Error("Failed to edit message",
			zap.String("data", hc.Callback.Data),
			zap.Error(err),
		)
	}
}

// fail логирует ошибку и показывает пользователю alert
func (h *Handler) fail(hc *common.HandlerContext, msg string, err error) {
	h.Logger.Error(msg,
		zap.String("data", hc.Callback.Data),
		zap.Int64("user_id", hc.TelegramID),
		zap.Error(err),
	)
	hc.AnswerAlert(common.ErrorMessage(err))
}
