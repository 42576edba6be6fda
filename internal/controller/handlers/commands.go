package handlers

import (
	"context"
	"strings"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/golang-sql/civil"
	"go.uber.org/zap"
)

const helpText = "📚 <b>Справка по командам</b>\n\n" +
	"/start - Главное меню\n" +
	"/teachers - Список учителей\n" +
	"/teacher &lt;имя&gt; - Карточка учителя\n" +
	"/mybookings - Мои записи\n" +
	"/next - Ближайшее занятие\n" +
	"/testreminder - Проверить напоминания\n" +
	"/cancel - Прервать текущий диалог\n" +
	"/help - Показать эту справку\n\n" +
	"Чтобы записаться, выберите учителя, день и свободное время."

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.stateManager.ClearState(update.Message.From.ID)

	text, kb := common.BuildMainMenuScreen()
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleTeachers обрабатывает команду /teachers
func (h *Handlers) HandleTeachers(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	teachers, err := h.teacherService.ListTeachers(ctx)
	if err != nil {
		h.logger.Error("Failed to list teachers", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := common.BuildTeachersScreen(teachers, 0)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleTeacher обрабатывает команду /teacher <имя>
func (h *Handlers) HandleTeacher(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	name := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/teacher"))
	if name == "" {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Укажите имя учителя: /teacher Мария Гомес")
		return
	}

	teacher, err := h.teacherService.GetByName(ctx, name)
	if err != nil {
		h.logger.Warn("Teacher lookup failed", zap.String("name", name), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := common.BuildTeacherCardScreen(teacher)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleMyBookings обрабатывает команду /mybookings
func (h *Handlers) HandleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	list, err := h.bookingService.ListReservations(ctx)
	if err != nil {
		h.logger.Error("Failed to list reservations", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := common.BuildReservationsScreen(list)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleNext обрабатывает команду /next
func (h *Handlers) HandleNext(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	next, err := h.bookingService.NextReservation(ctx, civil.DateOf(h.clock.Now()))
	if err != nil {
		h.logger.Error("Failed to get next reservation", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	var kb *models.InlineKeyboardMarkup
	if next != nil {
		kb = keyboard.NewBuilder().
			Row(keyboard.Button("📋 Открыть запись", common.ReservationPrefix+next.ID)).
			Build()
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, common.BuildNextReservationText(next), kb)
}

// HandleTestReminder обрабатывает команду /testreminder
func (h *Handlers) HandleTestReminder(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	taskID, err := h.reminderService.ScheduleProbe(ctx)
	if err != nil {
		h.logger.Error("Failed to schedule probe reminder", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Не удалось запланировать тестовое напоминание.")
		return
	}

	h.logger.Info("Probe reminder scheduled", zap.String("task_id", taskID))
	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"⏰ Тестовое напоминание придёт примерно через 10 секунд.", nil)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.", nil)
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.", nil)
}
