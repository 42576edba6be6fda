package controller

import (
	"context"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/handlers"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/state"
	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Services - сервисы, которые нужны боту
type Services struct {
	Teachers  *service.TeacherService
	Slots     *service.SlotService
	Booking   *service.BookingService
	Reminders *service.ReminderService
}

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	services Services,
	clock model.Clock,
	logger *zap.Logger,
) *BotController {
	// Общий менеджер состояний для команд и callbacks
	stateManager := state.NewManager()

	cmdHandlers := handlers.NewHandlers(
		services.Teachers,
		services.Booking,
		services.Reminders,
		stateManager,
		clock,
		logger,
	)

	callbackHandler := callbacks.NewHandler(
		services.Teachers,
		services.Slots,
		services.Booking,
		stateManager,
		clock,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/teachers", bot.MatchTypeExact, c.handlers.HandleTeachers)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/teacher", bot.MatchTypeExact, c.handlers.HandleTeacher)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/teacher ", bot.MatchTypePrefix, c.handlers.HandleTeacher)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mybookings", bot.MatchTypeExact, c.handlers.HandleMyBookings)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/next", bot.MatchTypeExact, c.handlers.HandleNext)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/testreminder", bot.MatchTypeExact, c.handlers.HandleTestReminder)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Главное меню"},
		{Command: "teachers", Description: "👩‍🏫 Учителя и запись"},
		{Command: "mybookings", Description: "📅 Мои записи"},
		{Command: "next", Description: "⏭ Ближайшее занятие"},
		{Command: "testreminder", Description: "⏰ Тестовое напоминание"},
		{Command: "cancel", Description: "✖️ Прервать диалог"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота, блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
