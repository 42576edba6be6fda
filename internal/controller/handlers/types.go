package handlers

import (
	"github.com/Freeeeeet/tutoring_bot/internal/controller/state"
	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	teacherService  *service.TeacherService
	bookingService  *service.BookingService
	reminderService *service.ReminderService
	stateManager    *state.Manager
	clock           model.Clock
	logger          *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	teacherService *service.TeacherService,
	bookingService *service.BookingService,
	reminderService *service.ReminderService,
	stateManager *state.Manager,
	clock model.Clock,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		teacherService:  teacherService,
		bookingService:  bookingService,
		reminderService: reminderService,
		stateManager:    stateManager,
		clock:           clock,
		logger:          logger,
	}
}
