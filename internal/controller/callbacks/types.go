package callbacks

import (
	"github.com/Freeeeeet/tutoring_bot/internal/controller/state"
	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/service"
	"github.com/golang-sql/civil"
	"go.uber.org/zap"
)

// BookingHorizonDays - на сколько дней вперёд предлагаются даты
const BookingHorizonDays = 14

// Handler содержит зависимости обработчиков callback
type Handler struct {
	Teachers *service.TeacherService
	Slots    *service.SlotService
	Booking  *service.BookingService
	State    *state.Manager
	Clock    model.Clock
	Logger   *zap.Logger
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	teachers *service.TeacherService,
	slots *service.SlotService,
	booking *service.BookingService,
	stateManager *state.Manager,
	clock model.Clock,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Teachers: teachers,
		Slots:    slots,
		Booking:  booking,
		State:    stateManager,
		Clock:    clock,
		Logger:   logger,
	}
}

// today - текущая дата в локальной зоне
func (h *Handler) today() civil.Date {
	return civil.DateOf(h.Clock.Now())
}
