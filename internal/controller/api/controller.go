package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/golang-sql/civil"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Controller обслуживает HTTP API поверх тех же сервисов, что и бот
type Controller struct {
	Log       *zap.Logger
	Teachers  *service.TeacherService
	Slots     *service.SlotService
	Booking   *service.BookingService
	Reminders *service.ReminderService
	Clock     model.Clock
}

func (ctrl *Controller) Health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "ok", nil)
}

func (ctrl *Controller) ListTeachers(w http.ResponseWriter, r *http.Request) {
	teachers, err := ctrl.Teachers.ListTeachers(r.Context())
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	out := make([]teacherDTO, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, toTeacherDTO(t))
	}
	writeSuccess(w, http.StatusOK, "", out)
}

func (ctrl *Controller) GetTeacher(w http.ResponseWriter, r *http.Request) {
	teacher, err := ctrl.Teachers.GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", toTeacherDTO(teacher))
}

func (ctrl *Controller) ListSlots(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	date, err := model.ParseDate(raw)
	if err != nil {
		writeError(ctrl.Log, w, fmt.Errorf("%w: date %q", errBadRequest, raw))
		return
	}

	slots, err := ctrl.Slots.ResolveByName(r.Context(), chi.URLParam(r, "name"), date)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", toSlotDTOs(slots))
}

func (ctrl *Controller) ListReservations(w http.ResponseWriter, r *http.Request) {
	list, err := ctrl.Booking.ListReservations(r.Context())
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", toReservationDTOs(list))
}

func (ctrl *Controller) NextReservation(w http.ResponseWriter, r *http.Request) {
	next, err := ctrl.Booking.NextReservation(r.Context(), civil.DateOf(ctrl.Clock.Now()))
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	if next == nil {
		writeError(ctrl.Log, w, fmt.Errorf("%w: no upcoming reservations", service.ErrReservationNotFound))
		return
	}
	writeSuccess(w, http.StatusOK, "", toReservationDTO(next))
}

func (ctrl *Controller) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctrl.Log, w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Teacher) == "" {
		writeError(ctrl.Log, w, fmt.Errorf("%w: teacher is required", errBadRequest))
		return
	}
	date, at, err := parseSlot(req.Date, req.Time)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	res, err := ctrl.Booking.CreateByName(r.Context(), req.Teacher, date, at)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "reservation created", toReservationDTO(res))
}

func (ctrl *Controller) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id, err := reservationID(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	if err := ctrl.Booking.CancelByID(r.Context(), id); err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ctrl *Controller) RescheduleReservation(w http.ResponseWriter, r *http.Request) {
	id, err := reservationID(r)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	var req rescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctrl.Log, w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	date, at, err := parseSlot(req.Date, req.Time)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}

	res, err := ctrl.Booking.RescheduleByID(r.Context(), id, date, at)
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "reservation rescheduled", toReservationDTO(res))
}

func (ctrl *Controller) ProbeReminder(w http.ResponseWriter, r *http.Request) {
	id, err := ctrl.Reminders.ScheduleProbe(r.Context())
	if err != nil {
		writeError(ctrl.Log, w, err)
		return
	}
	writeSuccess(w, http.StatusAccepted, "probe reminder scheduled", probeResponse{TaskID: id})
}

// reservationID достаёт и проверяет {id} из пути
func reservationID(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: reservation id %q", errBadRequest, raw)
	}
	return id.String(), nil
}
