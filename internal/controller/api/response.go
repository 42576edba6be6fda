package api

import (
	"errors"
	"net/http"

	"github.com/Freeeeeet/tutoring_bot/internal/service"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	headerContentType   = "Content-Type"
	mimeApplicationJSON = "application/json"
)

// errBadRequest - некорректный ввод клиента
var errBadRequest = errors.New("bad request")

type responseDTO struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errorDTO struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set(headerContentType, mimeApplicationJSON)
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, code int, message string, data interface{}) {
	writeJSON(w, code, responseDTO{Success: true, Message: message, Data: data})
}

// writeError переводит ошибку сервиса в HTTP-статус и машинный код
func writeError(log *zap.Logger, w http.ResponseWriter, err error) {
	code, errCode := statusFor(err)
	if code >= http.StatusInternalServerError {
		log.Error("Request failed", zap.Int("status", code), zap.Error(err))
	} else {
		log.Debug("Request rejected", zap.Int("status", code), zap.Error(err))
	}

	writeJSON(w, code, errorDTO{
		Success: false,
		Code:    errCode,
		Message: err.Error(),
	})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrRescheduleLostSlot):
		return http.StatusConflict, "reschedule_lost_slot"
	case errors.Is(err, service.ErrInvalidSlot):
		return http.StatusUnprocessableEntity, "invalid_slot"
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, service.ErrDirectoryUnavailable):
		return http.StatusServiceUnavailable, "directory_unavailable"
	case errors.Is(err, service.ErrTeacherNotFound), errors.Is(err, service.ErrReservationNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, "bad_request"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
