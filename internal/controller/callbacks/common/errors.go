package common

import (
	"errors"

	"github.com/Freeeeeet/tutoring_bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrRescheduleLostSlot):
		return "⚠️ Старая запись отменена, но новый слот занять не удалось. Выберите другое время."
	case errors.Is(err, service.ErrConflict):
		return "❌ Этот слот уже занят. Обновите список и выберите другое время."
	case errors.Is(err, service.ErrInvalidSlot):
		return "❌ Это время недоступно у учителя."
	case errors.Is(err, service.ErrDirectoryUnavailable):
		return "❌ Список учителей сейчас недоступен. Попробуйте позже."
	case errors.Is(err, service.ErrTeacherNotFound):
		return "❌ Учитель не найден"
	case errors.Is(err, service.ErrReservationNotFound):
		return "❌ Запись не найдена"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	default:
		return "❌ Произошла ошибка"
	}
}
