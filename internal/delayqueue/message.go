package delayqueue

import (
	"fmt"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
)

const (
	reminderTitle     = "Напоминание о занятии"
	confirmationTitle = "Запись подтверждена"
)

// TitleFor возвращает заголовок уведомления по типу задачи
func TitleFor(kind model.ReminderKind) string {
	if kind == model.ReminderKindConfirmation {
		return confirmationTitle
	}
	return reminderTitle
}

// BodyFor возвращает текст уведомления. Если сообщение не задано, собирается из данных задачи.
func BodyFor(task *model.ReminderTask) string {
	if task.Message != "" {
		return task.Message
	}
	return fmt.Sprintf("Не забудьте! Сегодня в %s занятие по %s с %s.", task.Time, task.Subject, task.TeacherName)
}
