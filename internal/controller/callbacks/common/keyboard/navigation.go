package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// Общие callback'и навигации
const (
	BackToMainData = "back_to_main"
	NoopData       = "noop"
)

func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Назад", callbackData)
}

func BackToMainButton() models.InlineKeyboardButton {
	return Button("🏠 В главное меню", BackToMainData)
}

func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Отмена", callbackData)
}

func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Подтвердить", callbackData)
}

func (b *Builder) AddBackButton(callbackData string) *Builder {
	return b.Row(BackButton(callbackData))
}

func (b *Builder) AddBackToMainButton() *Builder {
	return b.Row(BackToMainButton())
}

// AddConfirmCancel добавляет ряд Подтвердить/Отмена
func (b *Builder) AddConfirmCancel(confirmCallback, cancelCallback string) *Builder {
	return b.Row(ConfirmButton(confirmCallback), CancelButton(cancelCallback))
}

// PaginationButtons - ряд "⬅️ N/M ➡️" для страницы currentPage (с нуля).
// Для одной страницы ряд не нужен.
func PaginationButtons(prefix string, currentPage, totalPages int) []models.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}

	var buttons []models.InlineKeyboardButton
	if currentPage > 0 {
		buttons = append(buttons, Button("⬅️", fmt.Sprintf("%s%d", prefix, currentPage-1)))
	}
	buttons = append(buttons, Button(fmt.Sprintf("📄 %d/%d", currentPage+1, totalPages), NoopData))
	if currentPage < totalPages-1 {
		buttons = append(buttons, Button("➡️", fmt.Sprintf("%s%d", prefix, currentPage+1)))
	}

	return buttons
}

func (b *Builder) AddPagination(prefix string, currentPage, totalPages int) *Builder {
	return b.Row(PaginationButtons(prefix, currentPage, totalPages)...)
}
