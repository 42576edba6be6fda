package keyboard

import "github.com/go-telegram/bot/models"

// MaxCallbackData - лимит Telegram на размер callback_data в байтах
const MaxCallbackData = 64

// Builder собирает inline-клавиатуру по рядам
type Builder struct {
	rows [][]models.InlineKeyboardButton
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Row добавляет ряд; пустой ряд пропускается
func (b *Builder) Row(buttons ...models.InlineKeyboardButton) *Builder {
	if len(buttons) > 0 {
		b.rows = append(b.rows, buttons)
	}
	return b
}

// Grid раскладывает кнопки по рядам ширины width
func (b *Builder) Grid(width int, buttons ...models.InlineKeyboardButton) *Builder {
	if width <= 0 {
		width = 1
	}
	for start := 0; start < len(buttons); start += width {
		end := min(start+width, len(buttons))
		b.Row(buttons[start:end]...)
	}
	return b
}

func Button(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

func (b *Builder) Build() *models.InlineKeyboardMarkup {
	rows := b.rows
	if rows == nil {
		rows = [][]models.InlineKeyboardButton{}
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}
