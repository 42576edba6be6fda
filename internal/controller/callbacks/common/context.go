package common

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandlerContext - всё, что нужно обработчику одного callback
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Message    *models.Message // nil, если сообщение недоступно боту
	TelegramID int64
	ChatID     int64
}

func NewHandlerContext(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) *HandlerContext {
	hc := &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		TelegramID: callback.From.ID,
	}
	if msg := callback.Message.Message; msg != nil {
		hc.Message = msg
		hc.ChatID = msg.Chat.ID
	}
	return hc
}

// Answer снимает "часики" с кнопки, text показывается всплывающей подсказкой
func (hc *HandlerContext) Answer(text string) {
	hc.answer(text, false)
}

// AnswerAlert показывает text модальным окном
func (hc *HandlerContext) AnswerAlert(text string) {
	hc.answer(text, true)
}

func (hc *HandlerContext) answer(text string, alert bool) {
	_, _ = hc.Bot.AnswerCallbackQuery(hc.Ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: hc.Callback.ID,
		Text:            text,
		ShowAlert:       alert,
	})
}

// Edit заменяет текст и клавиатуру сообщения с кнопкой (HTML)
func (hc *HandlerContext) Edit(text string, kb *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	params := &bot.EditMessageTextParams{
		ChatID:    hc.ChatID,
		MessageID: hc.Message.ID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}

	_, err := hc.Bot.EditMessageText(hc.Ctx, params)
	return err
}
