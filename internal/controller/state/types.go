package state

import "time"

// UserState - шаг диалога, в котором находится пользователь
type UserState string

const (
	StateNone UserState = ""

	// Перенос записи: выбрана запись, ждём дату и слот
	StateRescheduling UserState = "rescheduling"
)

// Ключи данных диалога
const (
	KeyReservationID = "reservation_id"
)

// DefaultTTL - через сколько брошенный диалог считается устаревшим
const DefaultTTL = 30 * time.Minute

// session - диалог одного пользователя
type session struct {
	state     UserState
	data      map[string]interface{}
	touchedAt time.Time
}
