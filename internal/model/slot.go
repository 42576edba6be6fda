package model

import "github.com/golang-sql/civil"

// Slot - вычисляемый слот на конкретную дату, не хранится в БД
type Slot struct {
	Time     civil.Time `json:"time"`
	IsBooked bool       `json:"is_booked"`
}

// Label возвращает время слота в формате HH:MM
func (s Slot) Label() string {
	return FormatClock(s.Time)
}
