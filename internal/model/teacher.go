package model

import "time"

// Availability описывает окно доступности учителя в конкретный день недели.
// StartTime и EndTime хранятся в виде "HH:MM", как в исходном документе,
// и разбираются только при генерации слотов.
type Availability struct {
	Day       time.Weekday `json:"day"`
	StartTime string       `json:"start_time"`
	EndTime   string       `json:"end_time"`
}

// Teacher представляет учителя из справочника (только для чтения)
type Teacher struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Subject      string         `json:"subject"`
	Email        string         `json:"email"`
	Availability []Availability `json:"availability"`
}

// AvailabilityFor возвращает окна доступности для дня недели
func (t *Teacher) AvailabilityFor(day time.Weekday) []Availability {
	var out []Availability
	for _, a := range t.Availability {
		if a.Day == day {
			out = append(out, a)
		}
	}
	return out
}
