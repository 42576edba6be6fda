package api

import (
	"fmt"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/golang-sql/civil"
)

type availabilityDTO struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type teacherDTO struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Subject      string            `json:"subject"`
	Email        string            `json:"email,omitempty"`
	Availability []availabilityDTO `json:"availability"`
}

type slotDTO struct {
	Time     string `json:"time"`
	IsBooked bool   `json:"isBooked"`
}

type reservationDTO struct {
	ID          string `json:"id"`
	TeacherName string `json:"teacherName"`
	Subject     string `json:"subject"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

type createReservationRequest struct {
	Teacher string `json:"teacher"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

type rescheduleRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type probeResponse struct {
	TaskID string `json:"taskId"`
}

func toTeacherDTO(t *model.Teacher) teacherDTO {
	out := teacherDTO{
		ID:           t.ID,
		Name:         t.Name,
		Subject:      t.Subject,
		Email:        t.Email,
		Availability: make([]availabilityDTO, 0, len(t.Availability)),
	}
	for _, a := range t.Availability {
		out.Availability = append(out.Availability, availabilityDTO{
			Day:       a.Day.String(),
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
		})
	}
	return out
}

func toSlotDTOs(slots []model.Slot) []slotDTO {
	out := make([]slotDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotDTO{Time: s.Label(), IsBooked: s.IsBooked})
	}
	return out
}

func toReservationDTO(r *model.Reservation) reservationDTO {
	return reservationDTO{
		ID:          r.ID,
		TeacherName: r.TeacherName,
		Subject:     r.Subject,
		Date:        r.Date.String(),
		Time:        model.FormatClock(r.Time),
	}
}

func toReservationDTOs(list []*model.Reservation) []reservationDTO {
	out := make([]reservationDTO, 0, len(list))
	for _, r := range list {
		out = append(out, toReservationDTO(r))
	}
	return out
}

// parseSlot разбирает пару YYYY-MM-DD / HH:MM из запроса
func parseSlot(date, clock string) (civil.Date, civil.Time, error) {
	d, err := model.ParseDate(date)
	if err != nil {
		return civil.Date{}, civil.Time{}, fmt.Errorf("%w: date %q", errBadRequest, date)
	}
	t, err := model.ParseClock(clock)
	if err != nil {
		return civil.Date{}, civil.Time{}, fmt.Errorf("%w: time %q", errBadRequest, clock)
	}
	return d, t, nil
}
