package common

import (
	"fmt"
	"testing"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/service"
	"github.com/golang-sql/civil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	monday = civil.Date{Year: 2025, Month: time.October, Day: 6}
	ana    = &model.Teacher{ID: 7, Name: "Ana", Subject: "Inglés", Availability: []model.Availability{
		{Day: time.Monday, StartTime: "09:00", EndTime: "12:00"},
		{Day: time.Thursday, StartTime: "15:00", EndTime: "17:00"},
	}}
)

func TestSlotData(t *testing.T) {
	data := SlotData(SlotPrefix, 7, monday, civil.Time{Hour: 9, Minute: 30})
	assert.Equal(t, "slot:7:20251006:0930", data)

	id, d, at, err := ParseSlot(data, SlotPrefix)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, monday, d)
	assert.Equal(t, civil.Time{Hour: 9, Minute: 30}, at)

	_, _, _, err = ParseSlot("slot:7:20251006", SlotPrefix)
	assert.ErrorIs(t, err, ErrInvalidFormat)
	_, _, _, err = ParseSlot("slot:x:20251006:0930", SlotPrefix)
	assert.ErrorIs(t, err, ErrInvalidFormat)
	_, _, _, err = ParseSlot("slot:7:20251306:0930", SlotPrefix)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestDayAndRescheduleData(t *testing.T) {
	id, d, err := ParseDay(DayData(3, monday))
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	assert.Equal(t, monday, d)

	d, err = ParseRescheduleDay(RescheduleDayData(monday))
	require.NoError(t, err)
	assert.Equal(t, monday, d)

	d, at, err := ParseRescheduleSlot(RescheduleSlotData(RescheduleDoPrefix, monday, civil.Time{Hour: 11}), RescheduleDoPrefix)
	require.NoError(t, err)
	assert.Equal(t, monday, d)
	assert.Equal(t, civil.Time{Hour: 11}, at)
}

func TestParseIDAndString(t *testing.T) {
	id, err := ParseID("tch:12", TeacherPrefix)
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	_, err = ParseID("tch:", TeacherPrefix)
	assert.Error(t, err)

	s, err := ParseString("res:abc", ReservationPrefix)
	require.NoError(t, err)
	assert.Equal(t, "abc", s)

	_, err = ParseString("res:", ReservationPrefix)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestCallbackDataFitsTelegramLimit(t *testing.T) {
	id := uuid.NewString()
	long := []string{
		CancelConfirmPrefix + id,
		ReschedulePrefix + id,
		SlotData(BookPrefix, 1<<40, monday, civil.Time{Hour: 23, Minute: 59}),
		RescheduleSlotData(RescheduleDoPrefix, monday, civil.Time{Hour: 23, Minute: 59}),
	}
	for _, data := range long {
		assert.LessOrEqual(t, len(data), keyboard.MaxCallbackData, data)
	}
}

func TestUpcomingDates(t *testing.T) {
	dates := UpcomingDates(ana, monday, 14)

	require.Len(t, dates, 4)
	assert.Equal(t, monday, dates[0])
	assert.Equal(t, monday.AddDays(3), dates[1])
	assert.Equal(t, monday.AddDays(7), dates[2])
}

func TestBuildSlotGridScreen_BookedSlotsNotSelectable(t *testing.T) {
	slots := []model.Slot{
		{Time: civil.Time{Hour: 9}},
		{Time: civil.Time{Hour: 10}, IsBooked: true},
		{Time: civil.Time{Hour: 11}},
	}

	text, kb := BuildSlotGridScreen("Ana", slots, func(s model.Slot) string {
		return SlotData(SlotPrefix, ana.ID, monday, s.Time)
	}, DaysPrefix+"7")

	assert.Contains(t, text, "Свободно 2 слота из 3")
	row := kb.InlineKeyboard[0]
	require.Len(t, row, 3)
	assert.Equal(t, "slot:7:20251006:0900", row[0].CallbackData)
	assert.Equal(t, "🔒 10:00", row[1].Text)
	assert.Equal(t, keyboard.NoopData, row[1].CallbackData)
}

func TestBuildTeachersScreen_Pagination(t *testing.T) {
	var teachers []*model.Teacher
	for i := 1; i <= TeachersPageSize+2; i++ {
		teachers = append(teachers, &model.Teacher{ID: int64(i), Name: fmt.Sprintf("T%d", i), Subject: "X"})
	}

	_, kb := BuildTeachersScreen(teachers, 1)

	// 2 учителя + пагинация + меню
	require.Len(t, kb.InlineKeyboard, 4)
	assert.Equal(t, "tch:9", kb.InlineKeyboard[0][0].CallbackData)

	text, _ := BuildTeachersScreen(nil, 0)
	assert.Contains(t, text, "нет учителей")
}

func TestBuildReservationCardScreen(t *testing.T) {
	r := &model.Reservation{ID: "r1", TeacherName: "Ana <3", Subject: "Inglés", Date: monday, Time: civil.Time{Hour: 9}}

	text, kb := BuildReservationCardScreen(r)

	assert.Contains(t, text, "Ana &lt;3")
	assert.Contains(t, text, "Понедельник, 06.10.2025")
	assert.Equal(t, "rsch:r1", kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "rcancel:r1", kb.InlineKeyboard[0][1].CallbackData)
}

func TestErrorMessage(t *testing.T) {
	lost := &service.RescheduleLostSlotError{Old: &model.Reservation{}, Cause: service.ErrConflict}

	assert.Contains(t, ErrorMessage(lost), "Старая запись отменена")
	assert.Contains(t, ErrorMessage(fmt.Errorf("x: %w", service.ErrConflict)), "уже занят")
	assert.Contains(t, ErrorMessage(service.ErrInvalidSlot), "недоступно")
	assert.Equal(t, "❌ Произошла ошибка", ErrorMessage(fmt.Errorf("boom")))
}
