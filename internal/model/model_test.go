package model

import (
	"testing"
	"time"

	"github.com/golang-sql/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	cases := map[string]time.Weekday{
		"Monday":    time.Monday,
		"monday":    time.Monday,
		"MON":       time.Monday,
		"tue":       time.Tuesday,
		" Sunday ":  time.Sunday,
		"sat":       time.Saturday,
		"Wednesday": time.Wednesday,
	}
	for in, want := range cases {
		got, err := ParseWeekday(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseWeekday("Lunes")
	assert.Error(t, err)
	_, err = ParseWeekday("mo")
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:05")
	require.NoError(t, err)
	assert.Equal(t, civil.Time{Hour: 9, Minute: 5}, c)
	assert.Equal(t, "09:05", FormatClock(c))
	assert.Equal(t, 545, ClockMinutes(c))
	assert.Equal(t, c, ClockFromMinutes(545))

	_, err = ParseClock("25:00")
	assert.Error(t, err)
	_, err = ParseClock("")
	assert.Error(t, err)
}

func TestWeekday(t *testing.T) {
	d, err := ParseDate("2025-10-06")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, Weekday(d))

	_, err = ParseDate("06.10.2025")
	assert.Error(t, err)
}

func TestReservation_Ordering(t *testing.T) {
	a := &Reservation{Date: civil.Date{Year: 2025, Month: 10, Day: 6}, Time: civil.Time{Hour: 11}}
	b := &Reservation{Date: civil.Date{Year: 2025, Month: 10, Day: 6}, Time: civil.Time{Hour: 9}}
	c := &Reservation{Date: civil.Date{Year: 2025, Month: 10, Day: 7}, Time: civil.Time{Hour: 8}}

	assert.True(t, b.Before(a))
	assert.True(t, a.Before(c))
	assert.False(t, c.Before(b))
}

func TestReservation_StartsAt(t *testing.T) {
	r := &Reservation{Date: civil.Date{Year: 2025, Month: 10, Day: 10}, Time: civil.Time{Hour: 15, Minute: 30}}

	assert.Equal(t, time.Date(2025, 10, 10, 15, 30, 0, 0, time.UTC), r.StartsAt(time.UTC))
}

func TestTeacher_AvailabilityFor(t *testing.T) {
	teacher := &Teacher{Availability: []Availability{
		{Day: time.Monday, StartTime: "09:00", EndTime: "10:00"},
		{Day: time.Tuesday, StartTime: "09:00", EndTime: "10:00"},
		{Day: time.Monday, StartTime: "14:00", EndTime: "15:00"},
	}}

	assert.Len(t, teacher.AvailabilityFor(time.Monday), 2)
	assert.Empty(t, teacher.AvailabilityFor(time.Friday))
}
