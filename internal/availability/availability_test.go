package availability

import (
	"testing"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/golang-sql/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-10-06 - понедельник
var monday = civil.Date{Year: 2025, Month: time.October, Day: 6}

func labels(ts []civil.Time) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, model.FormatClock(t))
	}
	return out
}

func TestSlotsFor_SingleRange(t *testing.T) {
	windows := []model.Availability{{Day: time.Monday, StartTime: "09:00", EndTime: "12:00"}}

	got := SlotsFor(monday, windows, 60*time.Minute)

	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, labels(got))
}

func TestSlotsFor_PartialTrailingSlotExcluded(t *testing.T) {
	windows := []model.Availability{{Day: time.Monday, StartTime: "09:00", EndTime: "10:30"}}

	got := SlotsFor(monday, windows, 60*time.Minute)

	assert.Equal(t, []string{"09:00"}, labels(got))
}

func TestSlotsFor_CountMatchesFloor(t *testing.T) {
	cases := []struct {
		start, end string
		step       time.Duration
		want       int
	}{
		{"09:00", "12:00", 60 * time.Minute, 3},
		{"09:00", "12:00", 45 * time.Minute, 4},
		{"08:15", "09:00", 15 * time.Minute, 3},
		{"13:00", "13:59", 60 * time.Minute, 0},
	}

	for _, c := range cases {
		windows := []model.Availability{{Day: time.Monday, StartTime: c.start, EndTime: c.end}}
		got := SlotsFor(monday, windows, c.step)
		assert.Len(t, got, c.want, "%s-%s step %s", c.start, c.end, c.step)
	}
}

func TestSlotsFor_OtherWeekdayIsEmpty(t *testing.T) {
	windows := []model.Availability{{Day: time.Tuesday, StartTime: "09:00", EndTime: "12:00"}}

	assert.Empty(t, SlotsFor(monday, windows, time.Hour))
	assert.Empty(t, SlotsFor(monday, nil, time.Hour))
}

func TestSlotsFor_InvalidEntriesSkipped(t *testing.T) {
	windows := []model.Availability{
		{Day: time.Monday, StartTime: "9am", EndTime: "12:00"},
		{Day: time.Monday, StartTime: "12:00", EndTime: "11:00"},
		{Day: time.Monday, StartTime: "14:00", EndTime: "14:00"},
		{Day: time.Monday, StartTime: "15:00", EndTime: "16:00"},
	}

	assert.Equal(t, []string{"15:00"}, labels(SlotsFor(monday, windows, time.Hour)))
}

func TestSlotsFor_UnionSortedWithoutDuplicates(t *testing.T) {
	windows := []model.Availability{
		{Day: time.Monday, StartTime: "14:00", EndTime: "16:00"},
		{Day: time.Monday, StartTime: "09:00", EndTime: "11:00"},
		{Day: time.Monday, StartTime: "10:00", EndTime: "12:00"},
	}

	got := SlotsFor(monday, windows, time.Hour)

	assert.Equal(t, []string{"09:00", "10:00", "11:00", "14:00", "15:00"}, labels(got))
}

func TestSlotsFor_NonPositiveDurationFallsBack(t *testing.T) {
	windows := []model.Availability{{Day: time.Monday, StartTime: "09:00", EndTime: "11:00"}}

	assert.Equal(t, labels(SlotsFor(monday, windows, DefaultSlotDuration)), labels(SlotsFor(monday, windows, 0)))
	assert.Len(t, SlotsFor(monday, windows, -time.Minute), 2)
}

func TestSlotsFor_Deterministic(t *testing.T) {
	windows := []model.Availability{
		{Day: time.Monday, StartTime: "09:00", EndTime: "12:00"},
		{Day: time.Monday, StartTime: "10:30", EndTime: "13:30"},
	}

	first := SlotsFor(monday, windows, 30*time.Minute)
	second := SlotsFor(monday, windows, 30*time.Minute)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestContains(t *testing.T) {
	windows := []model.Availability{{Day: time.Monday, StartTime: "09:00", EndTime: "12:00"}}

	assert.True(t, Contains(monday, windows, time.Hour, civil.Time{Hour: 11}))
	assert.False(t, Contains(monday, windows, time.Hour, civil.Time{Hour: 9, Minute: 30}))
	assert.False(t, Contains(monday, windows, time.Hour, civil.Time{Hour: 12}))
}
