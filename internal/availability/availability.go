// Package availability генерирует слоты из недельных окон доступности учителя.
package availability

import (
	"sort"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/golang-sql/civil"
)

// DefaultSlotDuration используется, если длительность не задана или не положительна
const DefaultSlotDuration = 60 * time.Minute

// SlotsFor возвращает упорядоченные времена начала слотов для даты.
// Окна с неразбираемым временем или пустым интервалом пропускаются.
// Последний неполный слот (start+d > end) не выдаётся.
func SlotsFor(date civil.Date, windows []model.Availability, slotDuration time.Duration) []civil.Time {
	step := int(slotDuration / time.Minute)
	if step <= 0 {
		step = int(DefaultSlotDuration / time.Minute)
	}

	day := model.Weekday(date)
	seen := make(map[int]struct{})
	var minutes []int

	for _, w := range windows {
		if w.Day != day {
			continue
		}
		start, ok := parseMinutes(w.StartTime)
		if !ok {
			continue
		}
		end, ok := parseMinutes(w.EndTime)
		if !ok || start >= end {
			continue
		}
		for m := start; m+step <= end; m += step {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			minutes = append(minutes, m)
		}
	}

	sort.Ints(minutes)

	out := make([]civil.Time, 0, len(minutes))
	for _, m := range minutes {
		out = append(out, model.ClockFromMinutes(m))
	}
	return out
}

// Contains проверяет, входит ли время в сетку слотов даты
func Contains(date civil.Date, windows []model.Availability, slotDuration time.Duration, t civil.Time) bool {
	want := model.ClockMinutes(t)
	for _, s := range SlotsFor(date, windows, slotDuration) {
		if model.ClockMinutes(s) == want {
			return true
		}
	}
	return false
}

func parseMinutes(s string) (int, bool) {
	t, err := model.ParseClock(s)
	if err != nil {
		return 0, false
	}
	return model.ClockMinutes(t), true
}
