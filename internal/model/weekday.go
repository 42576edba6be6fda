package model

import (
	"fmt"
	"strings"
	"time"
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday разбирает английское название дня недели
// (полное или трёхбуквенное, без учёта регистра)
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if wd, ok := weekdayNames[name]; ok {
		return wd, nil
	}
	if len(name) == 3 {
		for full, wd := range weekdayNames {
			if strings.HasPrefix(full, name) {
				return wd, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}
