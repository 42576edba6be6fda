package service

import (
	"fmt"

	"github.com/golang-sql/civil"
)

// FormatDate форматирует дату как ДД.ММ.ГГГГ
func FormatDate(d civil.Date) string {
	return fmt.Sprintf("%02d.%02d.%04d", d.Day, int(d.Month), d.Year)
}
