package repository

import "errors"

var (
	// ErrDuplicateReservation - запись с таким (учитель, дата, время) уже существует
	ErrDuplicateReservation = errors.New("duplicate reservation")

	// ErrDirectoryUnavailable - справочник учителей отсутствует, повреждён или не прошёл валидацию
	ErrDirectoryUnavailable = errors.New("teacher directory unavailable")
)
