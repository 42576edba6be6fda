package service

import (
	"context"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/golang-sql/civil"
)

// ReservationStore - журнал бронирований
type ReservationStore interface {
	Insert(ctx context.Context, res *model.Reservation) error
	DeleteByID(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	ListAll(ctx context.Context) ([]*model.Reservation, error)
	ListFor(ctx context.Context, teacherName string, date civil.Date) ([]*model.Reservation, error)
	FindNext(ctx context.Context, onOrAfter civil.Date) (*model.Reservation, error)
}

// TeacherDirectory - справочник учителей (только чтение)
type TeacherDirectory interface {
	ListTeachers(ctx context.Context) ([]*model.Teacher, error)
	FindTeacherByName(ctx context.Context, name string) (*model.Teacher, error)
	FindTeacherByID(ctx context.Context, id int64) (*model.Teacher, error)
}

// TaskQueue - механизм отложенного выполнения
type TaskQueue interface {
	Enqueue(ctx context.Context, task *model.ReminderTask) (string, error)
	Revoke(ctx context.Context, reservationID string) (int, error)
}
