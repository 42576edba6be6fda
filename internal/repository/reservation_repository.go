package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/repository/base"
	"github.com/golang-sql/civil"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reservationColumns = `id::text, teacher_name, subject, slot_date, slot_time, created_at`

// ReservationRepository - журнал подтверждённых бронирований в PostgreSQL.
// Время занятия хранится как минуты от полуночи.
type ReservationRepository struct {
	*base.Repository
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{Repository: base.NewRepository(pool)}
}

// Insert сохраняет бронирование. Коллизия естественного ключа даёт ErrDuplicateReservation.
func (r *ReservationRepository) Insert(ctx context.Context, res *model.Reservation) error {
	query := `
		INSERT INTO reservations (id, teacher_name, subject, slot_date, slot_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.QueryRow(
		ctx, query,
		res.ID,
		res.TeacherName,
		res.Subject,
		res.Date.In(time.UTC),
		model.ClockMinutes(res.Time),
	).Scan(&res.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return ErrDuplicateReservation
		}
		return fmt.Errorf("insert reservation: %w", err)
	}

	return nil
}

// DeleteByID удаляет бронирование, возвращает false если его не было
func (r *ReservationRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete reservation: %w", err)
	}
	return affected > 0, nil
}

// GetByID получает бронирование по ID
func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	res, err := scanReservation(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation by id: %w", err)
	}

	return res, nil
}

// ListAll возвращает все бронирования по возрастанию (дата, время)
func (r *ReservationRepository) ListAll(ctx context.Context) ([]*model.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations ORDER BY slot_date, slot_time`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return collectReservations(rows)
}

// ListFor возвращает бронирования учителя на дату
func (r *ReservationRepository) ListFor(ctx context.Context, teacherName string, date civil.Date) ([]*model.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE teacher_name = $1 AND slot_date = $2
		ORDER BY slot_time
	`

	rows, err := r.Query(ctx, query, teacherName, date.In(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("list reservations for teacher: %w", err)
	}
	return collectReservations(rows)
}

// FindNext возвращает ближайшее бронирование начиная с даты
func (r *ReservationRepository) FindNext(ctx context.Context, onOrAfter civil.Date) (*model.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE slot_date >= $1
		ORDER BY slot_date, slot_time
		LIMIT 1
	`

	res, err := scanReservation(r.QueryRow(ctx, query, onOrAfter.In(time.UTC)))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find next reservation: %w", err)
	}

	return res, nil
}

func scanReservation(row pgx.Row) (*model.Reservation, error) {
	var (
		res     model.Reservation
		date    time.Time
		minutes int
	)
	if err := row.Scan(&res.ID, &res.TeacherName, &res.Subject, &date, &minutes, &res.CreatedAt); err != nil {
		return nil, err
	}
	res.Date = civil.DateOf(date)
	res.Time = model.ClockFromMinutes(minutes)
	return &res, nil
}

func collectReservations(rows pgx.Rows) ([]*model.Reservation, error) {
	return base.Collect(rows, scanReservation)
}
