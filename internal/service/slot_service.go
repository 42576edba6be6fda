package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/availability"
	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/golang-sql/civil"
	"go.uber.org/zap"
)

// SlotService сопоставляет сетку доступности учителя с журналом бронирований
type SlotService struct {
	store        ReservationStore
	teachers     *TeacherService
	slotDuration time.Duration
	logger       *zap.Logger
}

func NewSlotService(store ReservationStore, teachers *TeacherService, slotDuration time.Duration, logger *zap.Logger) *SlotService {
	return &SlotService{
		store:        store,
		teachers:     teachers,
		slotDuration: slotDuration,
		logger:       logger,
	}
}

// Resolve возвращает слоты учителя на дату. Занятые слоты присутствуют с IsBooked=true.
func (s *SlotService) Resolve(ctx context.Context, teacher *model.Teacher, date civil.Date) ([]model.Slot, error) {
	candidates := availability.SlotsFor(date, teacher.Availability, s.slotDuration)
	if len(candidates) == 0 {
		return nil, nil
	}

	booked, err := s.store.ListFor(ctx, teacher.Name, date)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	taken := make(map[int]struct{}, len(booked))
	for _, r := range booked {
		taken[model.ClockMinutes(r.Time)] = struct{}{}
	}

	slots := make([]model.Slot, 0, len(candidates))
	for _, t := range candidates {
		_, isBooked := taken[model.ClockMinutes(t)]
		slots = append(slots, model.Slot{Time: t, IsBooked: isBooked})
	}

	return slots, nil
}

// ResolveByName ищет учителя в справочнике и возвращает его слоты
func (s *SlotService) ResolveByName(ctx context.Context, name string, date civil.Date) ([]model.Slot, error) {
	teacher, err := s.teachers.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.Resolve(ctx, teacher, date)
}
