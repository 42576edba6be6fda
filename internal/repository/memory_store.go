package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/golang-sql/civil"
)

// MemoryReservationStore - журнал бронирований в памяти (используется без DB_DSN и в тестах)
type MemoryReservationStore struct {
	mu    sync.RWMutex
	byID  map[string]*model.Reservation
	byKey map[model.ReservationKey]string
}

func NewMemoryReservationStore() *MemoryReservationStore {
	return &MemoryReservationStore{
		byID:  make(map[string]*model.Reservation),
		byKey: make(map[model.ReservationKey]string),
	}
}

func (s *MemoryReservationStore) Insert(_ context.Context, res *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := res.Key()
	if _, exists := s.byKey[key]; exists {
		return ErrDuplicateReservation
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now()
	}

	stored := *res
	s.byID[res.ID] = &stored
	s.byKey[key] = res.ID
	return nil
}

func (s *MemoryReservationStore) DeleteByID(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.byID[id]
	if !ok {
		return false, nil
	}
	delete(s.byKey, res.Key())
	delete(s.byID, id)
	return true, nil
}

func (s *MemoryReservationStore) GetByID(_ context.Context, id string) (*model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *res
	return &cp, nil
}

func (s *MemoryReservationStore) ListAll(_ context.Context) ([]*model.Reservation, error) {
	return s.filter(func(*model.Reservation) bool { return true }), nil
}

func (s *MemoryReservationStore) ListFor(_ context.Context, teacherName string, date civil.Date) ([]*model.Reservation, error) {
	return s.filter(func(r *model.Reservation) bool {
		return r.TeacherName == teacherName && r.Date == date
	}), nil
}

func (s *MemoryReservationStore) FindNext(_ context.Context, onOrAfter civil.Date) (*model.Reservation, error) {
	list := s.filter(func(r *model.Reservation) bool { return !r.Date.Before(onOrAfter) })
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// filter возвращает копии подходящих записей, упорядоченные по (дата, время)
func (s *MemoryReservationStore) filter(keep func(*model.Reservation) bool) []*model.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Reservation
	for _, r := range s.byID {
		if keep(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// MemoryTaskStore - хранилище отложенных задач в памяти
type MemoryTaskStore struct {
	mu        sync.Mutex
	tasks     map[string]*model.ReminderTask
	claimedAt map[string]time.Time
}

func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{
		tasks:     make(map[string]*model.ReminderTask),
		claimedAt: make(map[string]time.Time),
	}
}

func (s *MemoryTaskStore) Insert(_ context.Context, task *model.ReminderTask) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.ID]; exists {
		return false, nil
	}
	cp := *task
	cp.Status = model.ReminderStatusPending
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	s.tasks[task.ID] = &cp
	return true, nil
}

func (s *MemoryTaskStore) ClaimDue(_ context.Context, now time.Time, limit int) ([]*model.ReminderTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []*model.ReminderTask
	for id, t := range s.tasks {
		if t.Attempts >= model.MaxReminderAttempts {
			continue
		}
		switch t.Status {
		case model.ReminderStatusPending:
			if t.IsDue(now) {
				due = append(due, t)
			}
		case model.ReminderStatusDelivering:
			if s.claimedAt[id].Before(now.Add(-StaleClaimTimeout)) {
				due = append(due, t)
			}
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].FireAt.Before(due[j].FireAt) })
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	out := make([]*model.ReminderTask, 0, len(due))
	for _, t := range due {
		t.Status = model.ReminderStatusDelivering
		t.Attempts++
		s.claimedAt[t.ID] = now
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (s *MemoryTaskStore) MarkDelivered(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.tasks[id]; ok {
		t.Status = model.ReminderStatusDelivered
		delete(s.claimedAt, id)
	}
	return nil
}

func (s *MemoryTaskStore) MarkFailed(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.tasks[id]; ok && t.Status == model.ReminderStatusDelivering {
		t.Status = model.ReminderStatusFailed
		delete(s.claimedAt, id)
	}
	return nil
}

func (s *MemoryTaskStore) Release(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.tasks[id]; ok && t.Status == model.ReminderStatusDelivering {
		t.Status = model.ReminderStatusPending
		delete(s.claimedAt, id)
	}
	return nil
}

func (s *MemoryTaskStore) DeletePendingByReservation(_ context.Context, reservationID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, t := range s.tasks {
		if t.ReservationID != nil && *t.ReservationID == reservationID && t.Status == model.ReminderStatusPending {
			delete(s.tasks, id)
			n++
		}
	}
	return n, nil
}

func (s *MemoryTaskStore) GetByID(_ context.Context, id string) (*model.ReminderTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

// All возвращает копии всех задач, упорядоченные по времени срабатывания
func (s *MemoryTaskStore) All() []*model.ReminderTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.ReminderTask, 0, len(s.tasks))
	for _, t := range s.tasks {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FireAt.Before(out[j].FireAt) })
	return out
}
