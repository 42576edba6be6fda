package state

import (
	"sync"
	"time"
)

// Manager хранит диалоги пользователей в памяти.
// Диалог без обращений дольше ttl считается завершённым.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*session // telegramID -> диалог
	ttl      time.Duration
	now      func() time.Time
}

func NewManager() *Manager {
	return NewManagerWithTTL(DefaultTTL, time.Now)
}

// NewManagerWithTTL - менеджер с заданным временем жизни диалога и часами
func NewManagerWithTTL(ttl time.Duration, now func() time.Time) *Manager {
	return &Manager{
		sessions: make(map[int64]*session),
		ttl:      ttl,
		now:      now,
	}
}

// live возвращает актуальный диалог, удаляя просроченный. Вызывать под mu.
func (sm *Manager) live(telegramID int64) *session {
	s, ok := sm.sessions[telegramID]
	if !ok {
		return nil
	}
	if sm.ttl > 0 && sm.now().Sub(s.touchedAt) > sm.ttl {
		delete(sm.sessions, telegramID)
		return nil
	}
	return s
}

func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if s := sm.live(telegramID); s != nil {
		return s.state
	}
	return StateNone
}

// SetState переводит диалог в состояние; StateNone завершает его
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		delete(sm.sessions, telegramID)
		return
	}

	s := sm.live(telegramID)
	if s == nil {
		s = &session{data: make(map[string]interface{})}
		sm.sessions[telegramID] = s
	}
	s.state = state
	s.touchedAt = sm.now()
}

func (sm *Manager) GetData(telegramID int64, key string) (interface{}, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	s := sm.live(telegramID)
	if s == nil {
		return nil, false
	}
	value, ok := s.data[key]
	return value, ok
}

// SetData сохраняет значение в текущем диалоге, создавая его при необходимости
func (sm *Manager) SetData(telegramID int64, key string, value interface{}) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	s := sm.live(telegramID)
	if s == nil {
		s = &session{data: make(map[string]interface{})}
		sm.sessions[telegramID] = s
	}
	s.data[key] = value
	s.touchedAt = sm.now()
}

func (sm *Manager) GetString(telegramID int64, key string) (string, bool) {
	v, ok := sm.GetData(telegramID, key)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// ClearState завершает диалог пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.sessions, telegramID)
}

// Len - число активных диалогов, просроченные не считаются
func (sm *Manager) Len() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	n := 0
	for id := range sm.sessions {
		if sm.live(id) != nil {
			n++
		}
	}
	return n
}
