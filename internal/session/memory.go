package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore хранит сессии в памяти процесса, в cookie только id
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
	cookie   CookieOptions
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration, cookie CookieOptions) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
		cookie:   cookie,
		now:      time.Now,
	}
}

func (m *MemoryStore) Get(r *http.Request) (*Session, error) {
	id := readCookie(r)
	if id == "" {
		return &Session{}, nil
	}

	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok || !m.now().Before(s.ExpiresAt) {
		return &Session{}, nil
	}
	return &s, nil
}

func (m *MemoryStore) Set(w http.ResponseWriter, _ *http.Request, s *Session) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.ExpiresAt = m.now().Add(m.ttl)

	m.mu.Lock()
	m.sessions[s.ID] = *s
	m.mu.Unlock()

	m.cookie.write(w, s.ID, s.ExpiresAt)
	return nil
}

func (m *MemoryStore) Clear(w http.ResponseWriter, r *http.Request) error {
	if id := readCookie(r); id != "" {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
	}
	m.cookie.expire(w)
	return nil
}

// Purge удаляет истёкшие сессии и возвращает их количество
func (m *MemoryStore) Purge() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	purged := 0
	for id, s := range m.sessions {
		if !now.Before(s.ExpiresAt) {
			delete(m.sessions, id)
			purged++
		}
	}
	return purged
}

// Len количество хранимых сессий
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
