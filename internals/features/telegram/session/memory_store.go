package session

import (
	"context"
	"sync"
	"time"
)

type memItem struct {
	s         Session
	expiresAt time.Time
}

type MemoryStore struct {
	mu    sync.Mutex
	items map[int64]memItem
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{items: map[int64]memItem{}, ttl: ttl, now: time.Now}
}

func (m *MemoryStore) Get(_ context.Context, chatID int64) (Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[chatID]
	if !ok {
		return Session{}, false, nil
	}
	if !m.now().Before(it.expiresAt) {
		delete(m.items, chatID)
		return Session{}, false, nil
	}
	return it.s, true, nil
}

func (m *MemoryStore) Set(_ context.Context, chatID int64, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[chatID] = memItem{s: s, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, chatID)
	return nil
}

// Sweep membuang sesi kadaluarsa; dipanggil periodik oleh pemilik store.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	n := 0
	for id, it := range m.items {
		if !now.Before(it.expiresAt) {
			delete(m.items, id)
			n++
		}
	}
	return n
}
