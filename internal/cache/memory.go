package cache

import (
	"sync"

	"github.com/rohmanhakim/mauvaise-langue/pkg/failure"
)

// MemoryStore is an in-memory implementation of the Store interface.
// It copies on the way in and on the way out, so callers never share
// the backing slice. Safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	data  []string
	saves int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store pre-filled with insults (which may be empty).
func NewMemoryStore(insults ...string) *MemoryStore {
	return &MemoryStore{
		data: append([]string{}, insults...),
	}
}

func (m *MemoryStore) Load() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]string{}, m.data...)
}

func (m *MemoryStore) Save(insults []string) failure.ClassifiedError {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = append([]string{}, insults...)
	m.saves++
	return nil
}

// Saves returns how many times Save was called.
// This method is primarily useful for testing.
func (m *MemoryStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.saves
}
