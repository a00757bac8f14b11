package storage

import (
	"context"
	"sync"
)

// Store is the persistence interface the trip repository and session depend on.
// It is a flat string-to-string key-value store. Backends: the .trips/ directory
// (Storage), Memory, badgerstore and redisstore.
type Store interface {
	// Read returns the value stored under key, or false if there is none.
	// Backend failures are reported as absent.
	Read(ctx context.Context, key string) (string, bool)
	// Write stores value under key, replacing any prior value.
	Write(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Memory is an in-process Store. It is used by tests and by sessions that
// should not touch the disk.
type Memory struct {
	mu     sync.Mutex
	data   map[string]string
	writes int

	// WriteErr, when set, is returned by Write and Delete without changing anything.
	WriteErr error
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Read implements Store.
func (m *Memory) Read(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

// Write implements Store.
func (m *Memory) Write(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.data[key] = value
	m.writes++
	return nil
}

// Delete implements Store.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	delete(m.data, key)
	return nil
}

// Writes returns how many successful writes the store has seen.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

var (
	_ Store = (*Memory)(nil)
	_ Store = (*Storage)(nil)
)
