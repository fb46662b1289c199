package storage

import (
	"context"
	"fmt"
	"sync"
)

var _ Medium = (*MemoryMedium)(nil)

// MemoryMedium is an in-process Medium with the same quota semantics as KVRepo.
type MemoryMedium struct {
	mu    sync.RWMutex
	data  map[string]string
	quota int64
	used  int64
}

// NewMemoryMedium creates an empty MemoryMedium. A quota of zero or less
// disables the limit.
func NewMemoryMedium(quota int64) *MemoryMedium {
	return &MemoryMedium{
		data:  make(map[string]string),
		quota: quota,
	}
}

// Get returns the value stored under key.
func (m *MemoryMedium) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	return value, ok, nil
}

// Set replaces the value under key.
func (m *MemoryMedium) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	used := m.used
	if old, ok := m.data[key]; ok {
		used -= entrySize(key, old)
	}
	need := used + entrySize(key, value)
	if m.quota > 0 && need > m.quota {
		return fmt.Errorf("%w: need %d bytes, quota %d", ErrQuotaExceeded, need, m.quota)
	}

	m.data[key] = value
	m.used = need
	return nil
}

// Remove deletes key.
func (m *MemoryMedium) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.data[key]; ok {
		m.used -= entrySize(key, old)
		delete(m.data, key)
	}
	return nil
}

// Usage returns the number of bytes currently counted against the quota.
func (m *MemoryMedium) Usage(context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.used, nil
}

// Quota returns the configured capacity in bytes.
func (m *MemoryMedium) Quota() int64 {
	return m.quota
}
