package storage

import (
	"sort"
	"sync"
)

// Memory keeps items in process memory. It mimics browser storage quotas so
// that write failures can be exercised.
type Memory struct {
	mu     sync.RWMutex
	items  map[string]string
	quota  int
	closed bool
}

// NewMemory creates an empty in-memory backend. A quota of zero disables the limit.
func NewMemory(quotaBytes int) *Memory {
	return &Memory{
		items: make(map[string]string),
		quota: quotaBytes,
	}
}

// GetItem returns the value stored under key.
func (m *Memory) GetItem(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", false, ErrClosed
	}
	value, ok := m.items[key]
	return value, ok, nil
}

// SetItem stores value under key unless that would exceed the quota.
func (m *Memory) SetItem(key, value string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if m.quota > 0 {
		used := m.usedLocked()
		if previous, ok := m.items[key]; ok {
			used -= len(key) + len(previous)
		}
		if used+len(key)+len(value) > m.quota {
			return ErrQuotaExceeded
		}
	}

	m.items[key] = value
	return nil
}

// RemoveItem deletes key.
func (m *Memory) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.items, key)
	return nil
}

// Keys lists stored keys in ascending order.
func (m *Memory) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Clear removes every key.
func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.items = make(map[string]string)
	return nil
}

// Close marks the backend closed.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}

func (m *Memory) usedLocked() int {
	total := 0
	for k, v := range m.items {
		total += len(k) + len(v)
	}
	return total
}

var _ Storage = (*Memory)(nil)
