package kvstore

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

type memoryEntry struct {
	data    []byte
	version uint64
}

// MemoryStore is a threadsafe in-memory Store, useful for tests and for
// running the portal without any backing service. Nothing survives a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (m *MemoryStore) Get(key string, into interface{}) (bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(entry.data, into); err != nil {
		return false, fmt.Errorf("error decoding value for key %s: %w", key, err)
	}
	return true, nil
}

func (m *MemoryStore) Set(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error encoding value for key %s: %w", key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{data: data, version: m.entries[key].version + 1}
	return nil
}

func (m *MemoryStore) CompareAndSwap(key string, value interface{}, expected uint64) (uint64, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return 0, fmt.Errorf("error encoding value for key %s: %w", key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries[key].version != expected {
		return 0, ErrConflict
	}
	next := expected + 1
	m.entries[key] = memoryEntry{data: data, version: next}
	return next, nil
}

func (m *MemoryStore) Version(key string) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entries[key].version, nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *MemoryStore) Keys(prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := []string{}
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (m *MemoryStore) Close() error {
	return nil
}
