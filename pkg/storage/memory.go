package storage

import (
	"fmt"
	"sort"
	"sync"
)

// MemoryBackend implements Backend with in-memory maps. Not persistent;
// useful for tests and journal-less runs.
type MemoryBackend struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{buckets: make(map[string]map[string][]byte)}
}

func (m *MemoryBackend) CreateBucket(name []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.buckets[string(name)]; !exists {
		m.buckets[string(name)] = make(map[string][]byte)
	}
	return nil
}

func (m *MemoryBackend) Put(bucket, key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bkt, exists := m.buckets[string(bucket)]
	if !exists {
		return fmt.Errorf("%s: %w", bucket, ErrBucketNotFound)
	}

	// Copy so the caller can reuse its buffer.
	stored := make([]byte, len(value))
	copy(stored, value)
	bkt[string(key)] = stored
	return nil
}

func (m *MemoryBackend) Get(bucket, key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bkt, exists := m.buckets[string(bucket)]
	if !exists {
		return nil, fmt.Errorf("%s: %w", bucket, ErrBucketNotFound)
	}

	value, exists := bkt[string(key)]
	if !exists {
		return nil, nil
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *MemoryBackend) ForEach(bucket []byte, fn func(k, v []byte) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bkt, exists := m.buckets[string(bucket)]
	if !exists {
		return fmt.Errorf("%s: %w", bucket, ErrBucketNotFound)
	}

	keys := make([]string, 0, len(bkt))
	for k := range bkt {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := fn([]byte(k), bkt[k]); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemoryBackend) Close() error {
	return nil
}
