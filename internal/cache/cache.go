// Package cache provides the TTL result cache that sits in front of every
// upstream call and aggregated playlist build.
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

const DefaultTTL = 10 * time.Minute

// Store holds JSON-encoded values under string keys. A Get after the entry's
// TTL has elapsed reports a miss; the stale entry is overwritten by the next
// Set on the same key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

// GetOrCompute returns the cached value for key, or invokes producer, stores
// its result and returns it. Producer errors are returned as-is and nothing
// is stored, so producers that must never fail the caller (the upstream
// adapters) return a safe fallback instead of an error.
//
// Two concurrent misses on the same key may both invoke producer; the second
// result wins. Callers must not rely on single invocation.
func GetOrCompute[T any](ctx context.Context, s Store, key string, producer func(context.Context) (T, error)) (T, error) {
	if raw, ok := s.Get(ctx, key); ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
		// Undecodable entry: treat as a miss and recompute.
	}

	v, err := producer(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if raw, err := json.Marshal(v); err == nil {
		s.Set(ctx, key, raw)
	}
	return v, nil
}

type memoryEntry struct {
	data    []byte
	created time.Time
}

// MemoryStore is the default in-process store. Expired entries stay in the
// map until a later Set overwrites them; there is no background sweep, so the
// key space is expected to stay small (one entry per distinct upstream
// request shape plus one per feed).
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]memoryEntry
	ttl  time.Duration
	now  func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		data: make(map[string]memoryEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data[key]
	if !ok {
		return nil, false
	}
	if m.now().Sub(entry.created) >= m.ttl {
		return nil, false
	}
	return entry.data, true
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) {
	m.mu.Lock()
	m.data[key] = memoryEntry{data: value, created: m.now()}
	m.mu.Unlock()
}

// Len reports the number of entries currently held, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}
