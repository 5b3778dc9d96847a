package cache

import (
	"context"
	"sync"
	"time"

	"github.com/xavierca1/coachflow/internal/entity"
	"github.com/xavierca1/coachflow/internal/infra/metrics"
)

type key struct {
	owner string
	kind  entity.Kind
}

type entry struct {
	value   []byte
	expires time.Time
	stale   bool
	version uint64
}

// Memory is a process-local QueryCache.
//
// Versions come from one counter for the whole cache, so an invalidated
// entry never returns to a version handed out earlier. Sweep drops entries
// and raises floor to the highest version it dropped; keys without an entry
// report floor.
type Memory struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[key]*entry
	seq     uint64
	floor   uint64
	now     func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		entries: make(map[key]*entry),
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, owner string, kind entity.Kind) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key{owner, kind}]
	if !ok || e.stale || e.value == nil || !m.now().Before(e.expires) {
		metrics.CacheMiss()
		return nil, false
	}
	metrics.CacheHit()
	return e.value, true
}

func (m *Memory) Version(_ context.Context, owner string, kind entity.Kind) (uint64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.versionLocked(key{owner, kind}), true
}

func (m *Memory) versionLocked(k key) uint64 {
	if e, ok := m.entries[k]; ok {
		return e.version
	}
	return m.floor
}

func (m *Memory) SetIfVersion(_ context.Context, owner string, kind entity.Kind, version uint64, value []byte) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key{owner, kind}
	if m.versionLocked(k) != version {
		return false
	}
	m.entries[k] = &entry{value: value, expires: m.now().Add(m.ttl), version: version}
	return true
}

func (m *Memory) Invalidate(_ context.Context, owner string, kind entity.Kind) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	k := key{owner, kind}
	e, ok := m.entries[k]
	if !ok {
		e = &entry{expires: m.now().Add(m.ttl)}
		m.entries[k] = e
	}
	e.stale = true
	e.version = m.seq
}

// Sweep drops stale and expired entries.
func (m *Memory) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	n := 0
	for k, e := range m.entries {
		if e.stale || !now.Before(e.expires) {
			if e.version > m.floor {
				m.floor = e.version
			}
			delete(m.entries, k)
			n++
		}
	}
	return n
}
