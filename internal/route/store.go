package route

import (
	"context"
	"encoding/hex"
	"fmt"
	"slices"
	"sync"

	"github.com/udisondev/gridpath/internal/grid"
)

// Key identifies a cached route: grid layout plus endpoints.
type Key struct {
	Fingerprint [32]byte
	Start       grid.Coord
	End         grid.Coord
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%s->%s", hex.EncodeToString(k.Fingerprint[:8]), k.Start, k.End)
}

// Entry is a cached search outcome. Negative results (Found == false) are
// cached too.
type Entry struct {
	Path  []grid.Coord
	Found bool
}

// Store persists route entries.
type Store interface {
	// Get returns the entry for key; ok is false on a miss.
	Get(ctx context.Context, key Key) (entry Entry, ok bool, err error)
	// Put inserts or replaces the entry for key.
	Put(ctx context.Context, key Key, entry Entry) error
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[Key]Entry
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[Key]Entry)}
}

func (m *MemoryStore) Get(_ context.Context, key Key) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok {
		return Entry{}, false, nil
	}
	// Copy so callers cannot modify the cached path.
	return Entry{Path: slices.Clone(e.Path), Found: e.Found}, true, nil
}

func (m *MemoryStore) Put(_ context.Context, key Key, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = Entry{Path: slices.Clone(entry.Path), Found: entry.Found}
	return nil
}

// Len returns the number of cached entries.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
