package engine

import (
	"sync"

	"quantcost/internal/domain"
)

// OrderbookStore holds the current bid/ask snapshot. Writes happen only
// on the engine goroutine (the hotpath); the mutex exists solely so
// external readers can take a consistent copy.
type OrderbookStore struct {
	mu       sync.RWMutex
	snapshot domain.OrderbookSnapshot

	// onReplace fires after every replacement, on the writer goroutine.
	onReplace func()
}

// NewOrderbookStore creates an empty store. onReplace may be nil.
func NewOrderbookStore(onReplace func()) *OrderbookStore {
	return &OrderbookStore{onReplace: onReplace}
}

// Replace overwrites the snapshot wholesale and emits the update
// notification. There is no incremental merge; readers see either the
// prior snapshot or the new one, never a mix.
func (s *OrderbookStore) Replace(snapshot domain.OrderbookSnapshot) {
	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	if s.onReplace != nil {
		s.onReplace()
	}
}

// Current returns the latest snapshot, or the empty initial one.
func (s *OrderbookStore) Current() domain.OrderbookSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}
