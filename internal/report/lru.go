package report

import (
	"container/list"
	"sync"
)

// LRUStore is an in-memory LRU cache that delegates to a backing Store on
// miss. Epilog hooks typically re-read the run they just produced, so a
// small cache avoids most disk reads.
type LRUStore struct {
	mu    sync.Mutex
	cap   int
	back  Store
	order *list.List // most recent at front; values are *Invocation
	items map[string]*list.Element
}

// NewLRUStore creates an LRU cache with the given capacity that delegates
// to back on cache misses. Capacity must be >= 1.
func NewLRUStore(capacity int, back Store) *LRUStore {
	if capacity < 1 {
		capacity = 1
	}
	return &LRUStore{
		cap:   capacity,
		back:  back,
		order: list.New(),
		items: make(map[string]*list.Element, capacity),
	}
}

// Save writes the invocation to the cache and delegates to the backing store.
func (s *LRUStore) Save(inv *Invocation) error {
	s.mu.Lock()
	s.insert(inv)
	s.mu.Unlock()
	return s.back.Save(inv)
}

// Load checks the cache first. On miss, loads from the backing store and
// promotes the result into the cache.
func (s *LRUStore) Load(runID string) (*Invocation, error) {
	s.mu.Lock()
	if e, ok := s.items[runID]; ok {
		s.order.MoveToFront(e)
		inv := e.Value.(*Invocation)
		s.mu.Unlock()
		return inv, nil
	}
	s.mu.Unlock()

	inv, err := s.back.Load(runID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.insert(inv)
	s.mu.Unlock()
	return inv, nil
}

// insert adds or refreshes an entry and evicts the oldest one past capacity.
// Callers must hold mu.
func (s *LRUStore) insert(inv *Invocation) {
	if e, ok := s.items[inv.ID]; ok {
		e.Value = inv
		s.order.MoveToFront(e)
		return
	}
	s.items[inv.ID] = s.order.PushFront(inv)
	if s.order.Len() > s.cap {
		oldest := s.order.Back()
		s.order.Remove(oldest)
		delete(s.items, oldest.Value.(*Invocation).ID)
	}
}
