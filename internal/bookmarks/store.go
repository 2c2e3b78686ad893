package bookmarks

import (
	"sort"
	"sync"

	"github.com/parley-im/parley/internal/domain"
)

// Store is the in-memory bookmark set, keyed by room address. It is the
// source of truth for the running session; the remote document only ever
// mirrors it (or replaces it wholesale on fetch).
//
// The store holds exactly one record per address. Callers are responsible
// for keeping the MatchIndex in step and for triggering synchronization.
type Store struct {
	mu      sync.RWMutex
	records map[string]*domain.Bookmark
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]*domain.Bookmark),
	}
}

// FetchBegin discards all records, leaving a fresh empty store. Safe to
// call repeatedly (every new fetch starts with it, including reconnects).
func (s *Store) FetchBegin() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*domain.Bookmark)
}

// Upsert inserts or fully replaces the record for b.RoomAddress.
func (s *Store) Upsert(b *domain.Bookmark) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[b.RoomAddress] = b
}

// Get retrieves a copy of the record for address. Stored records are
// never mutated in place; writers replace them through Upsert, so handing
// out copies keeps readers on other goroutines safe.
func (s *Store) Get(address string) (*domain.Bookmark, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.records[address]
	if !ok {
		return nil, false
	}
	return b.Clone(), true
}

// Remove deletes the record for address, reporting whether one existed.
func (s *Store) Remove(address string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[address]; !ok {
		return false
	}
	delete(s.records, address)
	return true
}

// Contains reports whether a record exists for address.
func (s *Store) Contains(address string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.records[address]
	return ok
}

// List returns copies of all records sorted by room address. The order
// carries no meaning; it is stable so that encoding and tests are
// deterministic.
func (s *Store) List() []*domain.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Bookmark, 0, len(s.records))
	for _, b := range s.records {
		out = append(out, b.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RoomAddress < out[j].RoomAddress
	})
	return out
}

// Count returns the number of records.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
