package dashboard

import (
	"context"
	"log"
	"sync"
	"time"

	"learnhub/internal/domain"
)

type entry struct {
	state    *State
	lastSeen time.Time
}

// Sessions keeps one State per visitor in memory. Nothing survives a
// restart; idle sessions are dropped by Evict.
type Sessions struct {
	mu      sync.Mutex
	catalog domain.Catalog
	idle    time.Duration
	limit   int
	now     func() time.Time
	entries map[string]*entry
}

func NewSessions(catalog domain.Catalog, idle time.Duration) *Sessions {
	return &Sessions{
		catalog: catalog.Clone(),
		idle:    idle,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// WithLimit caps how many sessions are held at once. When full, a new
// session displaces the least recently seen one. n <= 0 means no cap.
func (s *Sessions) WithLimit(n int) *Sessions {
	s.mu.Lock()
	s.limit = n
	s.mu.Unlock()
	return s
}

// Get returns the state for id, creating a fresh one from the catalog.
func (s *Sessions) Get(id string) (*State, error) {
	if id == "" {
		return nil, domain.ErrInvalidSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		if s.limit > 0 && len(s.entries) >= s.limit {
			s.dropOldest()
		}
		e = &entry{state: NewState(s.catalog)}
		s.entries[id] = e
	}
	e.lastSeen = s.now()
	return e.state, nil
}

// dropOldest removes the least recently seen session. Callers hold mu.
func (s *Sessions) dropOldest() {
	var oldest string
	var seen time.Time
	for id, e := range s.entries {
		if oldest == "" || e.lastSeen.Before(seen) {
			oldest, seen = id, e.lastSeen
		}
	}
	delete(s.entries, oldest)
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Catalog returns a copy of the tables new sessions start from.
func (s *Sessions) Catalog() domain.Catalog {
	return s.catalog.Clone()
}

// Evict removes sessions idle for longer than the timeout and returns
// how many were removed.
func (s *Sessions) Evict() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idle)
	n := 0
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, id)
			n++
		}
	}
	return n
}

// Run evicts idle sessions every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Evict(); n > 0 {
				log.Printf("Evicted %d idle dashboard sessions", n)
			}
		}
	}
}
