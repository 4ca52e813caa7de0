package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"learnhub/internal/domain"
)

func TestSessionsGetCreatesOnce(t *testing.T) {
	s := NewSessions(DefaultCatalog(), time.Hour)

	a, err := s.Get("one")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	b, err := s.Get("one")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if a != b {
		t.Fatal("Get returned different states for the same id")
	}
	if _, err := s.Get("two"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
}

func TestSessionsRejectEmptyID(t *testing.T) {
	s := NewSessions(DefaultCatalog(), time.Hour)
	if _, err := s.Get(""); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("Get(\"\") error = %v, want ErrInvalidSession", err)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	s := NewSessions(DefaultCatalog(), time.Hour)
	a, _ := s.Get("a")
	b, _ := s.Get("b")

	if _, err := a.ToggleWatched(1); err != nil {
		t.Fatalf("ToggleWatched: %v", err)
	}
	if b.Snapshot().Videos[1].Watched {
		t.Fatal("session b sees session a's watched flag")
	}
}

func TestSessionsEvictIdle(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewSessions(DefaultCatalog(), time.Hour)
	s.now = func() time.Time { return now }

	s.Get("stale")
	now = now.Add(30 * time.Minute)
	s.Get("fresh")
	now = now.Add(45 * time.Minute)

	if n := s.Evict(); n != 1 {
		t.Fatalf("Evict() = %d, want 1", n)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}

	// An evicted session starts over from the catalog.
	st, _ := s.Get("stale")
	if st.Snapshot().Watched != 0 {
		t.Fatal("recreated session kept old flags")
	}
}

func TestSessionsLimitDropsLeastRecent(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewSessions(DefaultCatalog(), time.Hour).WithLimit(2)
	s.now = func() time.Time { return now }

	a, _ := s.Get("a")
	now = now.Add(time.Minute)
	s.Get("b")
	now = now.Add(time.Minute)
	// Touching a makes b the oldest.
	s.Get("a")
	now = now.Add(time.Minute)
	s.Get("c")

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if got, _ := s.Get("a"); got != a {
		t.Fatal("recently used session a was dropped")
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d after re-reading a, want 2", s.Len())
	}
}

func TestSessionsRunStopsOnCancel(t *testing.T) {
	s := NewSessions(DefaultCatalog(), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
