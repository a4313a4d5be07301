package ban

import (
	"context"
	"sync"
	"time"
)

type strikeCounter struct {
	count   int64
	expires time.Time
}

// MemoryStore keeps strikes and bans in process. Used when Redis is not
// configured and in tests.
type MemoryStore struct {
	mu      sync.Mutex
	strikes map[string]*strikeCounter
	bans    map[string]time.Time
	log     []LogEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		strikes: map[string]*strikeCounter{},
		bans:    map[string]time.Time{},
		now:     time.Now,
	}
}

func (s *MemoryStore) IsBanned(_ context.Context, target string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.bans[target]
	if !ok {
		return false, nil
	}
	if !s.now().Before(until) {
		delete(s.bans, target)
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) AddStrike(_ context.Context, target string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c, ok := s.strikes[target]
	if !ok || !now.Before(c.expires) {
		c = &strikeCounter{expires: now.Add(window)}
		s.strikes[target] = c
	}
	c.count++
	return c.count, nil
}

func (s *MemoryStore) Ban(_ context.Context, entry LogEntry, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bans[entry.Target] = s.now().Add(d)
	delete(s.strikes, entry.Target)
	s.log = append(s.log, entry)
	return nil
}

// Log returns the bans issued so far.
func (s *MemoryStore) Log() []LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]LogEntry(nil), s.log...)
}
