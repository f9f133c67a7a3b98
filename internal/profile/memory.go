package profile

import (
	"context"
	"sync"
)

// MemoryStore keeps profiles in a map.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]Profile)}
}

func (s *MemoryStore) Get(_ context.Context, uid string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[uid]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *MemoryStore) Set(_ context.Context, uid string, p Profile) error {
	s.mu.Lock()
	s.profiles[uid] = p
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Merge(_ context.Context, uid string, u Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profiles[uid]
	u.Apply(&p)
	s.profiles[uid] = p
	return nil
}

// List returns a copy of every stored profile.
func (s *MemoryStore) List(_ context.Context) (map[string]Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Profile, len(s.profiles))
	for uid, p := range s.profiles {
		out[uid] = p
	}
	return out, nil
}
