// Package ephemeral is the short-lived storage used by in-progress flows
// (the reset email and reset ticket). Slots live in memory only and must be
// cleared on every terminal transition so a stale ticket can never leak into
// a later session.
package ephemeral

import "sync"

type Store struct {
	mu    sync.Mutex
	slots map[string]string
}

func NewStore() *Store {
	return &Store{slots: make(map[string]string)}
}

func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.slots[key]
	return v, ok
}

func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = value
}

func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, key)
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = make(map[string]string)
}
