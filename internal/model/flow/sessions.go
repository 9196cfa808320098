package flow

import "sync"

// Key scopes an entry flow to one user in one chat.
type Key struct {
	ChatID int64
	UserID int64
}

type Sessions struct {
	mu sync.Mutex
	m  map[Key]State
}

func NewSessions() *Sessions {
	return &Sessions{m: make(map[Key]State)}
}

func (s *Sessions) Get(key Key) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.m[key]
	return st, ok
}

// Put stores the next state, a nil state ends the session.
func (s *Sessions) Put(key Key, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state == nil {
		delete(s.m, key)
		return
	}
	s.m[key] = state
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
