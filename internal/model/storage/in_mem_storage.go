package storage

import (
	"context"
	"sync"

	"max.ks1230/expense-bot/internal/entity/expense"
)

type InMemStorage struct {
	mu    sync.Mutex
	state expense.State
	saves int
}

func NewInMemStorage() *InMemStorage {
	return &InMemStorage{state: expense.NewState()}
}

func (s *InMemStorage) Load(_ context.Context) expense.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *InMemStorage) Save(_ context.Context, state expense.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state.Clone()
	s.saves++
	return nil
}

// Saves reports how many times Save was called.
func (s *InMemStorage) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
