// Package memory is an in-process session store for local runs and tests.
package memory

import (
	"context"
	"sync"

	"github.com/sandevgo/motivate/internal/core"
)

type Store struct {
	mu       sync.RWMutex
	sessions map[string]core.Transcript
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]core.Transcript)}
}

func (s *Store) Load(_ context.Context, key string) (core.Transcript, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history, ok := s.sessions[key]
	if !ok {
		return core.NewTranscript(), nil
	}
	return history.Clone(), nil
}

func (s *Store) Save(_ context.Context, key string, transcript core.Transcript) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = transcript.Clone()
	return nil
}

func (s *Store) Close() error { return nil }
