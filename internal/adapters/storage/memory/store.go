package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/revenue_split_app/internal/apperrors"
	portsrepo "github.com/SscSPs/revenue_split_app/internal/core/ports/repositories"
)

// Store is a LocalStore kept in process memory.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ portsrepo.LocalStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, apperrors.NewNotFoundError("key not found: " + key)
	}
	return append([]byte(nil), v...), nil
}

func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Close() error { return nil }
