package leveldb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/revenue_split_app/internal/apperrors"
	portsrepo "github.com/SscSPs/revenue_split_app/internal/core/ports/repositories"
	"github.com/syndtr/goleveldb/leveldb"
)

// Store is a LocalStore backed by an on-disk LevelDB database.
type Store struct {
	db *leveldb.DB
}

var _ portsrepo.LocalStore = (*Store)(nil)

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store at %s: %w", path, err)
	}
	slog.Info("Local store opened", "path", path)
	return &Store{db: db}, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	value, err := s.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, apperrors.NewNotFoundError("key not found: " + key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) Put(_ context.Context, key string, value []byte) error {
	if err := s.db.Put([]byte(key), value, nil); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
