// Package memstore is a process-local store.KV. Values are copied in and
// out so callers never share backing arrays with the store.
package memstore

import (
	"context"
	"sync"

	"github.com/idilsaglam/todolist/internal/store"
)

// Store is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	data   map[string][]byte
	writes int

	// FailReads and FailWrites make every Get/Set fail with
	// store.ErrUnavailable.
	FailReads  bool
	FailWrites bool
}

// New returns an empty store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads {
		return nil, store.ErrUnavailable
	}
	v, ok := s.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return store.ErrUnavailable
	}
	s.data[key] = append([]byte(nil), value...)
	s.writes++
	return nil
}

// SetFailures toggles failure injection under the store lock.
func (s *Store) SetFailures(reads, writes bool) {
	s.mu.Lock()
	s.FailReads, s.FailWrites = reads, writes
	s.mu.Unlock()
}

// Writes reports how many successful Set calls the store has seen.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *Store) Close() error { return nil }
