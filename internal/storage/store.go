package storage

import (
	"context"
	"errors"
	"sync"
)

// Store es el almacenamiento clave/valor durable donde el cliente persiste la sesión.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

var (
	ErrUnknownBackend = errors.New("unknown session backend")
	ErrCorruptStore   = errors.New("corrupt session store")
)

type memoryStore struct {
	mu    sync.Mutex
	items map[string]string
}

// NewMemoryStore crea un Store en memoria, sin persistencia entre procesos.
func NewMemoryStore() Store {
	return &memoryStore{items: make(map[string]string)}
}

func (s *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *memoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *memoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.items, k)
	}
	return nil
}

func (s *memoryStore) Close() error {
	return nil
}
