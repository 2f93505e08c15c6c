package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// FileStore guarda las entradas como un objeto JSON en un archivo local.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("session file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := items[key]
	return v, ok, nil
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.loadForWrite()
	if err != nil {
		return err
	}
	items[key] = value
	return s.save(items)
}

func (s *FileStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.loadForWrite()
	if err != nil {
		return err
	}
	for _, k := range keys {
		delete(items, k)
	}
	return s.save(items)
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) load() (map[string]string, error) {
	items := make(map[string]string)
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return items, nil
		}
		return nil, err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&items); err != nil {
		if errors.Is(err, io.EOF) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("%w: decode %s: %v", ErrCorruptStore, s.path, err)
	}
	return items, nil
}

// loadForWrite descarta un archivo corrupto; el próximo save lo reescribe.
func (s *FileStore) loadForWrite() (map[string]string, error) {
	items, err := s.load()
	if errors.Is(err, ErrCorruptStore) {
		return make(map[string]string), nil
	}
	return items, err
}

// save escribe a un archivo temporal y lo renombra para no dejar JSON truncado.
func (s *FileStore) save(items map[string]string) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return os.Rename(tmp, s.path)
}
