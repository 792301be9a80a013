package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

const fileFormatVersion = 1

// fileDocument is the on-disk layout of a FileStorage.
type fileDocument struct {
	Version int               `toml:"version"`
	Items   map[string]string `toml:"items"`
}

// FileStorage keeps every item in a single TOML file. The file is read once
// on open and rewritten on each mutation.
type FileStorage struct {
	mu    sync.Mutex
	path  string
	items map[string]string
}

// OpenFile loads the store at path. A missing or unreadable file starts an
// empty store; the file is created on the first write.
func OpenFile(path string) (*FileStorage, error) {
	s := &FileStorage{path: path, items: make(map[string]string)}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return s, nil // Graceful degradation
	}

	var doc fileDocument
	if err := toml.Unmarshal(bytes, &doc); err != nil {
		return s, nil // Graceful degradation
	}
	for k, v := range doc.Items {
		s.items[k] = v
	}
	return s, nil
}

// Path returns the backing file location.
func (s *FileStorage) Path() string {
	return s.path
}

func (s *FileStorage) GetItem(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *FileStorage) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return s.flush()
}

func (s *FileStorage) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; !ok {
		return nil
	}
	delete(s.items, key)
	return s.flush()
}

func (s *FileStorage) Close() error {
	return nil
}

func (s *FileStorage) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}

	bytes, err := toml.Marshal(fileDocument{Version: fileFormatVersion, Items: s.items})
	if err != nil {
		return fmt.Errorf("marshal storage: %w", err)
	}

	if err := os.WriteFile(s.path, bytes, 0o644); err != nil {
		return fmt.Errorf("write storage: %w", err)
	}
	return nil
}
