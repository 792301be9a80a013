// Package storage persists small string values under fixed keys on the local
// machine. It is the terminal client's equivalent of browser local storage:
// one flat namespace, last write wins, no expiry and no cross-process sync.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Storage is a durable key/value store.
type Storage interface {
	// GetItem returns the stored value and whether the key exists.
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
	Close() error
}

// Supported backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const (
	defaultFilePath   = "~/.local/share/gobiview/storage.toml"
	defaultSQLitePath = "~/.local/share/gobiview/storage.sqlite"
)

// DefaultPath returns the default location for a backend.
func DefaultPath(backend string) string {
	if backend == BackendSQLite {
		return defaultSQLitePath
	}
	return defaultFilePath
}

// Open returns the backend named by kind. An empty path uses the backend's
// default location.
func Open(kind, path string) (Storage, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		kind = BackendFile
	}
	if kind == BackendMemory {
		return NewMemory(), nil
	}
	if strings.TrimSpace(path) == "" {
		path = DefaultPath(kind)
	}
	resolved, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve storage path: %w", err)
	}
	switch kind {
	case BackendFile:
		return OpenFile(resolved)
	case BackendSQLite:
		return OpenSQLite(resolved)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
