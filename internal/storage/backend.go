// Package storage persists task lists in durable key-value backends.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// SQLiteFile is the database file name used by the sqlite backend.
const SQLiteFile = "checklist.db"

// Backend is a byte-level durable key-value store.
type Backend interface {
	// Get returns the value under key. ok is false if the key is absent.
	Get(key string) (value []byte, ok bool, err error)
	// Put replaces the value under key. Readers never observe a partial value.
	Put(key string, value []byte) error
	// Keys lists stored keys in ascending order.
	Keys() ([]string, error)
	// Close releases the backend.
	Close() error
}

// Backends lists the supported backend names.
func Backends() []string {
	return []string{BackendFile, BackendSQLite, BackendMemory}
}

// Open opens the named backend rooted at dataDir.
func Open(kind, dataDir string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case BackendFile, "":
		return NewFileBackend(dataDir)
	case BackendSQLite:
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return OpenSQLite(filepath.Join(dataDir, SQLiteFile))
	case BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q, must be one of: %s", kind, strings.Join(Backends(), ", "))
	}
}

// ValidateKey reports whether key can be stored by every backend.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("storage key is empty")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("storage key %q must not contain path separators", key)
	}
	return nil
}
