// Package storage provides string-keyed, string-valued persistent storage
// backends for dashboard view state.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrQuotaExceeded is returned when a write would exceed the storage quota.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrClosed is returned by operations on a closed backend.
	ErrClosed = errors.New("storage is closed")
	// ErrEmptyKey is returned when a key is blank.
	ErrEmptyKey = errors.New("storage key is empty")
)

// Storage is the persistent key/value boundary. Values are opaque strings.
type Storage interface {
	// GetItem returns the value stored under key and whether it exists.
	GetItem(key string) (string, bool, error)
	// SetItem stores value under key, replacing any previous value.
	SetItem(key, value string) error
	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(key string) error
	// Keys lists stored keys in ascending order.
	Keys() ([]string, error)
	// Clear removes every key.
	Clear() error
	// Close releases the backend.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

// Backends lists every supported backend name.
var Backends = []string{BackendMemory, BackendFile, BackendBadger, BackendSQLite}

// Options selects and configures a backend.
type Options struct {
	Backend string
	Path    string
	// QuotaBytes limits the memory backend; zero means unlimited.
	QuotaBytes int
}

// Open creates the backend described by opts.
func Open(opts Options) (Storage, error) {
	backend := strings.ToLower(strings.TrimSpace(opts.Backend))
	if backend == "" {
		backend = BackendFile
	}

	if !IsBackend(backend) {
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
	if backend != BackendMemory && strings.TrimSpace(opts.Path) == "" {
		return nil, fmt.Errorf("storage backend %s requires a path", backend)
	}

	switch backend {
	case BackendMemory:
		return NewMemory(opts.QuotaBytes), nil
	case BackendBadger:
		return NewBadger(opts.Path)
	case BackendSQLite:
		return NewSQLite(opts.Path)
	default:
		return NewFile(opts.Path)
	}
}

// IsBackend reports whether name is a supported backend.
func IsBackend(name string) bool {
	for _, b := range Backends {
		if b == name {
			return true
		}
	}
	return false
}

func normalizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", ErrEmptyKey
	}
	return key, nil
}
