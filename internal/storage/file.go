package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// File persists all items in a single JSON file.
type File struct {
	path   string
	mu     sync.RWMutex
	items  map[string]string
	closed bool
}

type fileDocument struct {
	Version string            `json:"version"`
	Items   map[string]string `json:"items"`
}

// NewFile creates a File backend and loads it from disk.
func NewFile(path string) (*File, error) {
	f := &File{
		path:  path,
		items: make(map[string]string),
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	if err := f.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return f, nil
}

// Load reads the storage file from disk
func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		return err
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse storage file: %w", err)
	}

	f.items = doc.Items
	if f.items == nil {
		f.items = make(map[string]string)
	}
	return nil
}

// GetItem returns the value stored under key.
func (f *File) GetItem(key string) (string, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return "", false, ErrClosed
	}
	value, ok := f.items[key]
	return value, ok, nil
}

// SetItem stores value under key and rewrites the file.
func (f *File) SetItem(key, value string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}

	previous, existed := f.items[key]
	f.items[key] = value
	if err := f.saveLocked(); err != nil {
		if existed {
			f.items[key] = previous
		} else {
			delete(f.items, key)
		}
		return err
	}
	return nil
}

// RemoveItem deletes key and rewrites the file.
func (f *File) RemoveItem(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	previous, ok := f.items[key]
	if !ok {
		return nil
	}
	delete(f.items, key)
	if err := f.saveLocked(); err != nil {
		f.items[key] = previous
		return err
	}
	return nil
}

// Keys lists stored keys in ascending order.
func (f *File) Keys() ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return nil, ErrClosed
	}
	keys := make([]string, 0, len(f.items))
	for k := range f.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Clear removes every key and rewrites the file.
func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	previous := f.items
	f.items = make(map[string]string)
	if err := f.saveLocked(); err != nil {
		f.items = previous
		return err
	}
	return nil
}

// Close marks the backend closed. Every write is already on disk.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	return nil
}

// saveLocked writes the document atomically. Callers hold the write lock.
func (f *File) saveLocked() error {
	doc := fileDocument{
		Version: "1.0",
		Items:   f.items,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal storage: %w", err)
	}

	// Write to temporary file first
	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

var _ Storage = (*File)(nil)
