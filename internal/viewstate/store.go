// Package viewstate persists dashboard UI state as one JSON document per
// namespace and exposes key-path reads and writes over those documents.
package viewstate

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/alexisbeaulieu97/tradeboard/internal/logger"
	"github.com/alexisbeaulieu97/tradeboard/internal/storage"
	apperrors "github.com/alexisbeaulieu97/tradeboard/pkg/errors"
)

// Store reads and writes namespaced view-state documents. Failures never
// escape Get; Set reports them but callers in the UI path ignore the result.
type Store struct {
	backend storage.Storage
	log     *logger.Logger
	mu      sync.Mutex
}

// New creates a Store over backend. A nil logger discards diagnostics.
func New(backend storage.Storage, log *logger.Logger) *Store {
	if backend == nil {
		backend = storage.NewMemory(0)
	}
	return &Store{
		backend: backend,
		log:     log.Component("viewstate"),
	}
}

// Backend exposes the underlying storage.
func (s *Store) Backend() storage.Storage {
	return s.backend
}

// Get returns the value at keyPath inside namespace, or nil when the
// namespace is absent, malformed, or any segment is missing. Objects come
// back as map[string]any, arrays as []any and numbers as float64. An empty
// keyPath returns the whole document.
func (s *Store) Get(namespace string, keyPath ...string) any {
	result, ok := s.lookup(namespace, keyPath)
	if !ok {
		return nil
	}
	return result.Value()
}

// GetString returns the value at keyPath when it is a JSON string.
func (s *Store) GetString(namespace string, keyPath ...string) (string, bool) {
	result, ok := s.lookup(namespace, keyPath)
	if !ok || result.Type != gjson.String {
		return "", false
	}
	return result.Str, true
}

// Decode unmarshals the value at keyPath into out. It reports false when the
// value is absent or does not fit out.
func (s *Store) Decode(namespace string, out any, keyPath ...string) bool {
	result, ok := s.lookup(namespace, keyPath)
	if !ok || result.Type == gjson.Null {
		return false
	}
	if err := json.Unmarshal([]byte(result.Raw), out); err != nil {
		s.log.WithFields(map[string]any{"namespace": namespace}).Warn("stored view state has an unexpected shape: " + err.Error())
		return false
	}
	return true
}

// Set writes value at keyPath inside namespace, creating intermediate
// objects as needed, and persists the whole document. An empty keyPath
// replaces the document.
func (s *Store) Set(namespace string, keyPath []string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var document any = value
	if len(keyPath) > 0 {
		root := s.loadObject(namespace)
		assign(root, keyPath, value)
		document = root
	}

	data, err := json.Marshal(document)
	if err != nil {
		return s.writeFailed(namespace, fmt.Errorf("encode: %w", err))
	}
	if err := s.backend.SetItem(namespace, string(data)); err != nil {
		return s.writeFailed(namespace, err)
	}
	return nil
}

// Clear removes one namespace.
func (s *Store) Clear(namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.RemoveItem(namespace); err != nil {
		return s.writeFailed(namespace, err)
	}
	return nil
}

// ClearAll removes every namespace.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Clear(); err != nil {
		return s.writeFailed("*", err)
	}
	return nil
}

// Namespaces lists the stored namespaces.
func (s *Store) Namespaces() ([]string, error) {
	return s.backend.Keys()
}

func (s *Store) lookup(namespace string, keyPath []string) (gjson.Result, bool) {
	raw, ok := s.read(namespace)
	if !ok {
		return gjson.Result{}, false
	}

	result := gjson.Parse(raw)
	for _, segment := range keyPath {
		switch {
		case result.IsObject():
			next, found := result.Map()[segment]
			if !found {
				return gjson.Result{}, false
			}
			result = next
		case result.IsArray():
			items := result.Array()
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(items) {
				return gjson.Result{}, false
			}
			result = items[index]
		default:
			return gjson.Result{}, false
		}
	}
	return result, true
}

// read returns the raw document for namespace when it exists and is valid JSON.
func (s *Store) read(namespace string) (string, bool) {
	raw, ok, err := s.backend.GetItem(namespace)
	if err != nil {
		s.log.WithFields(map[string]any{"namespace": namespace}).Error(err, "failed to read view state")
		return "", false
	}
	if !ok {
		return "", false
	}
	if !gjson.Valid(raw) {
		s.log.Warn(apperrors.NewPersistenceParseError(namespace, nil).Error())
		return "", false
	}
	return raw, true
}

func (s *Store) loadObject(namespace string) map[string]any {
	raw, ok := s.read(namespace)
	if !ok {
		return map[string]any{}
	}
	var root map[string]any
	if err := json.Unmarshal([]byte(raw), &root); err != nil || root == nil {
		return map[string]any{}
	}
	return root
}

func (s *Store) writeFailed(namespace string, err error) error {
	wrapped := apperrors.NewPersistenceWriteError(namespace, err)
	s.log.WithFields(map[string]any{"namespace": namespace}).Error(err, "failed to persist view state")
	return wrapped
}

func assign(root map[string]any, keyPath []string, value any) {
	current := root
	for _, segment := range keyPath[:len(keyPath)-1] {
		next, ok := current[segment].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[segment] = next
		}
		current = next
	}
	current[keyPath[len(keyPath)-1]] = value
}
