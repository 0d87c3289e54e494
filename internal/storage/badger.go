package storage

import (
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
)

// Badger stores items in an embedded Badger database.
type Badger struct {
	db *badger.DB
}

// NewBadger opens (or creates) a Badger database in dir.
func NewBadger(dir string) (*Badger, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Badger{db: db}, nil
}

// GetItem returns the value stored under key.
func (b *Badger) GetItem(key string) (string, bool, error) {
	if b == nil || b.db == nil {
		return "", false, ErrClosed
	}
	if key == "" {
		return "", false, nil
	}

	var (
		out   string
		found bool
	)
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			out = string(val)
			return nil
		})
	})
	if err != nil {
		return "", false, err
	}
	return out, found, nil
}

// SetItem stores value under key.
func (b *Badger) SetItem(key, value string) error {
	if b == nil || b.db == nil {
		return ErrClosed
	}
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
}

// RemoveItem deletes key.
func (b *Badger) RemoveItem(key string) error {
	if b == nil || b.db == nil {
		return ErrClosed
	}
	if key == "" {
		return nil
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// Keys lists stored keys in ascending order.
func (b *Badger) Keys() ([]string, error) {
	if b == nil || b.db == nil {
		return nil, ErrClosed
	}

	var keys []string
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// Clear removes every key.
func (b *Badger) Clear() error {
	if b == nil || b.db == nil {
		return ErrClosed
	}
	return b.db.DropAll()
}

// Close closes the database.
func (b *Badger) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}

var _ Storage = (*Badger)(nil)
