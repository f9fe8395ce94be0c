// Package patternstore persists serialized storage patterns in a local Badger
// database, keyed by a caller-chosen name.
package patternstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	"github.com/optilab/voxelstore/pkg/pattern"
)

const keyPrefix = "pattern:"

// ErrNotFound is returned when no pattern is stored under the given name.
var ErrNotFound = errors.New("patternstore: pattern not found")

// Store wraps a Badger instance holding JSON-serialized patterns.
type Store struct {
	db  *badger.DB
	log *logrus.Logger
}

// Open opens (or creates) a store in dir. A nil logger falls back to a default
// logrus logger; Badger's own chatter is discarded.
func Open(dir string, logger *logrus.Logger) (*Store, error) {
	if logger == nil {
		logger = logrus.New()
	}

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("patternstore: open %s: %w", dir, err)
	}

	logger.WithField("dir", dir).Debug("pattern store opened")
	return &Store{db: db, log: logger}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put serializes p and stores it under name, overwriting any previous entry.
func (s *Store) Put(name string, p *pattern.StoragePattern) error {
	if name == "" {
		return fmt.Errorf("patternstore: name must not be empty")
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("patternstore: serialize %s: %w", name, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+name), raw)
	})
	if err != nil {
		return fmt.Errorf("patternstore: store %s: %w", name, err)
	}

	s.log.WithFields(logrus.Fields{
		"name":   name,
		"voxels": p.VoxelCount(),
		"bytes":  len(raw),
	}).Info("pattern stored")
	return nil
}

// Get loads and deserializes the pattern stored under name.
func (s *Store) Get(name string) (*pattern.StoragePattern, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + name))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("patternstore: load %s: %w", name, err)
	}

	var p pattern.StoragePattern
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("patternstore: deserialize %s: %w", name, err)
	}
	return &p, nil
}

// List returns the names of all stored patterns.
func (s *Store) List() ([]string, error) {
	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			names = append(names, strings.TrimPrefix(key, keyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("patternstore: list: %w", err)
	}
	return names, nil
}

// Delete removes the pattern stored under name. Deleting a missing name is
// not an error.
func (s *Store) Delete(name string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keyPrefix + name))
	})
	if err != nil {
		return fmt.Errorf("patternstore: delete %s: %w", name, err)
	}
	s.log.WithField("name", name).Info("pattern deleted")
	return nil
}
