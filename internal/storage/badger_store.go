// internal/storage/badger_store.go
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// ErrNotFound reports a lookup for an id with no stored entity.
var ErrNotFound = errors.New("entity not found")

// Entity is anything storable under a stable id.
type Entity interface {
	GetID() string
}

// BadgerStore keeps JSON-encoded entities in badger under a shared key
// prefix, one prefix per entity kind.
type BadgerStore struct {
	db     *badger.DB
	prefix []byte
}

func NewBadgerStore(db *badger.DB, prefix string) *BadgerStore {
	return &BadgerStore{
		db:     db,
		prefix: []byte(prefix + "/"),
	}
}

func (s *BadgerStore) key(id string) []byte {
	return append(append([]byte{}, s.prefix...), id...)
}

// Create stores a new entity; an existing id is an error.
func (s *BadgerStore) Create(entity Entity) error {
	id := entity.GetID()
	if id == "" {
		return fmt.Errorf("entity id cannot be empty")
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("encoding entity: %w", err)
	}

	key := s.key(id)
	return s.db.Update(func(txn *badger.Txn) error {
		switch _, err := txn.Get(key); {
		case err == nil:
			return fmt.Errorf("entity already exists: %s", id)
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}
		return txn.Set(key, data)
	})
}

// Get decodes the stored entity into the given value.
func (s *BadgerStore) Get(id string, entity Entity) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, entity)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return err
}

// Update replaces an existing entity; a missing id is an error.
func (s *BadgerStore) Update(entity Entity) error {
	id := entity.GetID()
	if id == "" {
		return fmt.Errorf("entity id cannot be empty")
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("encoding entity: %w", err)
	}

	key := s.key(id)
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", ErrNotFound, id)
			}
			return err
		}
		return txn.Set(key, data)
	})
}

func (s *BadgerStore) Delete(id string) error {
	key := s.key(id)
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", ErrNotFound, id)
			}
			return err
		}
		return txn.Delete(key)
	})
}

// List decodes every entity under the prefix into results, which must be
// a pointer to a slice of the entity type.
func (s *BadgerStore) List(results interface{}) error {
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		var values []json.RawMessage
		for it.Seek(s.prefix); it.ValidForPrefix(s.prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				values = append(values, append([]byte{}, val...))
				return nil
			})
			if err != nil {
				return err
			}
		}

		data, err := json.Marshal(values)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, results)
	})
	if err != nil {
		return fmt.Errorf("listing entities: %w", err)
	}
	return nil
}
