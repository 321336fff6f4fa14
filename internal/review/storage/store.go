// internal/review/storage/store.go
package storage

import (
    "fmt"
    "time"

    "github.com/dgraph-io/badger/v4"
    "redline/internal/review"
    "redline/internal/storage"
)

type Store struct {
    store *storage.BadgerStore
}

func NewStore(db *badger.DB) *Store {
    return &Store{
        store: storage.NewBadgerStore(db, "session"),
    }
}

// sessionEntity wraps review.Session to implement storage.Entity
type sessionEntity struct {
    *review.Session
}

func (s *sessionEntity) GetID() string {
    return s.ID
}

func validate(s *review.Session) error {
    if s.ID == "" {
        return fmt.Errorf("session id is required")
    }
    if s.OriginalHash == "" || s.RevisedHash == "" {
        return fmt.Errorf("document hashes are required")
    }
    return nil
}

func (s *Store) Create(session *review.Session) error {
    if err := validate(session); err != nil {
        return fmt.Errorf("invalid session: %w", err)
    }

    // Set timestamps
    if session.CreatedAt.IsZero() {
        session.CreatedAt = time.Now()
    }
    if session.UpdatedAt.IsZero() {
        session.UpdatedAt = session.CreatedAt
    }

    return s.store.Create(&sessionEntity{Session: session})
}

func (s *Store) Get(id string) (*review.Session, error) {
    var entity sessionEntity
    entity.Session = &review.Session{}

    if err := s.store.Get(id, &entity); err != nil {
        return nil, fmt.Errorf("getting session: %w", err)
    }

    return entity.Session, nil
}

func (s *Store) Update(session *review.Session) error {
    if err := validate(session); err != nil {
        return fmt.Errorf("invalid session: %w", err)
    }

    session.UpdatedAt = time.Now()
    return s.store.Update(&sessionEntity{Session: session})
}

func (s *Store) Delete(id string) error {
    return s.store.Delete(id)
}

func (s *Store) List() ([]*review.Session, error) {
    var entities []sessionEntity
    if err := s.store.List(&entities); err != nil {
        return nil, fmt.Errorf("listing sessions: %w", err)
    }

    sessions := make([]*review.Session, len(entities))
    for i, entity := range entities {
        sessions[i] = entity.Session
    }
    return sessions, nil
}
