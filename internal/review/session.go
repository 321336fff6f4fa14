// internal/review/session.go
package review

import (
	"errors"
	"fmt"
	"time"

	"redline/internal/change"
	"redline/internal/diff"
)

// ErrChangeNotFound reports a decision naming a change id absent from the
// session's current change set, typically one from a stale diff.
var ErrChangeNotFound = errors.New("change not found")

// Session tracks one review of an original document against its revised
// counterpart: the computed change set plus the reviewer's decisions.
// Document contents live in the vault, keyed by the hashes here.
type Session struct {
	ID           string          `json:"id"`
	OriginalHash string          `json:"original_hash"`
	RevisedHash  string          `json:"revised_hash"`
	Changes      []change.Change `json:"changes"`
	Stats        diff.Stats      `json:"stats"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// SessionStore persists review sessions.
type SessionStore interface {
	Create(s *Session) error
	Get(id string) (*Session, error)
	Update(s *Session) error
	Delete(id string) error
	List() ([]*Session, error)
}

// Change returns the change with the given id.
func (s *Session) Change(id string) (*change.Change, error) {
	for i := range s.Changes {
		if s.Changes[i].ID == id {
			return &s.Changes[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrChangeNotFound, id)
}

// Decide records a reviewer's decision on one change.
func (s *Session) Decide(changeID string, state change.State) error {
	switch state {
	case change.Pending, change.Accepted, change.Rejected:
	default:
		return fmt.Errorf("invalid decision state: %q", state)
	}
	c, err := s.Change(changeID)
	if err != nil {
		return err
	}
	c.State = state
	s.UpdatedAt = time.Now()
	return nil
}

// AcceptedIDs returns the set of accepted change ids.
func (s *Session) AcceptedIDs() map[string]bool {
	ids := make(map[string]bool)
	for _, c := range s.Changes {
		if c.State == change.Accepted {
			ids[c.ID] = true
		}
	}
	return ids
}

// Pending returns the changes still awaiting a decision.
func (s *Session) Pending() []change.Change {
	var pending []change.Change
	for _, c := range s.Changes {
		if c.State == change.Pending || c.State == "" {
			pending = append(pending, c)
		}
	}
	return pending
}

// Summary returns the short change-count string for this session.
func (s *Session) Summary() string {
	result := diff.Result{Stats: s.Stats}
	return result.Summary()
}
