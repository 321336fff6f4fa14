// internal/review/manager.go
package review

import (
	"fmt"
	"time"

	"redline/internal/change"
	"redline/internal/diff"
	"redline/internal/reconcile"
	"redline/internal/vault"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager owns the review workflow: it stores document versions in the
// vault, computes diffs, and applies reviewer decisions.
type Manager struct {
	vault  *vault.Vault
	store  SessionStore
	engine *diff.Engine
	logger *zap.Logger
}

func NewManager(v *vault.Vault, store SessionStore, engine *diff.Engine, logger *zap.Logger) *Manager {
	return &Manager{
		vault:  v,
		store:  store,
		engine: engine,
		logger: logger,
	}
}

// Create stores both document versions, computes their diff, and opens a
// review session over the resulting change set.
func (m *Manager) Create(original, revised string) (*Session, error) {
	originalHash, err := m.vault.Store([]byte(original))
	if err != nil {
		return nil, fmt.Errorf("storing original: %w", err)
	}
	revisedHash, err := m.vault.Store([]byte(revised))
	if err != nil {
		return nil, fmt.Errorf("storing revised: %w", err)
	}

	result := m.engine.Compare(original, revised)
	now := time.Now()
	session := &Session{
		ID:           uuid.New().String(),
		OriginalHash: originalHash,
		RevisedHash:  revisedHash,
		Changes:      change.Build(result),
		Stats:        result.Stats,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := m.store.Create(session); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}

	m.logger.Info("review session created",
		zap.String("session_id", session.ID),
		zap.Int("changes", len(session.Changes)),
		zap.String("summary", session.Summary()),
	)
	return session, nil
}

// Get loads a session.
func (m *Manager) Get(id string) (*Session, error) {
	return m.store.Get(id)
}

// Diff recomputes the full diff for a session from the stored versions.
func (m *Manager) Diff(id string) (*diff.Result, error) {
	session, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}
	original, revised, err := m.documents(session)
	if err != nil {
		return nil, err
	}
	return m.engine.Compare(original, revised), nil
}

// Decide records a decision and persists the session.
func (m *Manager) Decide(id, changeID string, state change.State) (*Session, error) {
	session, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}
	if err := session.Decide(changeID, state); err != nil {
		return nil, err
	}
	if err := m.store.Update(session); err != nil {
		return nil, fmt.Errorf("persisting decision: %w", err)
	}
	return session, nil
}

// Result reconstructs the output document from the accepted changes.
func (m *Manager) Result(id string) (string, error) {
	session, err := m.store.Get(id)
	if err != nil {
		return "", err
	}
	original, revised, err := m.documents(session)
	if err != nil {
		return "", err
	}
	return reconcile.Reconstruct(original, revised, session.Changes, session.AcceptedIDs())
}

// Refresh recomputes a session against a new pair of document versions.
// Decisions carry over only for changes whose content-derived id survived;
// everything else resets to pending.
func (m *Manager) Refresh(id, original, revised string) (*Session, error) {
	session, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}

	originalHash, err := m.vault.Store([]byte(original))
	if err != nil {
		return nil, fmt.Errorf("storing original: %w", err)
	}
	revisedHash, err := m.vault.Store([]byte(revised))
	if err != nil {
		return nil, fmt.Errorf("storing revised: %w", err)
	}

	result := m.engine.Compare(original, revised)
	fresh := change.Build(result)

	session.OriginalHash = originalHash
	session.RevisedHash = revisedHash
	session.Changes = change.CarryDecisions(session.Changes, fresh)
	session.Stats = result.Stats
	session.UpdatedAt = time.Now()

	if err := m.store.Update(session); err != nil {
		return nil, fmt.Errorf("persisting refresh: %w", err)
	}

	m.logger.Info("review session refreshed",
		zap.String("session_id", session.ID),
		zap.Int("changes", len(session.Changes)),
	)
	return session, nil
}

func (m *Manager) documents(session *Session) (string, string, error) {
	original, err := m.vault.Get(session.OriginalHash)
	if err != nil {
		return "", "", fmt.Errorf("loading original: %w", err)
	}
	revised, err := m.vault.Get(session.RevisedHash)
	if err != nil {
		return "", "", fmt.Errorf("loading revised: %w", err)
	}
	return string(original), string(revised), nil
}
