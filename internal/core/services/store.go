package services

import (
	"context"
	"sync"

	"castdeck/internal/core/domain"
	"castdeck/internal/core/ports"

	"go.uber.org/zap"
)

// Store is the single shared mutable resource of the engine. All state
// transitions go through Update, which applies the mutation to completion
// under one lock, writes the durable subset through to the repository and
// fans a change notification out to panel clients. No operation can
// observe a partially-applied mutation from another.
type Store struct {
	mu       sync.Mutex
	state    *domain.State
	repo     ports.StateRepository
	notifier ports.Notifier
	logger   *zap.SugaredLogger
}

func NewStore(initial *domain.State, repo ports.StateRepository, notifier ports.Notifier, logger *zap.SugaredLogger) *Store {
	if initial == nil {
		initial = domain.DefaultState()
	}
	return &Store{
		state:    initial,
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// Update applies one named operation. When fn returns an error the state
// is left exactly as fn left it, so operations must validate before
// mutating. A write-through failure is logged and never fails the
// operation: the live state stays authoritative and the next mutation
// retries the write.
func (s *Store) Update(ctx context.Context, kind domain.ChangeKind, fn func(*domain.State) error) error {
	s.mu.Lock()
	err := fn(s.state)
	var snap *domain.PersistedState
	if err == nil {
		// Snapshot a deep copy: the repository marshals outside the lock.
		snap = domain.Snapshot(s.state.Clone())
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}

	if s.repo != nil {
		if perr := s.repo.Save(ctx, snap); perr != nil {
			s.logger.Warnw("state write-through failed", "error", perr, "change", kind)
		}
	}
	if s.notifier != nil {
		s.notifier.Notify(domain.StateChange{Kind: kind})
	}
	return nil
}

// UpdateEphemeral applies a mutation of ephemeral fields (live meter
// levels, mirroring status) without persisting. Notification still fires
// so the panel can repaint.
func (s *Store) UpdateEphemeral(kind domain.ChangeKind, fn func(*domain.State)) {
	s.mu.Lock()
	fn(s.state)
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.Notify(domain.StateChange{Kind: kind})
	}
}

// View runs fn with read access to the live state. fn must not retain or
// mutate anything it is handed.
func (s *Store) View(fn func(*domain.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

// Snapshot returns a deep copy safe for callers to keep.
func (s *Store) Snapshot() *domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}
