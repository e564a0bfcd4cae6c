package report

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionFunc returns the signed-in user id, or false when signed out.
type SessionFunc func() (uuid.UUID, bool)

// Store is the session-scoped view over the reports of the signed-in user.
// It keeps the last listed reports in memory; the cache is only changed by
// successful operations. Without a session every call fails with
// ErrNoSession and issues nothing.
type Store struct {
	uc      UseCase
	session SessionFunc
	log     *zap.Logger

	mu    sync.Mutex
	cache []Report
}

func NewStore(uc UseCase, session SessionFunc, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{uc: uc, session: session, log: log}
}

func (s *Store) owner() (uuid.UUID, error) {
	if s.session == nil {
		return uuid.Nil, ErrNoSession
	}
	id, ok := s.session()
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrNoSession
	}
	return id, nil
}

// List fetches the user's reports, newest first, and refreshes the cache.
func (s *Store) List(ctx context.Context) ([]Report, error) {
	owner, err := s.owner()
	if err != nil {
		return nil, err
	}
	reports, err := s.uc.List(ctx, owner)
	if err != nil {
		s.log.Warn("list reports failed", zap.Stringer("user_id", owner), zap.Error(err))
		return nil, wrapBackend("list", err)
	}
	s.mu.Lock()
	s.cache = cloneAll(reports)
	s.mu.Unlock()
	return cloneAll(reports), nil
}

// Insert saves r and prepends the stored report to the cache.
func (s *Store) Insert(ctx context.Context, r Report) (Report, error) {
	owner, err := s.owner()
	if err != nil {
		return Report{}, err
	}
	saved, err := s.uc.Save(ctx, owner, r)
	if err != nil {
		s.log.Warn("save report failed", zap.Stringer("user_id", owner), zap.Error(err))
		return Report{}, wrapBackend("insert", err)
	}
	s.mu.Lock()
	s.cache = append([]Report{saved.Clone()}, s.cache...)
	s.mu.Unlock()
	s.log.Info("report saved", zap.Stringer("user_id", owner), zap.Stringer("report_id", saved.ID))
	return saved.Clone(), nil
}

// Delete removes the report and drops it from the cache.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	owner, err := s.owner()
	if err != nil {
		return err
	}
	if err := s.uc.Delete(ctx, owner, id); err != nil {
		s.log.Warn("delete report failed", zap.Stringer("report_id", id), zap.Error(err))
		return wrapBackend("delete", err)
	}
	s.mu.Lock()
	kept := s.cache[:0:0]
	for _, r := range s.cache {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.cache = kept
	s.mu.Unlock()
	return nil
}

// Get fetches a single report of the signed-in user.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Report, error) {
	owner, err := s.owner()
	if err != nil {
		return Report{}, err
	}
	r, err := s.uc.Get(ctx, owner, id)
	if err != nil {
		return Report{}, wrapBackend("get", err)
	}
	return r, nil
}

// Cached returns a copy of the last known list.
func (s *Store) Cached() []Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.cache)
}

// Clear drops the cache, e.g. on sign-out.
func (s *Store) Clear() {
	s.mu.Lock()
	s.cache = nil
	s.mu.Unlock()
}

// Domain errors pass through; everything else becomes a BackendError.
func wrapBackend(op string, err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoSession) || errors.Is(err, ErrInvalid) {
		return err
	}
	return &BackendError{Op: op, Err: err}
}
