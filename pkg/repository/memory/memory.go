// Package memory holds map-backed repositories used by tests and local runs.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/careerpilot/careerpilot/pkg/auth"
	"github.com/careerpilot/careerpilot/pkg/report"
)

// UserRepository implements auth.UserRepository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]auth.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]auth.User)}
}

func (r *UserRepository) Create(_ context.Context, u auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.Email = strings.ToLower(u.Email)
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return auth.ErrUserAlreadyExists
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	email = strings.ToLower(email)
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return auth.User{}, auth.ErrNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return u, nil
}

// ReportRepository implements report.Repository. Reports created within the
// same clock tick keep their insertion order.
type ReportRepository struct {
	mu      sync.RWMutex
	reports map[uuid.UUID]stored
	seq     int64
	now     func() time.Time
	failure error
}

type stored struct {
	report.Report
	seq int64
}

func NewReportRepository() *ReportRepository {
	return &ReportRepository{reports: make(map[uuid.UUID]stored), now: time.Now}
}

// FailNext makes the next call return err.
func (r *ReportRepository) FailNext(err error) {
	r.mu.Lock()
	r.failure = err
	r.mu.Unlock()
}

func (r *ReportRepository) takeFailure() error {
	err := r.failure
	r.failure = nil
	return err
}

func (r *ReportRepository) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]report.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	var rows []stored
	for _, s := range r.reports {
		if s.UserID == ownerID {
			rows = append(rows, s)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})
	out := make([]report.Report, len(rows))
	for i, s := range rows {
		out[i] = s.Report.Clone()
	}
	return out, nil
}

func (r *ReportRepository) Create(_ context.Context, rep report.Report) (report.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return report.Report{}, err
	}
	rep = rep.Clone()
	rep.ID = uuid.New()
	rep.CreatedAt = r.now().UTC()
	r.seq++
	r.reports[rep.ID] = stored{Report: rep, seq: r.seq}
	return rep.Clone(), nil
}

func (r *ReportRepository) GetForOwner(_ context.Context, ownerID, id uuid.UUID) (report.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return report.Report{}, err
	}
	s, ok := r.reports[id]
	if !ok || s.UserID != ownerID {
		return report.Report{}, report.ErrNotFound
	}
	return s.Report.Clone(), nil
}

func (r *ReportRepository) DeleteForOwner(_ context.Context, ownerID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return err
	}
	s, ok := r.reports[id]
	if !ok || s.UserID != ownerID {
		return report.ErrNotFound
	}
	delete(r.reports, id)
	return nil
}

// Len returns the number of stored reports across all owners.
func (r *ReportRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.reports)
}
