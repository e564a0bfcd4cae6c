package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UseCase is the owner-scoped report service used by the HTTP handlers and
// by Store.
type UseCase interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]Report, error)
	Save(ctx context.Context, ownerID uuid.UUID, r Report) (Report, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (Report, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo, now: time.Now}
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID) ([]Report, error) {
	if ownerID == uuid.Nil {
		return nil, ErrNoSession
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

// Save stores r for ownerID. The owner always comes from the caller's
// identity, never from r.
func (s *service) Save(ctx context.Context, ownerID uuid.UUID, r Report) (Report, error) {
	if ownerID == uuid.Nil {
		return Report{}, ErrNoSession
	}
	r = r.Clone()
	r.ID = uuid.Nil
	r.UserID = ownerID
	r.Profile = r.Profile.Trimmed()
	if strings.TrimSpace(r.Name) == "" {
		r.Name = r.Profile.Name
	}
	if strings.TrimSpace(r.Education) == "" {
		r.Education = r.Profile.Education
	}
	if r.Date == "" {
		r.Date = s.now().Format(DateLayout)
	}
	if strings.TrimSpace(r.Name) == "" {
		return Report{}, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if r.Careers == nil {
		return Report{}, fmt.Errorf("%w: careers are required", ErrInvalid)
	}
	return s.repo.Create(ctx, r)
}

func (s *service) Get(ctx context.Context, ownerID, id uuid.UUID) (Report, error) {
	if ownerID == uuid.Nil {
		return Report{}, ErrNoSession
	}
	return s.repo.GetForOwner(ctx, ownerID, id)
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if ownerID == uuid.Nil {
		return ErrNoSession
	}
	return s.repo.DeleteForOwner(ctx, ownerID, id)
}
