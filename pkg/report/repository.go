package report

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("report not found")
	// ErrNoSession is returned, without touching storage, when no user is
	// signed in.
	ErrNoSession = errors.New("no signed-in user")
	ErrInvalid   = errors.New("invalid report")
)

// BackendError wraps a storage or transport failure.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string { return "report " + e.Op + ": " + e.Err.Error() }

func (e *BackendError) Unwrap() error { return e.Err }

// Repository stores reports. Every method is scoped to the owner.
type Repository interface {
	// ListByOwner returns the owner's reports, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Report, error)
	// Create stores r and returns it with the server-assigned id and timestamp.
	Create(ctx context.Context, r Report) (Report, error)
	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (Report, error)
	// DeleteForOwner returns ErrNotFound when no report with id belongs to ownerID.
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
