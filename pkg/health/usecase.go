package health

import (
	"context"
	"errors"
	"fmt"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Status is the outcome of every checker by name: "ok" or the error text.
type Status map[string]string

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	Ready(ctx context.Context) (Status, error)
}

type service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers.
func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers}
}

// Ready runs every checker, even after a failure, and joins the errors.
func (s *service) Ready(ctx context.Context) (Status, error) {
	status := make(Status, len(s.checkers))
	var errs []error
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			status[ch.Name()] = err.Error()
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
			continue
		}
		status[ch.Name()] = "ok"
	}
	return status, errors.Join(errs...)
}
