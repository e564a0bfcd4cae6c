package checkers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/careerpilot/careerpilot/pkg/llm"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestDatabaseChecker(t *testing.T) {
	c := NewPostgresChecker(pingFunc(func(context.Context) error { return nil }))
	assert.Equal(t, "postgres", c.Name())
	assert.NoError(t, c.Check(context.Background()))

	down := errors.New("connection refused")
	c = NewPostgresChecker(pingFunc(func(context.Context) error { return down }))
	assert.ErrorIs(t, c.Check(context.Background()), down)
}

func TestDatabaseChecker_BoundsSlowPing(t *testing.T) {
	c := NewPostgresChecker(pingFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))
	c.timeout = 10 * time.Millisecond
	assert.ErrorIs(t, c.Check(context.Background()), context.DeadlineExceeded)
}

func TestGeneratorChecker(t *testing.T) {
	assert.NoError(t, NewGeneratorChecker(func() bool { return true }).Check(context.Background()))
	assert.ErrorIs(t, NewGeneratorChecker(func() bool { return false }).Check(context.Background()), llm.ErrNotConfigured)
	assert.ErrorIs(t, NewGeneratorChecker(nil).Check(context.Background()), llm.ErrNotConfigured)
}
