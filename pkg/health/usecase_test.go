package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerpilot/careerpilot/pkg/health/checkers"
	"github.com/careerpilot/careerpilot/pkg/llm"
)

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string { return s.name }
func (s stubChecker) Check(context.Context) error { return s.err }

func TestReady(t *testing.T) {
	status, err := NewService(stubChecker{name: "postgres"}, checkers.NewGeneratorChecker(func() bool { return true })).Ready(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Status{"postgres": "ok", "llm": "ok"}, status)
}

func TestReady_RunsAllCheckers(t *testing.T) {
	down := errors.New("connection refused")
	status, err := NewService(
		stubChecker{name: "postgres", err: down},
		checkers.NewGeneratorChecker(func() bool { return false }),
	).Ready(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, down)
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
	assert.Equal(t, "connection refused", status["postgres"])
	assert.Equal(t, llm.ErrNotConfigured.Error(), status["llm"])
}
