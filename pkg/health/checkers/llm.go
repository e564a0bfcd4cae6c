package checkers

import (
	"context"

	"github.com/careerpilot/careerpilot/pkg/llm"
)

// GeneratorChecker fails while no model credential is configured. It never
// calls the model.
type GeneratorChecker struct {
	configured func() bool
}

func NewGeneratorChecker(configured func() bool) *GeneratorChecker {
	return &GeneratorChecker{configured: configured}
}

func (c *GeneratorChecker) Name() string { return "llm" }

func (c *GeneratorChecker) Check(context.Context) error {
	if c.configured == nil || !c.configured() {
		return llm.ErrNotConfigured
	}
	return nil
}
