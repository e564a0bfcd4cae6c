package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/careerpilot/careerpilot/pkg/career"
	"github.com/careerpilot/careerpilot/pkg/profile"
)

// rawPreview bounds the model output quoted in a parse error message.
const rawPreview = 240

// Submit generates recommendations for the draft. It moves Form→Loading,
// blocks until the generator returns, then moves to Results or back to the
// form's last step with an error. If the user left the loading page in the
// meantime the outcome is dropped and ErrDiscarded is returned.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if _, ok := c.signedInLocked(); !ok {
		c.mu.Unlock()
		return ErrNotSignedIn
	}
	if c.page != PageForm || !c.draft.CanSubmit() {
		c.mu.Unlock()
		return profile.ErrNotAtFinalStep
	}
	p := c.draft.Profile()
	if err := p.Validate(); err != nil {
		c.errMsg = career.UserMessage(career.ErrInvalidProfile)
		c.mu.Unlock()
		c.notify()
		return fmt.Errorf("%w: %v", career.ErrInvalidProfile, err)
	}
	if err := c.moveLocked(ActionSubmit); err != nil {
		c.mu.Unlock()
		return err
	}
	c.attempt++
	attempt := c.attempt
	genCtx, cancel := context.WithCancel(ctx)
	c.cancelGen = cancel
	c.errMsg = ""
	c.loadingStep = 0
	c.progress = StartProgress(len(c.steps), c.tick, func(i int) { c.onProgress(attempt, i) })
	prog := c.progress
	c.mu.Unlock()
	c.notify()

	started := time.Now()
	recs, err := c.gen.Generate(genCtx, p)
	finish(prog, cancel)

	c.mu.Lock()
	if c.attempt != attempt || c.page != PageLoading {
		c.mu.Unlock()
		c.log.Info("discarding stale generation result",
			zap.Uint64("attempt", attempt),
			zap.Bool("failed", err != nil),
		)
		return ErrDiscarded
	}
	c.progress, c.cancelGen = nil, nil
	c.loadingStep = 0

	if err != nil {
		_ = c.moveLocked(ActionFail)
		c.draft.ReturnToFinalStep()
		c.errMsg = failureMessage(err)
		c.mu.Unlock()
		c.log.Warn("generation failed", zap.Duration("elapsed", time.Since(started)), zap.Error(err))
		c.notify()
		return err
	}

	_ = c.moveLocked(ActionSucceed)
	c.results = recs
	c.selected = nil
	c.alreadySaved = false
	c.completed = true
	c.mu.Unlock()
	c.log.Info("generation succeeded", zap.Int("careers", len(recs)), zap.Duration("elapsed", time.Since(started)))
	c.notify()
	return nil
}

func (c *Controller) onProgress(attempt uint64, index int) {
	c.mu.Lock()
	if c.attempt != attempt || c.page != PageLoading {
		c.mu.Unlock()
		return
	}
	c.loadingStep = min(index, len(c.steps)-1)
	c.mu.Unlock()
	c.notify()
}

// failureMessage is the form error for a failed generation. Parse errors
// quote the start of the model output.
func failureMessage(err error) string {
	msg := career.UserMessage(err)
	var pe *career.ParseError
	if errors.As(err, &pe) && pe.Raw != "" {
		raw := pe.Raw
		if utf8.RuneCountInString(raw) > rawPreview {
			raw = string([]rune(raw)[:rawPreview]) + "..."
		}
		msg += "\nThe response was: " + raw
	}
	return msg
}
