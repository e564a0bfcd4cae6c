package workflow

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/careerpilot/careerpilot/pkg/career"
	"github.com/careerpilot/careerpilot/pkg/profile"
	"github.com/careerpilot/careerpilot/pkg/session"
)

// Start opens the wizard on step 1. After a completed assessment the draft
// is cleared except for the name; otherwise the entered data is kept.
func (c *Controller) Start() error {
	c.mu.Lock()
	if _, ok := c.signedInLocked(); !ok {
		c.mu.Unlock()
		return ErrNotSignedIn
	}
	if err := c.moveLocked(ActionStart); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.completed {
		c.draft.Reset()
		c.completed = false
	} else {
		c.draft.Restart()
	}
	c.errMsg = ""
	c.mu.Unlock()
	c.notify()
	return nil
}

// Home navigates home from any page. Leaving the loading page aborts the
// generation and its result is discarded.
func (c *Controller) Home() {
	c.mu.Lock()
	_ = c.moveLocked(ActionHome)
	prog, cancel := c.abortLocked()
	c.draft.Restart()
	c.selected = nil
	c.alreadySaved = false
	c.errMsg = ""
	c.mu.Unlock()

	finish(prog, cancel)
	c.notify()
}

// Cancel leaves the current page: the form goes home, a running generation
// is aborted and the form is shown again on the last step.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	from := c.page
	if err := c.moveLocked(ActionCancel); err != nil {
		c.mu.Unlock()
		return err
	}
	var (
		prog   *Progress
		cancel context.CancelFunc
	)
	switch from {
	case PageLoading:
		prog, cancel = c.abortLocked()
		c.draft.ReturnToFinalStep()
		c.errMsg = MsgCancelled
	case PageForm:
		c.draft.Restart()
		c.errMsg = ""
	}
	c.mu.Unlock()

	finish(prog, cancel)
	if from == PageLoading {
		c.log.Info("generation cancelled by user")
	}
	c.notify()
	return nil
}

// OpenSaved shows the saved reports, clearing any selected report, and
// refreshes the list. A failed refresh is logged and shows an empty list.
func (c *Controller) OpenSaved(ctx context.Context) error {
	c.mu.Lock()
	if _, ok := c.signedInLocked(); !ok {
		c.mu.Unlock()
		return ErrNotSignedIn
	}
	_ = c.moveLocked(ActionOpenSaved)
	prog, cancel := c.abortLocked()
	c.selected = nil
	c.alreadySaved = false
	c.mu.Unlock()

	finish(prog, cancel)
	c.notify()
	c.RefreshSaved(ctx)
	return nil
}

// RefreshSaved reloads the saved list.
func (c *Controller) RefreshSaved(ctx context.Context) {
	reports, err := c.reports.List(ctx)
	if err != nil {
		c.log.Warn("fetching reports failed", zap.Error(err))
		reports = nil
	}
	c.mu.Lock()
	if _, ok := c.signedInLocked(); ok {
		c.saved = reports
	}
	c.mu.Unlock()
	c.notify()
}

// ViewReport shows a saved report as results. It cannot be saved again.
func (c *Controller) ViewReport(id uuid.UUID) error {
	c.mu.Lock()
	idx := -1
	for i := range c.saved {
		if c.saved[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return ErrUnknownReport
	}
	if err := c.moveLocked(ActionViewReport); err != nil {
		c.mu.Unlock()
		return err
	}
	sel := c.saved[idx].Clone()
	c.selected = &sel
	c.results = career.CloneAll(sel.Careers)
	c.alreadySaved = true
	c.mu.Unlock()
	c.notify()
	return nil
}

// SetField edits a field on the current wizard step.
func (c *Controller) SetField(f profile.Field, value string) error {
	c.mu.Lock()
	err := c.draft.Set(f, value)
	c.mu.Unlock()
	if err == nil {
		c.notify()
	}
	return err
}

func (c *Controller) NextStep() error {
	c.mu.Lock()
	err := c.draft.Next()
	c.mu.Unlock()
	if err == nil {
		c.notify()
	}
	return err
}

func (c *Controller) PrevStep() {
	c.mu.Lock()
	c.draft.Prev()
	c.mu.Unlock()
	c.notify()
}

// LoadProfile replaces the draft data, e.g. from command line flags.
func (c *Controller) LoadProfile(p profile.Profile) {
	c.mu.Lock()
	c.draft.Load(p)
	c.mu.Unlock()
	c.notify()
}

// PrefillName sets the draft name if the user has not typed one.
func (c *Controller) PrefillName(name string) {
	c.mu.Lock()
	changed := c.draft.PrefillName(name)
	c.mu.Unlock()
	if changed {
		c.notify()
	}
}

func (c *Controller) onSession(prev, next session.State) {
	var (
		prog    *Progress
		cancel  context.CancelFunc
		refresh bool
	)
	c.mu.Lock()
	switch {
	case next.Kind() == session.KindAuthenticated && prev.Kind() != session.KindAuthenticated:
		c.authForm = AuthForm{Mode: AuthLogin}
		c.page = PageHome
		refresh = !c.closed
	case prev.Kind() == session.KindAuthenticated && next.Kind() != session.KindAuthenticated:
		prog, cancel = c.abortLocked()
		c.page = PageHome
		c.draft.Restart()
		c.results = nil
		c.selected = nil
		c.alreadySaved = false
		c.saved = nil
		c.errMsg = ""
		c.authForm = AuthForm{Mode: AuthLogin}
	}
	c.mu.Unlock()

	finish(prog, cancel)
	c.notify()
	// Runs on the goroutine that signed in, so the list is loaded by the
	// time SignIn returns.
	if refresh {
		c.RefreshSaved(c.baseCtx)
	}
}
