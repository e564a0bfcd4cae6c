package workflow

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/careerpilot/careerpilot/pkg/report"
)

// Save stores the shown results as a report. On success the new report
// becomes the selected one, so the same results cannot be saved twice.
// Failures leave the page unchanged and show a toast.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	if c.page != PageResults {
		c.mu.Unlock()
		return ErrIllegalTransition
	}
	if c.alreadySaved {
		c.mu.Unlock()
		return ErrAlreadySaved
	}
	if c.results == nil {
		c.mu.Unlock()
		return ErrNoResults
	}
	userID, ok := c.signedInLocked()
	if !ok {
		c.setToastLocked(MsgLoginRequired, ToastError)
		c.mu.Unlock()
		c.notify()
		return report.ErrNoSession
	}
	r := report.New(userID, c.draft.Profile(), c.results, c.now())
	c.mu.Unlock()

	saved, err := c.reports.Insert(ctx, r)

	c.mu.Lock()
	current, _ := c.signedInLocked()
	switch {
	case err != nil:
		c.setToastLocked(MsgSaveFailed, ToastError)
	case current != userID:
		// The user changed while the insert was in flight.
		c.mu.Unlock()
		c.log.Info("saved report belongs to a previous session", zap.Stringer("report_id", saved.ID))
		return nil
	default:
		c.saved = prependReport(c.saved, saved)
		if c.page == PageResults {
			c.selected = &saved
			c.alreadySaved = true
		}
		c.setToastLocked(MsgSaved, ToastSuccess)
	}
	c.mu.Unlock()
	c.notify()
	return err
}

func prependReport(list []report.Report, r report.Report) []report.Report {
	out := make([]report.Report, 0, len(list)+1)
	out = append(out, r.Clone())
	for _, existing := range list {
		if existing.ID != r.ID {
			out = append(out, existing)
		}
	}
	return out
}

// Delete removes a saved report. The selected report is cleared only when it
// is the one deleted.
func (c *Controller) Delete(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	if _, ok := c.signedInLocked(); !ok {
		c.mu.Unlock()
		return report.ErrNoSession
	}
	c.mu.Unlock()

	err := c.reports.Delete(ctx, id)

	c.mu.Lock()
	if err != nil {
		c.setToastLocked(MsgDeleteFailed, ToastError)
		c.mu.Unlock()
		c.notify()
		return err
	}
	kept := c.saved[:0:0]
	for _, r := range c.saved {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	c.saved = kept
	if c.selected != nil && c.selected.ID == id {
		c.selected = nil
		c.alreadySaved = false
	}
	c.setToastLocked(MsgDeleted, ToastSuccess)
	c.mu.Unlock()
	c.notify()
	return nil
}
