package workflow

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/careerpilot/careerpilot/pkg/auth"
	"github.com/careerpilot/careerpilot/pkg/career"
	"github.com/careerpilot/careerpilot/pkg/profile"
	"github.com/careerpilot/careerpilot/pkg/report"
	"github.com/careerpilot/careerpilot/pkg/session"
)

var (
	ErrNotSignedIn   = errors.New("not signed in")
	ErrAlreadySaved  = errors.New("report is already saved")
	ErrNoResults     = errors.New("no results to save")
	ErrUnknownReport = errors.New("report is not in the saved list")
	// ErrDiscarded is returned by Submit when the user left the loading
	// page before the result arrived. The result is dropped.
	ErrDiscarded = errors.New("generation result discarded")
)

// Toast and auth messages shown to the user.
const (
	MsgSaved         = "Report saved successfully!"
	MsgSaveFailed    = "Failed to save report. Please try again."
	MsgDeleted       = "Report deleted."
	MsgDeleteFailed  = "Failed to delete report."
	MsgLoginRequired = "You must be logged in to save reports."
	MsgCancelled     = "Generation was cancelled."
	MsgSignedUp      = "Account created! You can now log in."
)

// ReportStore is the session-scoped report façade (report.Store).
type ReportStore interface {
	List(ctx context.Context) ([]report.Report, error)
	Insert(ctx context.Context, r report.Report) (report.Report, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Clear()
}

// Authenticator is the client side of auth (auth.SessionService).
type Authenticator interface {
	SignUp(ctx context.Context, email, password, fullName string) error
	SignIn(ctx context.Context, email, password string) (*auth.Session, error)
	SignInWithProvider(ctx context.Context, provider auth.Provider, credential string) (*auth.Session, error)
	SignOut(ctx context.Context) error
}

// SessionView is the observed session (session.Store).
type SessionView interface {
	State() session.State
	Watch(fn func(prev, next session.State)) func()
}

// Deps are the collaborators of a Controller.
type Deps struct {
	Generator career.Generator
	Reports   ReportStore
	Auth      Authenticator
	Session   SessionView
	Logger    *zap.Logger
}

type Option func(*Controller)

func WithLoadingTick(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.tick = d
		}
	}
}

func WithToastTTL(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.toastTTL = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// Controller owns the view state. Methods are safe for concurrent use and
// may block on network calls, so front ends call them off their render loop
// and re-render on Subscribe notifications. The mutex is never held across
// a network call or while stopping a Progress.
type Controller struct {
	gen      career.Generator
	reports  ReportStore
	auth     Authenticator
	sess     SessionView
	log      *zap.Logger
	now      func() time.Time
	tick     time.Duration
	toastTTL time.Duration
	steps    []string

	baseCtx context.Context
	stopAll context.CancelFunc
	unwatch func()

	mu           sync.Mutex
	page         Page
	draft        *profile.Draft
	completed    bool
	errMsg       string
	results      []career.Recommendation
	selected     *report.Report
	alreadySaved bool
	saved        []report.Report
	toast        *Toast
	toastTimer   *time.Timer
	authForm     AuthForm

	attempt     uint64
	cancelGen   context.CancelFunc
	progress    *Progress
	loadingStep int

	subs    map[int]chan struct{}
	nextSub int
	closed  bool
}

func New(deps Deps, opts ...Option) *Controller {
	baseCtx, stopAll := context.WithCancel(context.Background())
	c := &Controller{
		gen:      deps.Generator,
		reports:  deps.Reports,
		auth:     deps.Auth,
		sess:     deps.Session,
		log:      deps.Logger,
		now:      time.Now,
		tick:     DefaultLoadingTick,
		toastTTL: DefaultToastTTL,
		steps:    append([]string(nil), LoadingSteps...),
		baseCtx:  baseCtx,
		stopAll:  stopAll,
		page:     PageHome,
		draft:    profile.NewDraft(),
		subs:     make(map[int]chan struct{}),
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	for _, o := range opts {
		o(c)
	}
	c.unwatch = c.sess.Watch(c.onSession)
	return c
}

// Close aborts any generation, stops the toast timer and closes subscriptions.
func (c *Controller) Close() {
	c.unwatch()
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	prog, cancel := c.abortLocked()
	if c.toastTimer != nil {
		c.toastTimer.Stop()
	}
	subs := c.subs
	c.subs = map[int]chan struct{}{}
	c.mu.Unlock()

	finish(prog, cancel)
	c.stopAll()
	for _, ch := range subs {
		close(ch)
	}
}

// Subscribe returns a channel that receives a value after state changes.
// Bursts are coalesced. The channel is closed by Close or by the returned
// func.
func (c *Controller) Subscribe() (<-chan struct{}, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan struct{}, 1)
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
}

func (c *Controller) notify() {
	c.mu.Lock()
	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		select {
		case c.subs[id] <- struct{}{}:
		default:
		}
	}
	c.mu.Unlock()
}

// Snapshot returns a copy of the current view state.
func (c *Controller) Snapshot() ViewState {
	sess := c.sess.State()

	c.mu.Lock()
	defer c.mu.Unlock()
	v := ViewState{
		Session:      sess,
		UserName:     sess.DisplayName(),
		Page:         c.page,
		Step:         c.draft.Step(),
		Profile:      c.draft.Profile(),
		CanNext:      c.draft.CanNext(),
		CanSubmit:    c.draft.CanSubmit(),
		Percent:      c.draft.Percent(),
		Error:        c.errMsg,
		LoadingStep:  c.loadingStep,
		LoadingSteps: append([]string(nil), c.steps...),
		Results:      career.CloneAll(c.results),
		AlreadySaved: c.alreadySaved,
		Saved:        cloneReports(c.saved),
		Auth:         c.authForm,
	}
	if c.selected != nil {
		sel := c.selected.Clone()
		v.Selected = &sel
	}
	if c.toast != nil && c.now().Before(c.toast.Expires) {
		t := *c.toast
		v.Toast = &t
	}
	return v
}

func (c *Controller) signedInLocked() (uuid.UUID, bool) {
	return c.sess.State().UserID()
}

func (c *Controller) moveLocked(a Action) error {
	next, err := Transition(c.page, a)
	if err != nil {
		return err
	}
	if next != c.page {
		c.log.Debug("page transition",
			zap.Stringer("from", c.page),
			zap.Stringer("to", next),
			zap.Stringer("action", a),
		)
	}
	c.page = next
	return nil
}

// abortLocked invalidates the in-flight generation. The caller must finish
// the returned handles after unlocking.
func (c *Controller) abortLocked() (*Progress, context.CancelFunc) {
	prog, cancel := c.progress, c.cancelGen
	if prog != nil || cancel != nil {
		c.attempt++
	}
	c.progress, c.cancelGen = nil, nil
	c.loadingStep = 0
	return prog, cancel
}

func finish(prog *Progress, cancel context.CancelFunc) {
	if cancel != nil {
		cancel()
	}
	if prog != nil {
		prog.Stop()
	}
}

func (c *Controller) setToastLocked(msg string, kind ToastKind) {
	c.toast = &Toast{Message: msg, Kind: kind, Expires: c.now().Add(c.toastTTL)}
	if c.toastTimer != nil {
		c.toastTimer.Stop()
	}
	if !c.closed {
		c.toastTimer = time.AfterFunc(c.toastTTL, c.notify)
	}
}

// DismissToast hides the toast before it expires.
func (c *Controller) DismissToast() {
	c.mu.Lock()
	c.toast = nil
	c.mu.Unlock()
	c.notify()
}

func cloneReports(in []report.Report) []report.Report {
	if in == nil {
		return nil
	}
	out := make([]report.Report, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}
