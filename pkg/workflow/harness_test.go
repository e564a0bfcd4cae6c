package workflow

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/careerpilot/careerpilot/pkg/auth"
	"github.com/careerpilot/careerpilot/pkg/career"
	"github.com/careerpilot/careerpilot/pkg/profile"
	"github.com/careerpilot/careerpilot/pkg/report"
	"github.com/careerpilot/careerpilot/pkg/repository/memory"
	"github.com/careerpilot/careerpilot/pkg/security/jwt"
	"github.com/careerpilot/careerpilot/pkg/session"
)

// stubGen returns canned results. With hold set, Generate waits for a value
// on hold or for ctx to end.
type stubGen struct {
	mu      sync.Mutex
	recs    []career.Recommendation
	err     error
	hold    chan struct{}
	started chan struct{}
	calls   int
	lastCtx context.Context
}

func newStubGen() *stubGen {
	return &stubGen{started: make(chan struct{}, 8)}
}

func (g *stubGen) Generate(ctx context.Context, _ profile.Profile) ([]career.Recommendation, error) {
	g.mu.Lock()
	g.calls++
	g.lastCtx = ctx
	hold, recs, err := g.hold, g.recs, g.err
	g.mu.Unlock()

	g.started <- struct{}{}
	if hold != nil {
		select {
		case <-hold:
		case <-ctx.Done():
			return nil, &career.BackendError{Err: ctx.Err()}
		}
	}
	return career.CloneAll(recs), err
}

func (g *stubGen) set(recs []career.Recommendation, err error) {
	g.mu.Lock()
	g.recs, g.err = recs, err
	g.mu.Unlock()
}

func (g *stubGen) holdCalls() chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hold = make(chan struct{})
	return g.hold
}

// heldSaves blocks report saves while hold is set.
type heldSaves struct {
	report.UseCase
	mu      sync.Mutex
	hold    chan struct{}
	started chan struct{}
}

func (u *heldSaves) Save(ctx context.Context, ownerID uuid.UUID, r report.Report) (report.Report, error) {
	u.mu.Lock()
	hold := u.hold
	u.mu.Unlock()
	if hold != nil {
		u.started <- struct{}{}
		<-hold
	}
	return u.UseCase.Save(ctx, ownerID, r)
}

func (u *heldSaves) holdNext() chan struct{} {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.hold = make(chan struct{})
	return u.hold
}

func (u *heldSaves) release() {
	u.mu.Lock()
	hold := u.hold
	u.hold = nil
	u.mu.Unlock()
	close(hold)
}

type harness struct {
	ctrl     *Controller
	sessions *auth.SessionService
	sess     *session.Store
	reports  *report.Store
	repo     *memory.ReportRepository
	saves    *heldSaves
	gen      *stubGen
	now      time.Time
	nowMu    sync.Mutex
}

func (h *harness) clock() time.Time {
	h.nowMu.Lock()
	defer h.nowMu.Unlock()
	return h.now
}

func (h *harness) advance(d time.Duration) {
	h.nowMu.Lock()
	h.now = h.now.Add(d)
	h.nowMu.Unlock()
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		repo: memory.NewReportRepository(),
		gen:  newStubGen(),
		now:  time.Date(2026, time.March, 7, 9, 0, 0, 0, time.UTC),
	}
	tokens := jwt.NewGenerator("test-secret", "careerpilot", time.Hour)
	uc := auth.NewAuthService(memory.NewUserRepository(), tokens)
	h.sessions = auth.NewSessionService(uc, tokens, auth.NewFileTokenStore(filepath.Join(t.TempDir(), "session.json")))

	h.sess = session.NewStore(h.sessions,
		session.WithPrefiller(func(name string) { h.ctrl.PrefillName(name) }),
		session.WithCacheClearer(func() { h.reports.Clear() }),
	)
	h.saves = &heldSaves{UseCase: report.NewService(h.repo), started: make(chan struct{}, 1)}
	h.reports = report.NewStore(h.saves, h.sess.UserID, nil)
	h.ctrl = New(Deps{
		Generator: h.gen,
		Reports:   h.reports,
		Auth:      h.sessions,
		Session:   h.sess,
	}, WithLoadingTick(time.Millisecond), WithClock(h.clock))

	h.sess.Start(context.Background())
	t.Cleanup(func() {
		h.ctrl.Close()
		h.sess.Close()
	})
	return h
}

// signIn registers alex@example.com and logs in through the auth form.
func (h *harness) signIn(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, h.sessions.SignUp(ctx, "alex@example.com", "secret1", ""))
	h.ctrl.SetAuthMode(AuthLogin)
	require.NoError(t, h.ctrl.SubmitAuth(ctx, Credentials{Email: "alex@example.com", Password: "secret1"}))
	require.Equal(t, GatePages, h.ctrl.Snapshot().Gate())
}

// fillAlex walks the wizard to step 3 with the Alex profile.
func (h *harness) fillAlex(t *testing.T) {
	t.Helper()
	c := h.ctrl
	require.NoError(t, c.Start())
	require.NoError(t, c.SetField(profile.FieldName, "Alex"))
	require.NoError(t, c.SetField(profile.FieldEducation, "Bachelor's Degree"))
	require.NoError(t, c.NextStep())
	require.NoError(t, c.SetField(profile.FieldSkills, "Python, Excel"))
	require.NoError(t, c.SetField(profile.FieldInterests, "data"))
	require.NoError(t, c.NextStep())
	require.NoError(t, c.SetField(profile.FieldWorkStyle, "analytical"))
}

func dataAnalyst() []career.Recommendation {
	return []career.Recommendation{{
		ID:         "c1",
		Title:      "Data Analyst",
		MatchScore: 88,
		Analysis: career.SkillAnalysis{
			Required: []string{"SQL", "Excel"},
			Matching: []string{"Excel"},
			Missing:  []string{"SQL"},
		},
		Roadmap: []career.RoadmapStep{{Title: "Month 1-2", Focus: "SQL basics"}},
	}}
}

// submitAsync runs Submit on its own goroutine and waits until the
// generator has been called.
func (h *harness) submitAsync(t *testing.T) <-chan error {
	t.Helper()
	for drained := false; !drained; {
		select {
		case <-h.gen.started:
		default:
			drained = true
		}
	}
	done := make(chan error, 1)
	go func() { done <- h.ctrl.Submit(context.Background()) }()
	select {
	case <-h.gen.started:
	case <-time.After(2 * time.Second):
		t.Fatal("generator was not called")
	}
	return done
}

func waitErr(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Submit did not return")
		return nil
	}
}
