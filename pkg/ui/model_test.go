package ui

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerpilot/careerpilot/pkg/auth"
	"github.com/careerpilot/careerpilot/pkg/profile"
	"github.com/careerpilot/careerpilot/pkg/report"
	"github.com/careerpilot/careerpilot/pkg/session"
	"github.com/careerpilot/careerpilot/pkg/workflow"
)

type fakeController struct {
	mu    sync.Mutex
	view  workflow.ViewState
	calls []string
	set   map[profile.Field]string
	cred  workflow.Credentials
	token string
	ch    chan struct{}
}

func newFakeController(v workflow.ViewState) *fakeController {
	return &fakeController{view: v, set: map[profile.Field]string{}, ch: make(chan struct{}, 1)}
}

func (f *fakeController) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeController) Snapshot() workflow.ViewState { return f.view }
func (f *fakeController) Subscribe() (<-chan struct{}, func()) { return f.ch, func() {} }
func (f *fakeController) Start() error { f.record("start"); return nil }
func (f *fakeController) Home() { f.record("home") }
func (f *fakeController) Cancel() error { f.record("cancel"); return nil }
func (f *fakeController) Submit(context.Context) error { f.record("submit"); return nil }
func (f *fakeController) Save(context.Context) error { f.record("save"); return nil }
func (f *fakeController) OpenSaved(context.Context) error { f.record("saved"); return nil }
func (f *fakeController) PrevStep() { f.record("prev") }
func (f *fakeController) SignOut(context.Context) error { f.record("signout"); return nil }
func (f *fakeController) SetAuthMode(workflow.AuthMode) { f.record("mode") }
func (f *fakeController) DismissToast() { f.record("dismiss") }

func (f *fakeController) SignInWithProvider(_ context.Context, p auth.Provider, credential string) error {
	f.mu.Lock()
	f.token = credential
	f.mu.Unlock()
	f.record("provider " + string(p))
	return nil
}

func (f *fakeController) Delete(_ context.Context, id uuid.UUID) error {
	f.record("delete " + id.String())
	return nil
}

func (f *fakeController) ViewReport(id uuid.UUID) error {
	f.record("view " + id.String())
	return nil
}

func (f *fakeController) SetField(field profile.Field, value string) error {
	f.mu.Lock()
	f.set[field] = value
	f.mu.Unlock()
	return nil
}

func (f *fakeController) NextStep() error {
	f.record("next")
	return profile.ErrStepIncomplete
}

func (f *fakeController) SubmitAuth(_ context.Context, cred workflow.Credentials) error {
	f.mu.Lock()
	f.cred = cred
	f.mu.Unlock()
	f.record("auth")
	return nil
}

func signedIn() session.State {
	return session.Authenticated(auth.Session{UserID: uuid.New(), Email: "alex@example.com", FullName: "Alex"})
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// exec runs the command returned by Update, as the program would.
func exec(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func TestModel_HomeKeys(t *testing.T) {
	fc := newFakeController(workflow.ViewState{Session: signedIn(), Page: workflow.PageHome})
	m := New(context.Background(), fc, nil)

	_, cmd := m.Update(key("n"))
	assert.Nil(t, cmd)

	_, cmd = m.Update(key("s"))
	msg := exec(t, cmd)
	assert.Equal(t, doneMsg{op: "open saved"}, msg)
	assert.Equal(t, []string{"start", "saved"}, fc.calls)
	assert.Contains(t, m.View(), "Find the career that fits you")
}

func TestModel_FormTypingSetsField(t *testing.T) {
	fc := newFakeController(workflow.ViewState{
		Session: signedIn(),
		Page:    workflow.PageForm,
		Step:    profile.StepBackground,
		Profile: profile.New(),
	})
	m := New(context.Background(), fc, nil)

	next, _ := m.Update(key("A"))
	assert.Equal(t, "A", fc.set[profile.FieldName])

	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"next"}, fc.calls)
	assert.Contains(t, next.View(), "Please fill in all fields to continue.")

	_, _ = next.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, []string{"next", "cancel"}, fc.calls)
}

func TestModel_SubmitOnLastStep(t *testing.T) {
	fc := newFakeController(workflow.ViewState{
		Session:   signedIn(),
		Page:      workflow.PageForm,
		Step:      profile.StepPreferences,
		Profile:   profile.New(),
		CanSubmit: true,
	})
	m := New(context.Background(), fc, nil)
	assert.Contains(t, m.View(), "[Remote]")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, string(profile.WorkStyleOffice), fc.set[profile.FieldWorkStyle])
	assert.Contains(t, next.View(), "[In-Office]")

	_, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	exec(t, cmd)
	assert.Equal(t, []string{"submit"}, fc.calls)
}

func TestModel_AuthSubmit(t *testing.T) {
	fc := newFakeController(workflow.ViewState{Session: session.Anonymous()})
	m := New(context.Background(), fc, nil)
	assert.Contains(t, m.View(), "Welcome back")

	var tm tea.Model = m
	for _, r := range "a@b.co" {
		tm, _ = tm.Update(key(string(r)))
	}
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyTab})
	for _, r := range "secret1" {
		tm, _ = tm.Update(key(string(r)))
	}
	_, cmd := tm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, doneMsg{op: "auth"}, exec(t, cmd))
	assert.Equal(t, workflow.Credentials{Email: "a@b.co", Password: "secret1"}, fc.cred)
}

func TestModel_GoogleSignIn(t *testing.T) {
	fc := newFakeController(workflow.ViewState{Session: session.Anonymous()})
	m := New(context.Background(), fc, nil)
	assert.Contains(t, m.View(), "ctrl+g Google")

	var tm tea.Model = m
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	assert.Contains(t, tm.View(), "Continue with Google")

	_, cmd := tm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "an empty token is not submitted")

	for _, r := range "tok-123" {
		tm, _ = tm.Update(key(string(r)))
	}
	_, cmd = tm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, doneMsg{op: "google"}, exec(t, cmd))
	assert.Equal(t, []string{"provider google"}, fc.calls)
	assert.Equal(t, "tok-123", fc.token)
	assert.Empty(t, fc.cred.Email)
}

func TestModel_GoogleSignInEscReturnsToForm(t *testing.T) {
	fc := newFakeController(workflow.ViewState{Session: session.Anonymous()})
	m := New(context.Background(), fc, nil)

	var tm tea.Model = m
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotContains(t, tm.View(), "Continue with Google")

	for _, r := range "a@b.co" {
		tm, _ = tm.Update(key(string(r)))
	}
	_, cmd := tm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	exec(t, cmd)
	assert.Equal(t, "a@b.co", fc.cred.Email)
	assert.Equal(t, []string{"auth"}, fc.calls)
}

func TestModel_DismissToast(t *testing.T) {
	fc := newFakeController(workflow.ViewState{
		Session: signedIn(),
		Page:    workflow.PageHome,
		Toast:   &workflow.Toast{Message: workflow.MsgSaved, Kind: workflow.ToastSuccess},
	})
	m := New(context.Background(), fc, nil)
	assert.Contains(t, m.View(), workflow.MsgSaved)
	assert.Contains(t, m.View(), "ctrl+x dismiss")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Nil(t, cmd)
	assert.Equal(t, []string{"dismiss"}, fc.calls)
	assert.NotContains(t, next.View(), workflow.MsgSaved)

	// Without a toast the key does nothing.
	fc.calls = nil
	fc.view.Toast = nil
	m = New(context.Background(), fc, nil)
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Empty(t, fc.calls)
}

func TestModel_SavedList(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	fc := newFakeController(workflow.ViewState{
		Session: signedIn(),
		Page:    workflow.PageSaved,
		Saved:   []report.Report{{ID: a, Name: "Alex"}, {ID: b, Name: "Alex"}},
	})
	m := New(context.Background(), fc, nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := next.Update(key("d"))
	exec(t, cmd)
	_, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"delete " + b.String(), "view " + b.String()}, fc.calls)
}

func TestModel_ChangeNotification(t *testing.T) {
	fc := newFakeController(workflow.ViewState{Session: session.Pending()})
	m := New(context.Background(), fc, nil)
	assert.Contains(t, m.View(), "Checking your session")

	fc.view = workflow.ViewState{Session: signedIn(), UserName: "Alex", Page: workflow.PageHome}
	next, cmd := m.Update(changedMsg{})
	require.NotNil(t, cmd)
	assert.Contains(t, next.View(), "Alex")

	close(fc.ch)
	assert.Equal(t, closedMsg{}, cmd())
}
