package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/careerpilot/careerpilot/pkg/auth"
	"github.com/careerpilot/careerpilot/pkg/profile"
	"github.com/careerpilot/careerpilot/pkg/workflow"
)

// Controller is the part of *workflow.Controller the terminal UI drives.
type Controller interface {
	Snapshot() workflow.ViewState
	Subscribe() (<-chan struct{}, func())
	Start() error
	Home()
	Cancel() error
	Submit(ctx context.Context) error
	Save(ctx context.Context) error
	Delete(ctx context.Context, id uuid.UUID) error
	OpenSaved(ctx context.Context) error
	ViewReport(id uuid.UUID) error
	SetField(f profile.Field, value string) error
	NextStep() error
	PrevStep()
	SetAuthMode(m workflow.AuthMode)
	SubmitAuth(ctx context.Context, cred workflow.Credentials) error
	SignInWithProvider(ctx context.Context, provider auth.Provider, credential string) error
	SignOut(ctx context.Context) error
	DismissToast()
}

type (
	changedMsg struct{}
	closedMsg  struct{}
	doneMsg    struct {
		op  string
		err error
	}
)

const (
	authEmail = iota
	authPassword
	authFullName
)

type fieldInput struct {
	field profile.Field
	label string
	input textinput.Model
}

// Model is the Bubble Tea model. All state lives in the controller; the
// model only holds widgets and the last snapshot.
type Model struct {
	ctrl   Controller
	ctx    context.Context
	log    *zap.Logger
	styles Styles

	updates     <-chan struct{}
	unsubscribe func()
	view        workflow.ViewState

	authInputs []textinput.Model
	authFocus  int
	// googleOpen replaces the email form with a Google ID token prompt.
	googleOpen  bool
	googleInput textinput.Model

	formOpen   bool
	formStep   profile.Step
	formInputs []fieldInput
	formFocus  int

	spinner spinner.Model
	results viewport.Model
	cursor  int
	notice  string

	width  int
	height int
}

// New subscribes to ctrl; the subscription ends when the program quits.
func New(ctx context.Context, ctrl Controller, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(Accent)

	updates, unsubscribe := ctrl.Subscribe()
	m := Model{
		ctrl:        ctrl,
		ctx:         ctx,
		log:         log,
		styles:      DefaultStyles(),
		updates:     updates,
		unsubscribe: unsubscribe,
		authInputs:  newAuthInputs(),
		googleInput: newGoogleInput(),
		spinner:     sp,
		results:     viewport.New(80, 20),
		width:       80,
		height:      24,
	}
	m.refresh()
	return m
}

func newAuthInputs() []textinput.Model {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = "Email     "
	email.Focus()

	password := textinput.New()
	password.Placeholder = "at least 6 characters"
	password.Prompt = "Password  "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	name := textinput.New()
	name.Placeholder = "optional"
	name.Prompt = "Full name "

	return []textinput.Model{email, password, name}
}

func newGoogleInput() textinput.Model {
	in := textinput.New()
	in.Placeholder = "paste the ID token from Google"
	in.Prompt = "ID token  "
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '•'
	return in
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForChange(m.updates), m.spinner.Tick, textinput.Blink)
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return closedMsg{}
		}
		return changedMsg{}
	}
}

// run executes a blocking controller call off the render loop.
func (m Model) run(op string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return doneMsg{op: op, err: fn(ctx)}
	}
}

func (m *Model) refresh() {
	prevPage := m.view.Page
	m.view = m.ctrl.Snapshot()

	inForm := m.view.Gate() == workflow.GatePages && m.view.Page == workflow.PageForm
	if inForm && (!m.formOpen || m.formStep != m.view.Step) {
		m.buildForm()
	}
	m.formOpen = inForm

	if m.view.Page == workflow.PageResults {
		m.results.SetContent(renderResults(m.view, m.styles, m.contentWidth()))
		if prevPage != workflow.PageResults {
			m.results.GotoTop()
		}
	}
	if m.cursor >= len(m.view.Saved) {
		m.cursor = max(len(m.view.Saved)-1, 0)
	}
}

func (m *Model) buildForm() {
	p := m.view.Profile
	m.formStep = m.view.Step
	m.formFocus = 0
	m.formInputs = m.formInputs[:0:0]
	for _, f := range profile.Fields(m.view.Step) {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = max(m.contentWidth()-4, 20)
		var label string
		switch f {
		case profile.FieldName:
			label, ti.Placeholder = "Full name", "Alex Morgan"
			ti.SetValue(p.Name)
		case profile.FieldEducation:
			label, ti.Placeholder = "Education", strings.Join(profile.EducationLevels(), " / ")
			ti.SetValue(p.Education)
		case profile.FieldSkills:
			label, ti.Placeholder = "Current skills", "Python, Excel, Communication"
			ti.SetValue(p.Skills)
		case profile.FieldInterests:
			label, ti.Placeholder = "Interests", "Data, design, healthcare"
			ti.SetValue(p.Interests)
		case profile.FieldWorkStyle:
			label = "Work style"
		case profile.FieldGoal:
			label, ti.Placeholder = "Long-term goal (optional)", "Lead a product team"
			ti.SetValue(p.Goal)
		}
		m.formInputs = append(m.formInputs, fieldInput{field: f, label: label, input: ti})
	}
	m.focusForm(0)
}

func (m *Model) focusForm(i int) {
	if len(m.formInputs) == 0 {
		return
	}
	m.formFocus = (i + len(m.formInputs)) % len(m.formInputs)
	for j := range m.formInputs {
		if j == m.formFocus && m.formInputs[j].field != profile.FieldWorkStyle {
			m.formInputs[j].input.Focus()
		} else {
			m.formInputs[j].input.Blur()
		}
	}
}

func (m *Model) focusAuth(i int) {
	n := 2
	if m.view.Auth.Mode == workflow.AuthSignUp {
		n = 3
	}
	m.authFocus = (i + n) % n
	for j := range m.authInputs {
		if j == m.authFocus {
			m.authInputs[j].Focus()
		} else {
			m.authInputs[j].Blur()
		}
	}
}

func (m Model) contentWidth() int {
	return max(m.width-4, 40)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.results.Width = m.contentWidth()
		m.results.Height = max(msg.Height-6, 5)
		m.refresh()
		return m, nil

	case changedMsg:
		m.refresh()
		return m, waitForChange(m.updates)

	case closedMsg:
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case doneMsg:
		m.handleDone(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		if msg.Type == tea.KeyCtrlX && m.view.Toast != nil {
			m.ctrl.DismissToast()
			m.view.Toast = nil
			return m, nil
		}
		m.notice = ""
		switch m.view.Gate() {
		case workflow.GateLoading:
			return m, nil
		case workflow.GateAuth:
			return m.updateAuth(msg)
		}
		switch m.view.Page {
		case workflow.PageHome:
			return m.updateHome(msg)
		case workflow.PageForm:
			return m.updateForm(msg)
		case workflow.PageLoading:
			if msg.Type == tea.KeyEsc {
				_ = m.ctrl.Cancel()
			}
			return m, nil
		case workflow.PageResults:
			return m.updateResults(msg)
		case workflow.PageSaved:
			return m.updateSaved(msg)
		}
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	return m, tea.Quit
}

func (m *Model) handleDone(msg doneMsg) {
	switch {
	case msg.err == nil:
		switch msg.op {
		case "auth":
			m.authInputs[authPassword].SetValue("")
		case "google":
			m.closeGoogle()
		}
	case errors.Is(msg.err, workflow.ErrDiscarded):
		m.log.Debug("result discarded", zap.String("op", msg.op))
	default:
		// Failures are already part of the snapshot as form errors or toasts.
		m.log.Debug("action failed", zap.String("op", msg.op), zap.Error(msg.err))
	}
}

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.googleOpen {
		return m.updateGoogle(msg)
	}
	switch msg.Type {
	case tea.KeyCtrlG:
		m.googleOpen = true
		m.googleInput.SetValue("")
		for i := range m.authInputs {
			m.authInputs[i].Blur()
		}
		cmd := m.googleInput.Focus()
		return m, cmd
	case tea.KeyTab, tea.KeyDown:
		m.focusAuth(m.authFocus + 1)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.focusAuth(m.authFocus - 1)
		return m, nil
	case tea.KeyCtrlT:
		next := workflow.AuthSignUp
		if m.view.Auth.Mode == workflow.AuthSignUp {
			next = workflow.AuthLogin
		}
		m.ctrl.SetAuthMode(next)
		m.view.Auth.Mode = next
		m.focusAuth(authEmail)
		return m, nil
	case tea.KeyEnter:
		if m.view.Auth.Busy {
			return m, nil
		}
		cred := workflow.Credentials{
			Email:    m.authInputs[authEmail].Value(),
			Password: m.authInputs[authPassword].Value(),
			FullName: m.authInputs[authFullName].Value(),
		}
		return m, m.run("auth", func(ctx context.Context) error {
			return m.ctrl.SubmitAuth(ctx, cred)
		})
	}
	var cmd tea.Cmd
	m.authInputs[m.authFocus], cmd = m.authInputs[m.authFocus].Update(msg)
	return m, cmd
}

func (m Model) updateGoogle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlG:
		m.closeGoogle()
		return m, nil
	case tea.KeyEnter:
		token := strings.TrimSpace(m.googleInput.Value())
		if m.view.Auth.Busy || token == "" {
			return m, nil
		}
		return m, m.run("google", func(ctx context.Context) error {
			return m.ctrl.SignInWithProvider(ctx, auth.ProviderGoogle, token)
		})
	}
	var cmd tea.Cmd
	m.googleInput, cmd = m.googleInput.Update(msg)
	return m, cmd
}

func (m *Model) closeGoogle() {
	m.googleOpen = false
	m.googleInput.SetValue("")
	m.googleInput.Blur()
	m.focusAuth(m.authFocus)
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n", "enter":
		if err := m.ctrl.Start(); err != nil {
			m.notice = err.Error()
		}
	case "s":
		return m, m.run("open saved", m.ctrl.OpenSaved)
	case "o":
		return m, m.run("sign out", m.ctrl.SignOut)
	case "q":
		return m.quit()
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		_ = m.ctrl.Cancel()
		return m, nil
	case tea.KeyCtrlB:
		m.ctrl.PrevStep()
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		m.focusForm(m.formFocus + 1)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.focusForm(m.formFocus - 1)
		return m, nil
	case tea.KeyEnter:
		if m.view.CanSubmit {
			return m, m.run("generate", m.ctrl.Submit)
		}
		if err := m.ctrl.NextStep(); errors.Is(err, profile.ErrStepIncomplete) {
			m.notice = "Please fill in all fields to continue."
		}
		return m, nil
	}
	if len(m.formInputs) == 0 {
		return m, nil
	}

	fi := &m.formInputs[m.formFocus]
	if fi.field == profile.FieldWorkStyle {
		switch msg.Type {
		case tea.KeyLeft:
			m.cycleWorkStyle(-1)
		case tea.KeyRight, tea.KeySpace:
			m.cycleWorkStyle(1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	before := fi.input.Value()
	fi.input, cmd = fi.input.Update(msg)
	if v := fi.input.Value(); v != before {
		if err := m.ctrl.SetField(fi.field, v); err != nil {
			m.notice = err.Error()
		}
	}
	return m, cmd
}

func (m *Model) cycleWorkStyle(delta int) {
	styles := profile.WorkStyles()
	idx := 0
	for i, o := range styles {
		if o.Value == m.view.Profile.WorkStyle {
			idx = i
		}
	}
	next := styles[(idx+delta+len(styles))%len(styles)]
	if err := m.ctrl.SetField(profile.FieldWorkStyle, string(next.Value)); err == nil {
		m.view.Profile.WorkStyle = next.Value
	}
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s":
		if !m.view.AlreadySaved {
			return m, m.run("save", m.ctrl.Save)
		}
		return m, nil
	case "n":
		_ = m.ctrl.Start()
		return m, nil
	case "v":
		return m, m.run("open saved", m.ctrl.OpenSaved)
	case "h", "esc":
		m.ctrl.Home()
		return m, nil
	}
	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m Model) updateSaved(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.view.Saved)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(m.view.Saved) {
			_ = m.ctrl.ViewReport(m.view.Saved[m.cursor].ID)
		}
	case "d":
		if m.cursor < len(m.view.Saved) {
			id := m.view.Saved[m.cursor].ID
			return m, m.run("delete", func(ctx context.Context) error {
				return m.ctrl.Delete(ctx, id)
			})
		}
	case "h", "esc":
		m.ctrl.Home()
	}
	return m, nil
}

func (m Model) View() string {
	s := m.styles
	var body string
	switch m.view.Gate() {
	case workflow.GateLoading:
		body = renderSessionLoader(s, m.spinner.View())
	case workflow.GateAuth:
		body = m.viewAuth()
	default:
		switch m.view.Page {
		case workflow.PageHome:
			body = renderHome(m.view, s)
		case workflow.PageForm:
			body = m.viewForm()
		case workflow.PageLoading:
			body = renderLoading(m.view, s, m.spinner.View())
		case workflow.PageResults:
			body = m.results.View()
		case workflow.PageSaved:
			body = renderSaved(m.view, s, m.cursor)
		}
	}

	parts := []string{renderHeader(m.view, s, m.width)}
	if t := renderToast(m.view.Toast, s); t != "" {
		parts = append(parts, t)
	}
	parts = append(parts, s.Content.Render(body))
	if m.notice != "" {
		parts = append(parts, s.Error.Render(m.notice))
	}
	help := helpFor(m.view)
	if m.googleOpen && m.view.Gate() == workflow.GateAuth {
		help = "enter sign in with Google · esc back · ctrl+c quit"
	}
	parts = append(parts, s.Footer.Render(help))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewAuth() string {
	s := m.styles
	a := m.view.Auth
	var b strings.Builder
	if a.Mode == workflow.AuthSignUp {
		b.WriteString(s.Title.Render("Create your account"))
	} else {
		b.WriteString(s.Title.Render("Welcome back"))
	}
	b.WriteString("\n\n")
	if m.googleOpen {
		b.WriteString(s.Muted.Render("Continue with Google"))
		b.WriteString("\n")
		b.WriteString(m.googleInput.View())
		b.WriteString("\n")
	} else {
		n := 2
		if a.Mode == workflow.AuthSignUp {
			n = 3
		}
		for i := 0; i < n; i++ {
			b.WriteString(m.authInputs[i].View())
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	switch {
	case a.Busy:
		b.WriteString(m.spinner.View() + " " + s.Muted.Render("Please wait..."))
	case a.Error != "":
		b.WriteString(s.Error.Render(a.Error))
	case a.Success != "":
		b.WriteString(s.Success.Render(a.Success))
	}
	return b.String()
}

func (m Model) viewForm() string {
	s := m.styles
	v := m.view
	var b strings.Builder
	b.WriteString(s.Title.Render(v.Step.Title()))
	b.WriteString("  ")
	b.WriteString(s.Muted.Render(progressBar(v.Percent, 20)))
	b.WriteString("\n\n")
	for i, fi := range m.formInputs {
		label := fi.label
		if i == m.formFocus {
			label = s.Selected.Render("> " + label)
		} else {
			label = "  " + label
		}
		b.WriteString(label)
		b.WriteString("\n  ")
		if fi.field == profile.FieldWorkStyle {
			b.WriteString(renderWorkStyles(v.Profile.WorkStyle, s))
		} else {
			b.WriteString(fi.input.View())
		}
		b.WriteString("\n\n")
	}
	if v.Error != "" {
		b.WriteString(s.Error.Render(v.Error))
		b.WriteString("\n")
	}
	return b.String()
}

func renderWorkStyles(current profile.WorkStyle, s Styles) string {
	opts := profile.WorkStyles()
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		if o.Value == current {
			out = append(out, s.Selected.Render("["+o.Label+"]"))
		} else {
			out = append(out, s.Muted.Render(" "+o.Label+" "))
		}
	}
	return strings.Join(out, " ")
}

func progressBar(percent, width int) string {
	filled := percent * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
