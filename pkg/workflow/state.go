package workflow

import (
	"time"

	"github.com/careerpilot/careerpilot/pkg/career"
	"github.com/careerpilot/careerpilot/pkg/profile"
	"github.com/careerpilot/careerpilot/pkg/report"
	"github.com/careerpilot/careerpilot/pkg/session"
)

// Gate is what the front end may show for the current session.
type Gate int

const (
	// GateLoading blocks everything until the session is known.
	GateLoading Gate = iota
	// GateAuth shows only the sign-in view.
	GateAuth
	// GatePages shows the page given by ViewState.Page.
	GatePages
)

type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
)

// DefaultToastTTL is how long a toast stays visible.
const DefaultToastTTL = 3 * time.Second

type Toast struct {
	Message string
	Kind    ToastKind
	Expires time.Time
}

type AuthMode int

const (
	AuthLogin AuthMode = iota
	AuthSignUp
)

func (m AuthMode) String() string {
	if m == AuthSignUp {
		return "signup"
	}
	return "login"
}

// AuthForm is the state of the sign-in view.
type AuthForm struct {
	Mode    AuthMode
	Busy    bool
	Error   string
	Success string
}

// ViewState is everything a front end needs to render one frame. Snapshots
// are copies; mutating them has no effect on the controller.
type ViewState struct {
	Session  session.State
	UserName string

	Page Page

	Step      profile.Step
	Profile   profile.Profile
	CanNext   bool
	CanSubmit bool
	Percent   int
	// Error is the message of the last failed generation, shown on the form.
	Error string

	LoadingStep  int
	LoadingSteps []string

	Results      []career.Recommendation
	Selected     *report.Report
	AlreadySaved bool

	Saved []report.Report

	Toast *Toast
	Auth  AuthForm
}

func (v ViewState) Gate() Gate {
	switch v.Session.Kind() {
	case session.KindAuthenticated:
		return GatePages
	case session.KindAnonymous:
		return GateAuth
	default:
		return GateLoading
	}
}

// CurrentLoadingStep is the label of the active loading step.
func (v ViewState) CurrentLoadingStep() string {
	if v.LoadingStep < 0 || v.LoadingStep >= len(v.LoadingSteps) {
		return ""
	}
	return v.LoadingSteps[v.LoadingStep]
}
