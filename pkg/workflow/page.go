// Package workflow is the page-level state machine behind every CareerPilot
// front end: it gates pages on the session, drives the assessment wizard,
// runs generation and keeps saved reports in sync.
package workflow

import (
	"errors"
	"fmt"
)

// Page is a top-level view.
type Page int

const (
	PageHome Page = iota
	PageForm
	PageLoading
	PageResults
	PageSaved
)

func (p Page) String() string {
	switch p {
	case PageHome:
		return "home"
	case PageForm:
		return "form"
	case PageLoading:
		return "loading"
	case PageResults:
		return "results"
	case PageSaved:
		return "saved"
	default:
		return fmt.Sprintf("page(%d)", int(p))
	}
}

// Action is a navigation event.
type Action int

const (
	ActionStart Action = iota
	ActionSubmit
	ActionSucceed
	ActionFail
	ActionCancel
	ActionHome
	ActionOpenSaved
	ActionViewReport
)

func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionSubmit:
		return "submit"
	case ActionSucceed:
		return "succeed"
	case ActionFail:
		return "fail"
	case ActionCancel:
		return "cancel"
	case ActionHome:
		return "home"
	case ActionOpenSaved:
		return "open_saved"
	case ActionViewReport:
		return "view_report"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

var ErrIllegalTransition = errors.New("illegal page transition")

// Transition returns the page reached from p by a. Every (page, action)
// pair is decided here; an illegal pair returns ErrIllegalTransition and p.
func Transition(p Page, a Action) (Page, error) {
	switch a {
	case ActionStart:
		// A second submission is impossible while one is in flight.
		if p != PageLoading {
			return PageForm, nil
		}
	case ActionSubmit:
		if p == PageForm {
			return PageLoading, nil
		}
	case ActionSucceed:
		if p == PageLoading {
			return PageResults, nil
		}
	case ActionFail:
		if p == PageLoading {
			return PageForm, nil
		}
	case ActionCancel:
		switch p {
		case PageLoading:
			return PageForm, nil
		case PageForm:
			return PageHome, nil
		}
	case ActionHome:
		return PageHome, nil
	case ActionOpenSaved:
		return PageSaved, nil
	case ActionViewReport:
		if p == PageSaved {
			return PageResults, nil
		}
	}
	return p, fmt.Errorf("%w: %s on %s", ErrIllegalTransition, a, p)
}
