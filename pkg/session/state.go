// Package session tracks who is signed in and tells dependents when it changes.
package session

import (
	"github.com/google/uuid"

	"github.com/careerpilot/careerpilot/pkg/auth"
)

// Kind tags a State.
type Kind int

const (
	KindPending Kind = iota
	KindAuthenticated
	KindAnonymous
)

func (k Kind) String() string {
	switch k {
	case KindPending:
		return "pending"
	case KindAuthenticated:
		return "authenticated"
	case KindAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// State is the session value: Pending until the first lookup finishes, then
// Authenticated with a session or Anonymous. The zero value is Pending.
type State struct {
	kind    Kind
	session auth.Session
}

func Pending() State   { return State{kind: KindPending} }
func Anonymous() State { return State{kind: KindAnonymous} }

func Authenticated(s auth.Session) State {
	return State{kind: KindAuthenticated, session: s}
}

func (s State) Kind() Kind { return s.kind }

// Session returns the signed-in session; ok is false unless Authenticated.
func (s State) Session() (auth.Session, bool) {
	return s.session, s.kind == KindAuthenticated
}

// UserID returns the signed-in user id; ok is false unless Authenticated.
func (s State) UserID() (uuid.UUID, bool) {
	if s.kind != KindAuthenticated {
		return uuid.Nil, false
	}
	return s.session.UserID, true
}

// DisplayName is empty unless Authenticated.
func (s State) DisplayName() string {
	if s.kind != KindAuthenticated {
		return ""
	}
	return s.session.DisplayName()
}

func (s State) String() string { return s.kind.String() }
