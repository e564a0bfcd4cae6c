package auth

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// TokenStore persists the signed-in token between runs.
type TokenStore interface {
	// Load returns ErrNoToken when nothing is stored.
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// ErrNoToken is returned by TokenStore.Load when no one is signed in.
var ErrNoToken = errors.New("no stored token")

// SessionService is the client side of authentication: it signs in and out
// through the use case, keeps the token in a TokenStore and notifies
// subscribers of every session change. A nil session means signed out.
type SessionService struct {
	uc       AuthUseCase
	verifier TokenVerifier
	store    TokenStore

	mu      sync.Mutex
	current *Session
	subs    map[int]func(*Session)
	nextSub int
}

func NewSessionService(uc AuthUseCase, verifier TokenVerifier, store TokenStore) *SessionService {
	return &SessionService{
		uc:       uc,
		verifier: verifier,
		store:    store,
		subs:     make(map[int]func(*Session)),
	}
}

// Current returns the signed-in session, or nil when signed out. A stored
// token that no longer verifies is discarded.
func (s *SessionService) Current(ctx context.Context) (*Session, error) {
	s.mu.Lock()
	if s.current != nil {
		cp := *s.current
		s.mu.Unlock()
		return &cp, nil
	}
	s.mu.Unlock()

	token, err := s.store.Load()
	if errors.Is(err, ErrNoToken) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sess, err := s.verifier.Verify(ctx, token)
	if errors.Is(err, ErrInvalidToken) {
		_ = s.store.Clear()
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()
	cp := sess
	return &cp, nil
}

// Subscribe registers fn for session changes and returns its unsubscribe func.
// fn runs on the goroutine that caused the change, never under a lock.
func (s *SessionService) Subscribe(fn func(*Session)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// SignUp creates the account without signing in; the user logs in next.
func (s *SessionService) SignUp(ctx context.Context, email, password, fullName string) error {
	_, err := s.uc.Register(ctx, RegisterInput{Email: email, Password: password, FullName: fullName})
	return err
}

func (s *SessionService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	res, err := s.uc.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, res)
}

func (s *SessionService) SignInWithProvider(ctx context.Context, provider Provider, credential string) (*Session, error) {
	res, err := s.uc.LoginWithProvider(ctx, provider, credential)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, res)
}

// SignOut forgets the stored token. Subscribers see a nil session.
func (s *SessionService) SignOut(context.Context) error {
	err := s.store.Clear()
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	s.publish(nil)
	return err
}

func (s *SessionService) establish(ctx context.Context, res AuthResult) (*Session, error) {
	sess, err := s.verifier.Verify(ctx, res.Token)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(res.Token); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()

	cp := sess
	s.publish(&cp)
	return &cp, nil
}

func (s *SessionService) publish(sess *Session) {
	s.mu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(*Session), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		if sess == nil {
			fn(nil)
			continue
		}
		cp := *sess
		fn(&cp)
	}
}
