package session

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/careerpilot/careerpilot/pkg/auth"
)

// Source is the auth backend the store observes. A nil session means
// signed out.
type Source interface {
	Current(ctx context.Context) (*auth.Session, error)
	Subscribe(fn func(*auth.Session)) (unsubscribe func())
}

// Store holds the current State. It queries the Source once on Start and
// follows its notifications until Close.
type Store struct {
	src        Source
	log        *zap.Logger
	prefill    func(name string)
	clearCache func()

	mu          sync.Mutex
	state       State
	started     bool
	unsubscribe func()
	watchers    map[int]func(prev, next State)
	nextWatch   int
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPrefiller is called with the display name on every sign-in. The
// callee decides whether to use it, e.g. only if the name field is empty.
func WithPrefiller(fn func(name string)) Option {
	return func(s *Store) { s.prefill = fn }
}

// WithCacheClearer is called when a signed-in user signs out.
func WithCacheClearer(fn func()) Option {
	return func(s *Store) { s.clearCache = fn }
}

func NewStore(src Source, opts ...Option) *Store {
	s := &Store{
		src:      src,
		log:      zap.NewNop(),
		state:    Pending(),
		watchers: make(map[int]func(prev, next State)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Start subscribes to session changes and resolves the initial state. A
// failed lookup resolves to Anonymous so the UI never stays on the loader.
func (s *Store) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	unsubscribe := s.src.Subscribe(s.onChange)
	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.mu.Unlock()

	sess, err := s.src.Current(ctx)
	if err != nil {
		s.log.Warn("session lookup failed, continuing signed out", zap.Error(err))
	}

	next := Anonymous()
	if err == nil && sess != nil {
		next = Authenticated(*sess)
	}
	// A notification may already have settled the state.
	s.setIf(func(cur State) bool { return cur.Kind() == KindPending }, next)
}

// Close stops following the source. It is safe to call more than once.
func (s *Store) Close() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// UserID has the shape of report.SessionFunc.
func (s *Store) UserID() (uuid.UUID, bool) {
	return s.State().UserID()
}

// Watch registers fn for every state transition and returns a func that
// removes it. fn is never called under the store's lock.
func (s *Store) Watch(fn func(prev, next State)) func() {
	s.mu.Lock()
	id := s.nextWatch
	s.nextWatch++
	s.watchers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.watchers, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) onChange(sess *auth.Session) {
	next := Anonymous()
	if sess != nil {
		next = Authenticated(*sess)
	}
	s.setIf(func(State) bool { return true }, next)
}

func (s *Store) setIf(cond func(cur State) bool, next State) {
	s.mu.Lock()
	prev := s.state
	if !cond(prev) {
		s.mu.Unlock()
		return
	}
	s.state = next
	ids := make([]int, 0, len(s.watchers))
	for id := range s.watchers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	watchers := make([]func(prev, next State), 0, len(ids))
	for _, id := range ids {
		watchers = append(watchers, s.watchers[id])
	}
	s.mu.Unlock()

	s.log.Debug("session state changed",
		zap.Stringer("from", prev.Kind()),
		zap.Stringer("to", next.Kind()),
	)

	if next.Kind() == KindAuthenticated && s.prefill != nil {
		if name := next.DisplayName(); name != "" {
			s.prefill(name)
		}
	}
	if prev.Kind() == KindAuthenticated && next.Kind() != KindAuthenticated && s.clearCache != nil {
		s.clearCache()
	}
	for _, fn := range watchers {
		fn(prev, next)
	}
}
