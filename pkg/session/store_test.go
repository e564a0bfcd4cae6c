package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerpilot/careerpilot/pkg/auth"
)

type fakeSource struct {
	mu       sync.Mutex
	current  *auth.Session
	err      error
	fn       func(*auth.Session)
	unsubbed bool
	// fireDuringCurrent simulates a notification racing the initial lookup.
	fireDuringCurrent *auth.Session
}

func (f *fakeSource) Current(context.Context) (*auth.Session, error) {
	if f.fireDuringCurrent != nil {
		f.emit(f.fireDuringCurrent)
	}
	return f.current, f.err
}

func (f *fakeSource) Subscribe(fn func(*auth.Session)) func() {
	f.mu.Lock()
	f.fn = fn
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		f.fn = nil
		f.unsubbed = true
		f.mu.Unlock()
	}
}

func (f *fakeSource) emit(s *auth.Session) {
	f.mu.Lock()
	fn := f.fn
	f.mu.Unlock()
	if fn != nil {
		fn(s)
	}
}

func alex() *auth.Session {
	return &auth.Session{UserID: uuid.New(), Email: "alex.doe@example.com"}
}

func TestStore_StartsPendingThenResolves(t *testing.T) {
	sess := alex()
	src := &fakeSource{current: sess}
	var prefilled []string
	s := NewStore(src, WithPrefiller(func(n string) { prefilled = append(prefilled, n) }))

	assert.Equal(t, KindPending, s.State().Kind())
	_, ok := s.UserID()
	assert.False(t, ok)

	s.Start(context.Background())
	assert.Equal(t, KindAuthenticated, s.State().Kind())
	id, ok := s.UserID()
	require.True(t, ok)
	assert.Equal(t, sess.UserID, id)
	assert.Equal(t, []string{"alex.doe"}, prefilled)

	s.Close()
	s.Close()
	assert.True(t, src.unsubbed)
}

func TestStore_LookupFailureIsAnonymous(t *testing.T) {
	s := NewStore(&fakeSource{err: errors.New("network down")})
	s.Start(context.Background())
	assert.Equal(t, KindAnonymous, s.State().Kind())
}

func TestStore_FollowsNotifications(t *testing.T) {
	src := &fakeSource{}
	cleared := 0
	s := NewStore(src, WithCacheClearer(func() { cleared++ }))

	var transitions [][2]Kind
	s.Watch(func(prev, next State) { transitions = append(transitions, [2]Kind{prev.Kind(), next.Kind()}) })

	s.Start(context.Background())
	src.emit(alex())
	src.emit(nil)

	assert.Equal(t, [][2]Kind{
		{KindPending, KindAnonymous},
		{KindAnonymous, KindAuthenticated},
		{KindAuthenticated, KindAnonymous},
	}, transitions)
	assert.Equal(t, 1, cleared, "cache cleared on sign-out only")
}

func TestStore_NotificationWinsOverStaleLookup(t *testing.T) {
	sess := alex()
	src := &fakeSource{current: nil, fireDuringCurrent: sess}
	s := NewStore(src)
	s.Start(context.Background())

	got, ok := s.State().Session()
	require.True(t, ok)
	assert.Equal(t, sess.UserID, got.UserID)
}

func TestStore_WatchUnsubscribe(t *testing.T) {
	src := &fakeSource{}
	s := NewStore(src)
	calls := 0
	stop := s.Watch(func(State, State) { calls++ })
	s.Start(context.Background())
	stop()
	src.emit(alex())
	assert.Equal(t, 1, calls)
}

func TestState(t *testing.T) {
	var zero State
	assert.Equal(t, KindPending, zero.Kind())
	assert.Empty(t, Anonymous().DisplayName())
	assert.Equal(t, "Sam", Authenticated(auth.Session{FullName: "Sam"}).DisplayName())
	assert.Equal(t, "authenticated", KindAuthenticated.String())
}
