package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*SessionService, *memTokenStore) {
	t.Helper()
	uc := NewAuthService(newMemRepo(), fakeTokens{})
	_, err := uc.Register(context.Background(), RegisterInput{Email: "alex@example.com", Password: "secret1", FullName: "Alex"})
	require.NoError(t, err)
	store := &memTokenStore{}
	return NewSessionService(uc, fakeTokens{}, store), store
}

func TestSessionService_SignInOut(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	cur, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)

	var events []*Session
	unsubscribe := svc.Subscribe(func(s *Session) { events = append(events, s) })

	sess, err := svc.SignIn(ctx, "alex@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Alex", sess.DisplayName())
	assert.NotEmpty(t, store.token)

	cur, err = svc.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, sess.UserID, cur.UserID)

	require.NoError(t, svc.SignOut(ctx))
	assert.Empty(t, store.token)

	require.Len(t, events, 2)
	assert.NotNil(t, events[0])
	assert.Nil(t, events[1])

	unsubscribe()
	unsubscribe()
	_, err = svc.SignIn(ctx, "alex@example.com", "secret1")
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestSessionService_SignUpDoesNotSignIn(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	require.NoError(t, svc.SignUp(ctx, "sam@example.com", "secret2", "Sam"))
	assert.Empty(t, store.token)

	err := svc.SignUp(ctx, "sam2@example.com", "123", "")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestSessionService_RestoresAndDropsStoredToken(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	_, err := svc.SignIn(ctx, "alex@example.com", "secret1")
	require.NoError(t, err)

	restored := NewSessionService(nil, fakeTokens{}, store)
	cur, err := restored.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "alex@example.com", cur.Email)

	store.token = "garbage"
	cur, err = NewSessionService(nil, fakeTokens{}, store).Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
	assert.Empty(t, store.token, "invalid token is cleared")
}

func TestFileTokenStore(t *testing.T) {
	fs := NewFileTokenStore(filepath.Join(t.TempDir(), "nested", "session.json"))

	_, err := fs.Load()
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, fs.Save("abc"))
	tok, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	require.NoError(t, fs.Clear())
	require.NoError(t, fs.Clear())
	_, err = fs.Load()
	assert.ErrorIs(t, err, ErrNoToken)
}
