package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memRepo struct {
	mu    sync.Mutex
	users map[string]User
}

func newMemRepo() *memRepo { return &memRepo{users: map[string]User{}} }

func (r *memRepo) Create(_ context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return ErrUserAlreadyExists
	}
	r.users[u.Email] = u
	return nil
}

func (r *memRepo) GetByEmail(_ context.Context, email string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

// fakeTokens issues "tok|<id>|<email>|<name>" tokens.
type fakeTokens struct{}

func (fakeTokens) Generate(_ context.Context, u User) (string, error) {
	return strings.Join([]string{"tok", u.ID.String(), u.Email, u.FullName}, "|"), nil
}

func (fakeTokens) Verify(_ context.Context, token string) (Session, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 4 || parts[0] != "tok" {
		return Session{}, ErrInvalidToken
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return Session{}, ErrInvalidToken
	}
	return Session{UserID: id, Email: parts[2], FullName: parts[3], Token: token, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

type memTokenStore struct {
	token string
}

func (m *memTokenStore) Load() (string, error) {
	if m.token == "" {
		return "", ErrNoToken
	}
	return m.token, nil
}

func (m *memTokenStore) Save(token string) error { m.token = token; return nil }
func (m *memTokenStore) Clear() error            { m.token = ""; return nil }

type fakeProvider struct {
	id  Identity
	err error
}

func (fakeProvider) Name() Provider { return ProviderGoogle }

func (p fakeProvider) Verify(context.Context, string) (Identity, error) { return p.id, p.err }
