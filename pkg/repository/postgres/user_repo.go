package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careerpilot/careerpilot/pkg/auth"
)

const uniqueViolation = "23505"

// UserRepository implements auth.UserRepository backed by PostgreSQL (pgx).
// The schema is owned by the migrations in pkg/storage/postgres.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	provider := user.Provider
	if provider == "" {
		provider = auth.ProviderPassword
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, full_name, password_hash, provider, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, strings.ToLower(user.Email), user.FullName, user.PasswordHash, string(provider), user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return auth.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	return r.getOne(ctx, `
		SELECT id, email, full_name, password_hash, provider, created_at
		FROM users WHERE email = $1
	`, strings.ToLower(email))
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (auth.User, error) {
	return r.getOne(ctx, `
		SELECT id, email, full_name, password_hash, provider, created_at
		FROM users WHERE id = $1
	`, id)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (auth.User, error) {
	var (
		user      auth.User
		provider  string
		createdAt time.Time
	)
	err := r.pool.QueryRow(ctx, query, arg).
		Scan(&user.ID, &user.Email, &user.FullName, &user.PasswordHash, &provider, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrNotFound
		}
		return auth.User{}, err
	}
	user.Provider = auth.Provider(provider)
	user.CreatedAt = createdAt.UTC()
	return user, nil
}
