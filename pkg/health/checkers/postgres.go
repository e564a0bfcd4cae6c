package checkers

import (
	"context"
	"time"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DatabaseChecker reports the database as ready when it answers a ping
// within a second.
type DatabaseChecker struct {
	db      Pinger
	timeout time.Duration
}

func NewPostgresChecker(db Pinger) *DatabaseChecker {
	return &DatabaseChecker{db: db, timeout: time.Second}
}

func (c *DatabaseChecker) Name() string { return "postgres" }

func (c *DatabaseChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.db.Ping(ctx)
}
