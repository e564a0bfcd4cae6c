package main

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/careerpilot/careerpilot/pkg/auth"
	"github.com/careerpilot/careerpilot/pkg/auth/google"
	"github.com/careerpilot/careerpilot/pkg/career"
	"github.com/careerpilot/careerpilot/pkg/config"
	"github.com/careerpilot/careerpilot/pkg/llm"
	"github.com/careerpilot/careerpilot/pkg/llm/provider"
	"github.com/careerpilot/careerpilot/pkg/report"
	"github.com/careerpilot/careerpilot/pkg/repository/memory"
	pgrepo "github.com/careerpilot/careerpilot/pkg/repository/postgres"
	"github.com/careerpilot/careerpilot/pkg/security/jwt"
	"github.com/careerpilot/careerpilot/pkg/session"
	"github.com/careerpilot/careerpilot/pkg/storage/postgres"
)

// deps is everything a command needs, wired from the configuration.
type deps struct {
	cfg      config.Config
	log      *zap.Logger
	sessions *auth.SessionService
	session  *session.Store
	reports  *report.Store
	gen      *career.Client
	closers  []func()
}

// setup wires the client. The session store is not started; callers start it
// once their own hooks are in place. Without DATABASE_URL accounts and
// reports live in memory for the lifetime of the process.
func setup(ctx context.Context, cfg config.Config, log *zap.Logger, sessionOpts ...session.Option) (*deps, error) {
	d := &deps{cfg: cfg, log: log}

	var (
		users   auth.UserRepository
		reports report.Repository
	)
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL, postgres.WithMaxConns(2))
		if err != nil {
			return nil, err
		}
		d.closers = append(d.closers, pool.Close)
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			d.Close()
			return nil, err
		}
		users = pgrepo.NewUserRepository(pool)
		reports = pgrepo.NewReportRepository(pool)
	} else {
		log.Warn("DATABASE_URL is not set, accounts and reports are kept in memory only")
		users = memory.NewUserRepository()
		reports = memory.NewReportRepository()
	}

	tokens := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	authUC := auth.NewAuthService(users, tokens, google.New(cfg.GoogleClientID))
	d.sessions = auth.NewSessionService(authUC, tokens, auth.NewFileTokenStore(cfg.SessionFile))

	model, err := provider.New(ctx, cfg)
	if err != nil && !errors.Is(err, llm.ErrNotConfigured) {
		d.Close()
		return nil, err
	}
	d.gen = career.NewClient(model,
		career.WithTimeout(cfg.GenerateTimeout),
		career.WithCredentialName(provider.CredentialEnv(cfg)),
		career.WithLogger(log.Named("career")),
	)

	opts := append([]session.Option{session.WithLogger(log.Named("session"))}, sessionOpts...)
	var store *report.Store
	opts = append(opts, session.WithCacheClearer(func() { store.Clear() }))
	d.session = session.NewStore(d.sessions, opts...)
	store = report.NewStore(report.NewService(reports), d.session.UserID, log.Named("reports"))
	d.reports = store
	d.closers = append(d.closers, d.session.Close)
	return d, nil
}

// Close releases resources in reverse order.
func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}

// requireSession starts the session store and fails when no one is signed in.
func (d *deps) requireSession(ctx context.Context) error {
	d.session.Start(ctx)
	if _, ok := d.session.UserID(); !ok {
		return errNotSignedIn
	}
	return nil
}

var errNotSignedIn = errors.New("not signed in: run `careerpilot login` first")
