package app

import (
	"context"
	"fmt"
	"net/http"

	"baby-tracker-go/internal/config"
	"baby-tracker-go/internal/db"
	"baby-tracker-go/internal/domain/identity"
	"baby-tracker-go/internal/domain/invites"
	"baby-tracker-go/internal/domain/membership"
	"baby-tracker-go/internal/domain/weights"
	"baby-tracker-go/internal/invitelink"
	"baby-tracker-go/internal/ratelimit"
	identityrepo "baby-tracker-go/internal/repository/postgres/identity"
	invitesrepo "baby-tracker-go/internal/repository/postgres/invites"
	membershiprepo "baby-tracker-go/internal/repository/postgres/membership"
	weightsrepo "baby-tracker-go/internal/repository/postgres/weights"
	"baby-tracker-go/internal/transport/httpserver"
	"baby-tracker-go/internal/transport/httpserver/handler"
	"baby-tracker-go/pkg/logger"
	"gorm.io/gorm"
)

type Options struct {
	EnvFile     string
	SkipMigrate bool
}

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	limiter    ratelimit.Limiter
	log        logger.Logger
}

func New(ctx context.Context, log logger.Logger, opts Options) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log, opts.EnvFile)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if opts.SkipMigrate {
		log.Warn("app: skipping migrations")
	} else if err := db.Migrate(dbConn, log); err != nil {
		_ = db.Close(dbConn)
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info("app: initializing rate limiter")
	limiter, err := newLimiter(ctx, cfg.RateLimit, log)
	if err != nil {
		_ = db.Close(dbConn)
		return nil, err
	}

	log.Info("app: initializing router")
	router, err := NewRouter(cfg, dbConn, limiter, log)
	if err != nil {
		_ = limiter.Close()
		_ = db.Close(dbConn)
		return nil, err
	}

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
		limiter:    limiter,
		log:        log,
	}, nil
}

// RunMigrations applies pending migrations and exits without serving.
func RunMigrations(log logger.Logger, envFile string) error {
	cfg, err := config.Load(log, envFile)
	if err != nil {
		return err
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return err
	}
	defer db.Close(dbConn)

	return db.Migrate(dbConn, log)
}

// NewRouter wires repositories, services and handlers over dbConn.
func NewRouter(cfg config.Config, dbConn *gorm.DB, limiter ratelimit.Limiter, log logger.Logger) (http.Handler, error) {
	passwords, err := identity.NewPasswords(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("passwords: %w", err)
	}
	tokens, err := identity.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("tokens: %w", err)
	}
	sqlDB, err := dbConn.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle: %w", err)
	}

	identityService := identity.NewService(identityrepo.NewPostgres(dbConn), passwords, tokens)
	membershipService := membership.NewService(membershiprepo.NewPostgres(dbConn))
	weightsService := weights.NewService(weightsrepo.NewPostgres(dbConn), membershipService)
	invitesService := invites.NewService(invitesrepo.NewPostgres(dbConn), cfg.Invites.TTL)
	links := invitelink.NewBuilder(cfg.Invites.AppBaseURL, cfg.Invites.QRSize)

	handlers := handler.New(identityService, membershipService, weightsService, invitesService, links, sqlDB, log)
	return httpserver.NewRouter(cfg, handlers, identityService, limiter, log), nil
}

func newLimiter(ctx context.Context, cfg config.RateLimitConfig, log logger.Logger) (ratelimit.Limiter, error) {
	if cfg.RedisURL == "" {
		log.Warn("app: REDIS_URL not set, rate limiting disabled")
		return ratelimit.Unlimited{}, nil
	}
	limiter, err := ratelimit.NewRedisLimiter(ctx, cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	return limiter, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	var firstErr error
	if a.limiter != nil {
		if err := a.limiter.Close(); err != nil {
			firstErr = err
		}
	}
	if err := db.Close(a.db); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
