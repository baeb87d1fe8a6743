package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yadascribe/scribe-backend/internal/adapter/postgres"
	"github.com/yadascribe/scribe-backend/internal/config"
	"github.com/yadascribe/scribe-backend/internal/scheduler"
	"github.com/yadascribe/scribe-backend/internal/transport/middleware"
	"github.com/yadascribe/scribe-backend/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, optionally applies
// migrations, wires services and serves HTTP until ctx is cancelled, then
// shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.AutoMigrate {
		if err := Migrate(ctx, logger, cfg.Database.DSN); err != nil {
			return err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database, "scribe-server")
	if err != nil {
		return err
	}
	defer pool.Close()

	svc := NewServices(logger, cfg, pool)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := NewHandler(logger, cfg, svc, newHealthHandler(pool, Version), limiter)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	sched := scheduler.New(logger, svc.Lexicon, cfg.Lexicon.RecountInterval, cfg.Lexicon.RecountWorkers)
	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer sched.Stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// NewHandler builds the routed REST API behind the middleware chain.
func NewHandler(logger *slog.Logger, cfg *config.Config, svc *Services, health *rest.HealthHandler, limiter *middleware.RateLimiter) http.Handler {
	router := rest.Router{
		Health:       health,
		Lexicon:      rest.NewLexiconHandler(svc.Lexicon, logger),
		Translations: rest.NewTranslationHandler(svc.Translations, logger),
		Auth: rest.NewAuthHandler(svc.Auth, rest.CookieConfig{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.Auth.CookieSecure,
		}, logger),
		LoginLimit: limiter.Limit(cfg.RateLimit.LoginPerMinute),
	}

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Session(svc.Auth, cfg.Auth.CookieName),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.BodyLimit(cfg.Server.MaxBodyBytes),
	)(router.Handler())
}

func newHealthHandler(pool *pgxpool.Pool, version string) *rest.HealthHandler {
	return rest.NewHealthHandler(version,
		rest.HealthCheck{Name: "database", Run: pool.Ping},
		rest.HealthCheck{Name: "schema", Run: postgres.NewSchemaCheck(pool).Check},
	)
}

// Migrate applies all pending embedded migrations.
func Migrate(ctx context.Context, logger *slog.Logger, dsn string) error {
	m, err := postgres.NewMigrator(ctx, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	applied, err := m.Up(ctx)
	if err != nil {
		return err
	}
	for _, res := range applied {
		logger.Info("migration applied",
			slog.Int64("version", res.Version),
			slog.String("source", res.Source),
			slog.String("elapsed", res.Elapsed),
		)
	}
	if len(applied) == 0 {
		logger.Info("database schema up to date")
	}
	return nil
}
