package app

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yadascribe/scribe-backend/internal/adapter/postgres"
	"github.com/yadascribe/scribe-backend/internal/adapter/postgres/audit"
	lexiconrepo "github.com/yadascribe/scribe-backend/internal/adapter/postgres/lexicon"
	translationrepo "github.com/yadascribe/scribe-backend/internal/adapter/postgres/translation"
	userrepo "github.com/yadascribe/scribe-backend/internal/adapter/postgres/user"
	"github.com/yadascribe/scribe-backend/internal/auth"
	"github.com/yadascribe/scribe-backend/internal/config"
	"github.com/yadascribe/scribe-backend/internal/importer"
	authsvc "github.com/yadascribe/scribe-backend/internal/service/auth"
	lexiconsvc "github.com/yadascribe/scribe-backend/internal/service/lexicon"
	translationsvc "github.com/yadascribe/scribe-backend/internal/service/translation"
	"github.com/yadascribe/scribe-backend/internal/wordlink"
)

// Services are the wired business services shared by the server and the CLI.
type Services struct {
	Lexicon      *lexiconsvc.Service
	Translations *translationsvc.Service
	Auth         *authsvc.Service
	Importer     *importer.Importer
}

// NewServices builds repositories over pool and the services on top of them.
func NewServices(logger *slog.Logger, cfg *config.Config, pool *pgxpool.Pool) *Services {
	txm := postgres.NewTxManager(pool)

	lexiconRepo := lexiconrepo.New(pool)
	translationRepo := translationrepo.New(pool)
	userRepo := userrepo.New(pool)
	auditRepo := audit.New(pool)

	counter := wordlink.NewCounter(translationRepo)
	sessions := auth.NewSessionManager(cfg.Auth.SessionSecret, cfg.Auth.Issuer, cfg.Auth.SessionTTL)

	lexicon := lexiconsvc.NewService(logger, lexiconRepo, translationRepo, auditRepo, counter, txm, cfg.Lexicon)

	return &Services{
		Lexicon:      lexicon,
		Translations: translationsvc.NewService(logger, translationRepo, lexicon, auditRepo, txm),
		Auth:         authsvc.NewService(logger, userRepo, sessions, cfg.Auth),
		Importer:     importer.New(logger, lexiconRepo, counter, txm),
	}
}
