// Package translation implements translation record administration and the
// annotated reading view.
package translation

import (
	"context"
	"log/slog"

	"github.com/yadascribe/scribe-backend/internal/domain"
)

type translationRepo interface {
	List(ctx context.Context, filter domain.TranslationFilter) ([]domain.Translation, error)
	GetByID(ctx context.Context, id int64) (*domain.Translation, error)
	Create(ctx context.Context, t domain.Translation) (int64, error)
	Update(ctx context.Context, t domain.Translation) error
	Delete(ctx context.Context, id int64) error
	MissingReferences(ctx context.Context, t domain.Translation) ([]string, error)
}

type matcher interface {
	Match(ctx context.Context, words []string) (map[string]domain.MatchResult, error)
}

type auditRepo interface {
	History(ctx context.Context, table string, rowID int64, limit uint64) ([]domain.AuditRecord, error)
}

type txManager interface {
	RunAsUser(ctx context.Context, userKey int64, fn func(ctx context.Context) error) error
}

// Service implements the translation business logic.
type Service struct {
	log          *slog.Logger
	translations translationRepo
	matcher      matcher
	audit        auditRepo
	tx           txManager
}

// NewService creates a new translation service.
func NewService(
	logger *slog.Logger,
	translations translationRepo,
	matcher matcher,
	audit auditRepo,
	tx txManager,
) *Service {
	return &Service{
		log:          logger.With("service", "translation"),
		translations: translations,
		matcher:      matcher,
		audit:        audit,
		tx:           tx,
	}
}
