package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/yadascribe/scribe-backend/internal/auth"
	"github.com/yadascribe/scribe-backend/internal/config"
	"github.com/yadascribe/scribe-backend/internal/domain"
)

// userRepo defines the user repository interface needed by auth service.
type userRepo interface {
	GetByCode(ctx context.Context, code string) (*domain.User, error)
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	SetPassword(ctx context.Context, key int64, hash string) error
}

// sessionManager defines the session token interface needed by auth service.
type sessionManager interface {
	Issue(s auth.Session) (string, time.Time, error)
	Validate(token string) (auth.Session, error)
}

// Service implements editor sign-in and account management.
type Service struct {
	log      *slog.Logger
	users    userRepo
	sessions sessionManager
	cfg      config.AuthConfig
}

// NewService creates a new auth service.
func NewService(
	logger *slog.Logger,
	users userRepo,
	sessions sessionManager,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "auth"),
		users:    users,
		sessions: sessions,
		cfg:      cfg,
	}
}
