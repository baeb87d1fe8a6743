package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yadascribe/scribe-backend/internal/auth"
	"github.com/yadascribe/scribe-backend/internal/domain"
)

// LoginResult is a freshly issued session.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Session   auth.Session
}

// Login checks the credentials against the stored bcrypt hash and issues a
// session token. Unknown logins and wrong passwords both return
// ErrUnauthorized.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	input.Login = strings.TrimSpace(input.Login)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByCode(ctx, input.Login)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Login get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		s.log.WarnContext(ctx, "login rejected", slog.String("user_code", user.Code))
		return nil, domain.ErrUnauthorized
	}

	session := auth.Session{UserKey: user.Key, UserCode: user.Code, UserName: user.DisplayName()}
	token, expires, err := s.sessions.Issue(session)
	if err != nil {
		return nil, fmt.Errorf("auth.Login issue session: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in", slog.Int64("user_key", user.Key))

	return &LoginResult{Token: token, ExpiresAt: expires, Session: session}, nil
}

// Status returns the session carried by token, or false when the token is
// missing or invalid.
func (s *Service) Status(token string) (auth.Session, bool) {
	if token == "" {
		return auth.Session{}, false
	}
	session, err := s.sessions.Validate(token)
	if err != nil {
		return auth.Session{}, false
	}
	return session, true
}
