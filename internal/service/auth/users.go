package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/yadascribe/scribe-backend/internal/domain"
)

// CreateUser adds an editor account with a bcrypt-hashed password.
func (s *Service) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	input.Code = strings.TrimSpace(input.Code)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("auth.CreateUser hash password: %w", err)
	}

	u := domain.User{Code: input.Code, PasswordHash: string(hash)}
	if name := strings.TrimSpace(input.FullName); name != "" {
		u.FullName = &name
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("auth.CreateUser: %w", err)
	}

	s.log.InfoContext(ctx, "user created",
		slog.Int64("user_key", created.Key),
		slog.String("user_code", created.Code),
	)
	return created, nil
}

// SetPassword replaces the password of the account with login code.
func (s *Service) SetPassword(ctx context.Context, code, password string) error {
	if err := (CreateUserInput{Code: code, Password: password}).Validate(); err != nil {
		return err
	}

	user, err := s.users.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return fmt.Errorf("auth.SetPassword get user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("auth.SetPassword hash password: %w", err)
	}
	if err := s.users.SetPassword(ctx, user.Key, string(hash)); err != nil {
		return fmt.Errorf("auth.SetPassword: %w", err)
	}

	s.log.InfoContext(ctx, "user password changed", slog.Int64("user_key", user.Key))
	return nil
}
