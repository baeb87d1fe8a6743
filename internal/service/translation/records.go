package translation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yadascribe/scribe-backend/internal/domain"
	"github.com/yadascribe/scribe-backend/pkg/ctxutil"
)

const historyLimit = 50

// List returns the records matching filter in reading order. A filter with
// no reference set must ask for All explicitly.
func (s *Service) List(ctx context.Context, filter domain.TranslationFilter) ([]domain.Translation, error) {
	if filter.IsEmpty() && !filter.All {
		return nil, domain.NewValidationError("filter", "scroll, chapter, verse or all is required")
	}
	return s.translations.List(ctx, filter)
}

// Get returns one record.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Translation, error) {
	return s.translations.GetByID(ctx, id)
}

// Create validates and stores a new record.
func (s *Service) Create(ctx context.Context, in Input) (*domain.Translation, error) {
	userKey, ok := ctxutil.UserKeyFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var id int64
	err := s.tx.RunAsUser(ctx, userKey, func(txCtx context.Context) error {
		t := in.translation(0)
		if err := s.checkReferences(txCtx, t); err != nil {
			return err
		}
		var err error
		id, err = s.translations.Create(txCtx, t)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("translation.Create: %w", err)
	}

	s.log.InfoContext(ctx, "translation created",
		slog.Int64("translation_id", id),
		slog.Int64("user_key", userKey),
	)
	return s.translations.GetByID(ctx, id)
}

// Update overwrites record id.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*domain.Translation, error) {
	userKey, ok := ctxutil.UserKeyFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	err := s.tx.RunAsUser(ctx, userKey, func(txCtx context.Context) error {
		t := in.translation(id)
		if err := s.checkReferences(txCtx, t); err != nil {
			return err
		}
		return s.translations.Update(txCtx, t)
	})
	if err != nil {
		return nil, fmt.Errorf("translation.Update: %w", err)
	}

	s.log.InfoContext(ctx, "translation updated",
		slog.Int64("translation_id", id),
		slog.Int64("user_key", userKey),
	)
	return s.translations.GetByID(ctx, id)
}

// Delete removes record id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	userKey, ok := ctxutil.UserKeyFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	err := s.tx.RunAsUser(ctx, userKey, func(txCtx context.Context) error {
		return s.translations.Delete(txCtx, id)
	})
	if err != nil {
		return fmt.Errorf("translation.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "translation deleted",
		slog.Int64("translation_id", id),
		slog.Int64("user_key", userKey),
	)
	return nil
}

// History returns the recorded changes of record id, newest first.
func (s *Service) History(ctx context.Context, id int64) ([]domain.AuditRecord, error) {
	if _, err := s.translations.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.audit.History(ctx, domain.AuditTranslations, id, historyLimit)
}

func (s *Service) checkReferences(ctx context.Context, t domain.Translation) error {
	missing, err := s.translations.MissingReferences(ctx, t)
	if err != nil {
		return fmt.Errorf("check references: %w", err)
	}
	return missingErrors(missing)
}
