package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/yadascribe/scribe-backend/internal/domain"
	"github.com/yadascribe/scribe-backend/internal/service/translation"
	"github.com/yadascribe/scribe-backend/internal/wordlink"
)

// translationService defines the minimal interface needed by TranslationHandler.
type translationService interface {
	List(ctx context.Context, filter domain.TranslationFilter) ([]domain.Translation, error)
	Get(ctx context.Context, id int64) (*domain.Translation, error)
	Create(ctx context.Context, in translation.Input) (*domain.Translation, error)
	Update(ctx context.Context, id int64, in translation.Input) (*domain.Translation, error)
	Delete(ctx context.Context, id int64) error
	History(ctx context.Context, id int64) ([]domain.AuditRecord, error)
	Annotated(ctx context.Context, filter domain.TranslationFilter, mode wordlink.Mode) (*translation.Annotated, error)
}

// TranslationHandler serves translation record endpoints.
type TranslationHandler struct {
	svc translationService
	log *slog.Logger
}

// NewTranslationHandler creates a TranslationHandler.
func NewTranslationHandler(svc translationService, logger *slog.Logger) *TranslationHandler {
	return &TranslationHandler{svc: svc, log: logger.With("handler", "translation")}
}

// List handles GET /api/translations?scroll=&chapter=&verse=&all=1.
func (h *TranslationHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTranslationFilter(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	rows, err := h.svc.List(r.Context(), filter)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTranslationResponses(rows))
}

// Annotated handles GET /api/translations/annotated. It takes the List
// filters plus mode=published|authored.
func (h *TranslationHandler) Annotated(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTranslationFilter(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	mode, ok := wordlink.ParseMode(r.URL.Query().Get("mode"))
	if !ok {
		handleError(h.log, w, r, domain.NewValidationError("mode", "Mode must be published or authored."))
		return
	}
	res, err := h.svc.Annotated(r.Context(), filter, mode)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAnnotatedResponse(res))
}

// Get handles GET /api/translations/{id}.
func (h *TranslationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTranslationResponse(*t))
}

// Create handles POST /api/translations.
func (h *TranslationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req translationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	t, err := h.svc.Create(r.Context(), req.input())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTranslationResponse(*t))
}

// Update handles PUT /api/translations/{id}.
func (h *TranslationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req translationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	t, err := h.svc.Update(r.Context(), id, req.input())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTranslationResponse(*t))
}

// Delete handles DELETE /api/translations/{id}.
func (h *TranslationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// History handles GET /api/translations/{id}/history.
func (h *TranslationHandler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	rows, err := h.svc.History(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuditResponses(rows))
}

func parseTranslationFilter(r *http.Request) (domain.TranslationFilter, error) {
	var (
		filter domain.TranslationFilter
		v      domain.Violations
		err    error
	)
	params := []struct {
		name string
		dst  **int64
	}{
		{"scroll", &filter.ScrollKey},
		{"chapter", &filter.ChapterKey},
		{"verse", &filter.VerseKey},
	}
	for _, p := range params {
		if *p.dst, err = queryKey(r, p.name); err != nil {
			v.Add(p.name, "Must be a positive integer.")
		}
	}
	if err := v.Err(); err != nil {
		return filter, err
	}
	switch r.URL.Query().Get("all") {
	case "1", "true":
		filter.All = true
	}
	return filter, nil
}
