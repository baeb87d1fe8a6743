package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/yadascribe/scribe-backend/internal/domain"
	"github.com/yadascribe/scribe-backend/internal/service/lexicon"
)

// lexiconService defines the minimal interface needed by LexiconHandler.
type lexiconService interface {
	Lookup(ctx context.Context, raw string) (map[string]domain.MatchResult, error)
	Get(ctx context.Context, id int64) (*domain.LexiconEntry, error)
	Search(ctx context.Context, term string) ([]domain.EntrySummary, error)
	Create(ctx context.Context, in lexicon.EntryInput) (*domain.LexiconEntry, error)
	Update(ctx context.Context, id int64, in lexicon.EntryInput) (*domain.LexiconEntry, error)
	Delete(ctx context.Context, id int64) error
	History(ctx context.Context, id int64) ([]domain.AuditRecord, error)
	Letters(ctx context.Context) ([]domain.Letter, error)
	WordsByLetter(ctx context.Context, letter string) ([]domain.EntrySummary, error)
	WordTranslations(ctx context.Context, id int64) ([]domain.WordOccurrence, error)
}

// LexiconHandler serves word lookup, glossary and word administration endpoints.
type LexiconHandler struct {
	svc lexiconService
	log *slog.Logger
}

// NewLexiconHandler creates a LexiconHandler.
func NewLexiconHandler(svc lexiconService, logger *slog.Logger) *LexiconHandler {
	return &LexiconHandler{svc: svc, log: logger.With("handler", "lexicon")}
}

// Lookup handles GET /api/word-lookup?words=a|b and POST /api/word-lookup
// with the pipe-delimited list as the raw body.
func (h *LexiconHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("words")
	if r.Method == http.MethodPost {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		raw = string(body)
	}

	lookup, err := h.svc.Lookup(r.Context(), raw)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLookupResponse(lookup))
}

// ListWords handles GET /api/words[?search=term].
func (h *LexiconHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Search(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryResponses(rows))
}

// GetWord handles GET /api/words/{id}.
func (h *LexiconHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	entry, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryResponse(*entry))
}

// CreateWord handles POST /api/words.
func (h *LexiconHandler) CreateWord(w http.ResponseWriter, r *http.Request) {
	var req wordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	entry, err := h.svc.Create(r.Context(), req.input())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryResponse(*entry))
}

// UpdateWord handles PUT /api/words/{id}.
func (h *LexiconHandler) UpdateWord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req wordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	entry, err := h.svc.Update(r.Context(), id, req.input())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryResponse(*entry))
}

// DeleteWord handles DELETE /api/words/{id}.
func (h *LexiconHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
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

// WordHistory handles GET /api/words/{id}/history.
func (h *LexiconHandler) WordHistory(w http.ResponseWriter, r *http.Request) {
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

// WordTranslations handles GET /api/words/{id}/translations.
func (h *LexiconHandler) WordTranslations(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	rows, err := h.svc.WordTranslations(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOccurrenceResponses(rows))
}

// Letters handles GET /api/glossary/letters.
func (h *LexiconHandler) Letters(w http.ResponseWriter, r *http.Request) {
	letters, err := h.svc.Letters(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLetterResponses(letters))
}

// LetterWords handles GET /api/glossary/letters/{letter}/words.
func (h *LexiconHandler) LetterWords(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.WordsByLetter(r.Context(), r.PathValue("letter"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryResponses(rows))
}
