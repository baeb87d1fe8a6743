package rest

import (
	"net/http"

	"github.com/yadascribe/scribe-backend/internal/transport/middleware"
)

// Router holds the handlers and route-level middleware for every endpoint.
// Request-wide middleware (recovery, request ids, sessions, logging, CORS)
// wraps the result of Handler.
type Router struct {
	Health       *HealthHandler
	Lexicon      *LexiconHandler
	Translations *TranslationHandler
	Auth         *AuthHandler

	// LoginLimit throttles POST /api/auth. Nil disables throttling.
	LoginLimit middleware.Middleware
}

// Handler returns the mux with all routes registered.
func (rt Router) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", rt.Health.Live)
	mux.HandleFunc("GET /ready", rt.Health.Ready)
	mux.HandleFunc("GET /health", rt.Health.Health)

	login := http.Handler(http.HandlerFunc(rt.Auth.Login))
	if rt.LoginLimit != nil {
		login = rt.LoginLimit(login)
	}
	mux.Handle("POST /api/auth", login)
	mux.HandleFunc("GET /api/auth", rt.Auth.Status)
	mux.HandleFunc("DELETE /api/auth", rt.Auth.Logout)

	// Public lookup surfaces.
	mux.HandleFunc("GET /api/word-lookup", rt.Lexicon.Lookup)
	mux.HandleFunc("POST /api/word-lookup", rt.Lexicon.Lookup)
	mux.HandleFunc("GET /api/words/{id}/translations", rt.Lexicon.WordTranslations)
	mux.HandleFunc("GET /api/glossary/letters", rt.Lexicon.Letters)
	mux.HandleFunc("GET /api/glossary/letters/{letter}/words", rt.Lexicon.LetterWords)

	authed := func(h http.HandlerFunc) http.Handler { return middleware.RequireUser(h) }

	mux.Handle("GET /api/words", authed(rt.Lexicon.ListWords))
	mux.Handle("POST /api/words", authed(rt.Lexicon.CreateWord))
	mux.Handle("GET /api/words/{id}", authed(rt.Lexicon.GetWord))
	mux.Handle("PUT /api/words/{id}", authed(rt.Lexicon.UpdateWord))
	mux.Handle("DELETE /api/words/{id}", authed(rt.Lexicon.DeleteWord))
	mux.Handle("GET /api/words/{id}/history", authed(rt.Lexicon.WordHistory))

	mux.Handle("GET /api/translations", authed(rt.Translations.List))
	mux.Handle("GET /api/translations/annotated", authed(rt.Translations.Annotated))
	mux.Handle("POST /api/translations", authed(rt.Translations.Create))
	mux.Handle("GET /api/translations/{id}", authed(rt.Translations.Get))
	mux.Handle("PUT /api/translations/{id}", authed(rt.Translations.Update))
	mux.Handle("DELETE /api/translations/{id}", authed(rt.Translations.Delete))
	mux.Handle("GET /api/translations/{id}/history", authed(rt.Translations.History))

	return mux
}
