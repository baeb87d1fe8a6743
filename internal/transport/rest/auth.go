package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/yadascribe/scribe-backend/internal/auth"
	authsvc "github.com/yadascribe/scribe-backend/internal/service/auth"
)

// authService defines the minimal interface needed by AuthHandler.
type authService interface {
	Login(ctx context.Context, input authsvc.LoginInput) (*authsvc.LoginResult, error)
	Status(token string) (auth.Session, bool)
}

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler serves the session endpoints.
type AuthHandler struct {
	svc    authService
	cookie CookieConfig
	log    *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, cookie CookieConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, cookie: cookie, log: logger.With("handler", "auth")}
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserKey       int64  `json:"userKey,omitempty"`
	UserCode      string `json:"userCode,omitempty"`
	UserName      string `json:"userName,omitempty"`
}

func toSessionResponse(s auth.Session) sessionResponse {
	return sessionResponse{
		Authenticated: true,
		UserKey:       s.UserKey,
		UserCode:      s.UserCode,
		UserName:      s.UserName,
	}
}

// Login handles POST /api/auth.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Login(r.Context(), authsvc.LoginInput{
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(result.Token, result.ExpiresAt))
	writeJSON(w, http.StatusOK, toSessionResponse(result.Session))
}

// Status handles GET /api/auth.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	var token string
	if c, err := r.Cookie(h.cookie.Name); err == nil {
		token = c.Value
	}
	session, ok := h.svc.Status(token)
	if !ok {
		writeJSON(w, http.StatusOK, sessionResponse{})
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

// Logout handles DELETE /api/auth. Tokens are stateless, so clearing the
// cookie ends the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	c := h.sessionCookie("", time.Unix(0, 0))
	c.MaxAge = -1
	http.SetCookie(w, c)
	writeJSON(w, http.StatusOK, sessionResponse{})
}

func (h *AuthHandler) sessionCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
