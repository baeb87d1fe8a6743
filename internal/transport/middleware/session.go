package middleware

import (
	"net/http"

	"github.com/yadascribe/scribe-backend/internal/auth"
	"github.com/yadascribe/scribe-backend/pkg/ctxutil"
)

type sessionValidator interface {
	Status(token string) (auth.Session, bool)
}

// Session attaches the user key of a valid session cookie to the request
// context. Requests without a cookie, or with an invalid one, continue
// anonymously.
func Session(validator sessionValidator, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(cookieName)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			s, ok := validator.Status(c.Value)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			ctx := ctxutil.WithUserKey(r.Context(), s.UserKey)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects requests that carry no signed-in user with 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.UserKeyFromCtx(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}` + "\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
