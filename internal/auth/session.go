// Package auth signs and checks the session tokens kept in the editor's
// session cookie.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidSession covers every reason a token is refused.
var ErrInvalidSession = errors.New("invalid session")

// Session identifies the signed-in editor.
type Session struct {
	UserKey  int64
	UserCode string
	UserName string
}

type claims struct {
	jwt.RegisteredClaims
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

// SessionManager issues HS256 tokens bound to one issuer and lifetime.
type SessionManager struct {
	key    []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionManager(secret, issuer string, ttl time.Duration) *SessionManager {
	return &SessionManager{key: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

func (m *SessionManager) TTL() time.Duration { return m.ttl }

// Issue signs a token whose subject is the user key and returns it with its
// expiry.
func (m *SessionManager) Issue(s Session) (string, time.Time, error) {
	issued := m.now()
	expires := issued.Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			Subject:   strconv.FormatInt(s.UserKey, 10),
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Code: s.UserCode,
		Name: s.UserName,
	})

	signed, err := token.SignedString(m.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: sign session: %w", err)
	}
	return signed, expires, nil
}

// Validate returns the session in token. Failures wrap ErrInvalidSession.
func (m *SessionManager) Validate(token string) (Session, error) {
	if token == "" {
		return Session{}, fmt.Errorf("%w: empty token", ErrInvalidSession)
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)

	var c claims
	if _, err := parser.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) { return m.key, nil }); err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	key, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || key <= 0 {
		return Session{}, fmt.Errorf("%w: subject %q", ErrInvalidSession, c.Subject)
	}
	return Session{UserKey: key, UserCode: c.Code, UserName: c.Name}, nil
}
