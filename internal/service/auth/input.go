package auth

import (
	"strings"

	"github.com/yadascribe/scribe-backend/internal/domain"
)

const minPasswordLength = 8

// LoginInput holds the sign-in credentials.
type LoginInput struct {
	Login    string
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var v domain.Violations
	v.Require(strings.TrimSpace(i.Login) != "", "login", "required")
	v.Require(i.Password != "", "password", "required")
	return v.Err()
}

// CreateUserInput holds parameters for adding an editor account.
type CreateUserInput struct {
	Code     string
	FullName string
	Password string
}

// Validate validates the create user input.
func (i CreateUserInput) Validate() error {
	var v domain.Violations

	switch code := strings.TrimSpace(i.Code); {
	case code == "":
		v.Add("code", "required")
	case len(code) > 64:
		v.Add("code", "too long (max 64)")
	}
	switch {
	case len(i.Password) < minPasswordLength:
		v.Add("password", "too short (min 8)")
	case len(i.Password) > 72:
		v.Add("password", "too long (max 72)")
	}

	return v.Err()
}
