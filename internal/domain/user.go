package domain

import "time"

// User is an editor account allowed to sign in.
type User struct {
	Key          int64
	Code         string
	FullName     *string
	PasswordHash string
	CreatedAt    time.Time
}

// DisplayName returns the full name, falling back to the login code.
func (u User) DisplayName() string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.Code
}
