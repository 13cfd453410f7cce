package domain

import (
	"errors"
	"time"
)

// Role is the acting role of a principal. It is derived from the email on
// every check and never persisted alongside the user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrAuthRequired = errors.New("authentication required")
var ErrForbidden = errors.New("access forbidden")

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ResolveRole derives the acting role from the principal's email. Exactly one
// administrator address is configured process-wide; everyone else is a
// customer. Callers re-resolve on every check rather than caching the result
// across a session.
func ResolveRole(email, adminEmail string) Role {
	if adminEmail != "" && email == adminEmail {
		return RoleAdmin
	}
	return RoleCustomer
}
