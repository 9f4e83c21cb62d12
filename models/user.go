package models

import (
	"strings"
	"time"
)

// User represents an account that owns appointments.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`

	// ModifiedAt is updated on every change of the account
	// (password change, activation toggle).
	ModifiedAt time.Time `json:"modified_at"`

	// Name is the optional display name of the user.
	Name string `json:"name"`

	// Email is the unique login identifier. It is always stored in its
	// normalized form, see [NormalizeEmail].
	Email string `json:"email"`

	// Active reports whether the account may log in. Disabled accounts are
	// kept in storage and never hard-deleted.
	Active bool `json:"active"`

	// PasswordHash is the one-way salted hash of the user's password.
	// Plaintext passwords are never stored.
	PasswordHash string `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address so
// that lookups and the uniqueness constraint are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
