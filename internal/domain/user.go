// Package domain contains the core business entities for Pulso.
// These are pure Go structs with no external dependencies, representing
// the fundamental concepts of the sector-scoped feedback platform.
package domain

import (
	"strings"
	"time"
)

// User represents an authenticated platform user (a login principal).
// Every user belongs to exactly one sector; dashboard aggregations are
// scoped to that sector.
type User struct {
	// ID is the unique identifier for the user (auto-generated).
	ID int64 `json:"id"`

	// Name is the user's full name. Constraints: 1-255 characters.
	Name string `json:"nome"`

	// Email is the unique email address, normalized to lowercase.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// This is never exposed in API responses.
	PasswordHash string `json:"-"`

	// SectorID references the sector the user belongs to (required).
	SectorID int64 `json:"setorId"`

	// Active indicates whether the account is active.
	// Inactive users cannot authenticate.
	Active bool `json:"ativo"`

	// Sector is the user's sector, populated when loaded with a join.
	Sector *Sector `json:"setor,omitempty"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUser creates a new User with default values.
// The email is normalized to lowercase; the password must already be hashed.
func NewUser(name, email, passwordHash string, sectorID int64) *User {
	now := time.Now().UTC()
	return &User{
		Name:         name,
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		SectorID:     sectorID,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NormalizeEmail lowercases and trims an email address so that uniqueness
// checks and login lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CanAuthenticate returns true if the user is allowed to authenticate.
// Both the user and its sector must be active.
func (u *User) CanAuthenticate() bool {
	if !u.Active {
		return false
	}
	return u.Sector == nil || u.Sector.Active
}
