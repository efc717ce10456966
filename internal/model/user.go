package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Base
	Name          *string    `json:"name" db:"name"`
	Email         string     `json:"email" db:"email"`
	EmailVerified *time.Time `json:"emailVerified" db:"email_verified"`
	Image         *string    `json:"image" db:"image"`
	Phone         *string    `json:"phone" db:"phone"`
	PasswordHash  *string    `json:"-" db:"password_hash"`
}

// HasPassword reports whether the account can sign in with a password
// (provider-only accounts cannot).
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// Account links a user to an external auth provider.
type Account struct {
	Base
	UserID            uuid.UUID `json:"userId" db:"user_id"`
	Type              string    `json:"type" db:"type"`
	Provider          string    `json:"provider" db:"provider"`
	ProviderAccountID string    `json:"providerAccountId" db:"provider_account_id"`
}

// Session is a signed-in device. The session JWT carries its ID.
type Session struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UserAgent *string   `json:"userAgent" db:"user_agent"`
	IP        *string   `json:"ip" db:"ip"`
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// VerificationToken is a single-use token for an identifier (an email).
// Only the SHA-256 hash of the token is stored.
type VerificationToken struct {
	Identifier string    `db:"identifier"`
	TokenHash  string    `db:"token_hash"`
	Purpose    string    `db:"purpose"`
	ExpiresAt  time.Time `db:"expires_at"`
	CreatedAt  time.Time `db:"created_at"`
}

const (
	TokenPurposePasswordReset = "password_reset"
)
