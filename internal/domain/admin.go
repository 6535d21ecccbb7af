package domain

import (
	"context"
	"time"
)

// AdminUser represents an administrator account.
// swagger:model AdminUser
type AdminUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated administrator.
type TokenIssuer interface {
	Issue(adminID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated admin ID and
// email. Expired or tampered tokens fail verification.
type TokenVerifier interface {
	Verify(token string) (adminID, email string, err error)
}

// AdminUserRepository defines the interface for administrator storage.
type AdminUserRepository interface {
	GetByEmail(ctx context.Context, email string) (*AdminUser, error)
	GetByID(ctx context.Context, id string) (*AdminUser, error)
}

// AuthService authenticates administrators and issues session tokens.
type AuthService interface {
	// Login returns a signed session token. Credential failures are
	// ErrInvalidCredentials regardless of which part was wrong.
	Login(ctx context.Context, email, password string) (token string, admin *AdminUser, err error)
}
