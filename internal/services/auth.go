package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campusevents/internal/domain"
)

type authService struct {
	adminRepo domain.AdminUserRepository
	hasher    domain.PasswordHasher
	issuer    domain.TokenIssuer
	expiry    time.Duration
}

// NewAuthService creates an AuthService with the given repository, hasher,
// and token issuer.
func NewAuthService(adminRepo domain.AdminUserRepository, hasher domain.PasswordHasher, issuer domain.TokenIssuer, expiry time.Duration) domain.AuthService {
	return &authService{
		adminRepo: adminRepo,
		hasher:    hasher,
		issuer:    issuer,
		expiry:    expiry,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.AdminUser, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Same answer as a wrong password; no account enumeration.
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get admin user: %w", err)
	}

	if err := s.hasher.Compare(admin.PasswordHash, admin.Salt, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(admin.ID, admin.Email, s.expiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, admin, nil
}
