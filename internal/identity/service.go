package identity

import (
	"context"
	"errors"
	"time"
)

const (
	minPINLength = 4
	// bcrypt rejects secrets longer than this many bytes.
	maxSecretLength = 72
)

// Service manages identity lifecycle.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Register creates a user keyed by the PIN-derived identifier and stores
// hashed secrets only.
func (s *Service) Register(ctx context.Context, creds Credentials) (User, error) {
	if len(creds.PIN) < minPINLength || len(creds.PIN) > maxSecretLength {
		return User{}, ErrInvalidPIN
	}
	if len(creds.Password) > maxSecretLength {
		return User{}, ErrInvalidPassword
	}

	id := DeriveUserID(creds.PIN)
	if _, err := s.repo.FindByID(ctx, id); err == nil {
		return User{}, ErrUserExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}

	pinHash, err := HashSecret(creds.PIN)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:        id,
		PINHash:   pinHash,
		CreatedAt: s.now().UTC(),
	}
	if creds.Password != "" {
		if user.PasswordHash, err = HashSecret(creds.Password); err != nil {
			return User{}, err
		}
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Authenticate verifies the PIN, and the password when both the request and
// the stored record carry one. Every failure collapses to ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	user, err := s.repo.FindByID(ctx, DeriveUserID(creds.PIN))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if ok, err := VerifySecret(user.PINHash, creds.PIN); err != nil || !ok {
		return User{}, ErrInvalidCredentials
	}

	if creds.Password != "" && len(user.PasswordHash) > 0 {
		if ok, err := VerifySecret(user.PasswordHash, creds.Password); err != nil || !ok {
			return User{}, ErrInvalidCredentials
		}
	}

	return user, nil
}
