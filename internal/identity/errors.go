package identity

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPIN         = errors.New("PIN must be between 4 and 72 characters")
	ErrInvalidPassword    = errors.New("password must be at most 72 characters")
	ErrVerification       = errors.New("secret verification failed")
)
