package identity

import "baby-tracker-go/internal/domain/apperr"

var (
	ErrUserNotFound       = apperr.New(apperr.KindNotFound, "user not found")
	ErrEmailTaken         = apperr.New(apperr.KindConflict, "Email already registered")
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthenticated, "Invalid email or password")
	ErrInvalidToken       = apperr.New(apperr.KindUnauthenticated, "invalid or expired token")
	ErrMissingCredentials = apperr.New(apperr.KindInvalidInput, "email and password are required")
)
