package domain

import "errors"

var (
	// ErrProfileNotFound is returned when no profile exists for a user identity.
	// It is an expected control-flow signal, not a fault.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrValidationFailed is returned when a profile payload is malformed.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidProfile is returned by ranking when the base profile is unusable.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrInvalidInput is returned by ranking when candidates or options are malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable is returned when the persistent store cannot serve a request.
	ErrStoreUnavailable = errors.New("store unavailable")

	ErrInvalidToken    = errors.New("invalid token")
	ErrLockNotAcquired = errors.New("profile write lock not acquired")
)
