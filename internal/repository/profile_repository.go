package repository

import (
	"context"

	"github.com/gdugdh24/roommate-match-backend/internal/domain"
)

// ProfileRepository persists exactly one profile per user identity.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	// Upsert inserts the profile or updates the existing row for its user id
	// in a single statement and returns the stored row.
	Upsert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
}

// ProfileLocker serialises profile writes per user identity.
type ProfileLocker interface {
	Lock(ctx context.Context, userID string) (unlock func(context.Context) error, err error)
}
