package repository

import (
	"context"

	"github.com/gdugdh24/roommate-match-backend/internal/domain"
)

// CandidateRepository supplies the pools that get ranked.
type CandidateRepository interface {
	ListRoommateCandidates(ctx context.Context, excludeUserID string, limit int) ([]*domain.Profile, error)
	ListPropertyCandidates(ctx context.Context, limit int) ([]domain.PropertyCandidate, error)
}
