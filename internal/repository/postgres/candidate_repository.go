package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/gdugdh24/roommate-match-backend/internal/domain"
	"github.com/gdugdh24/roommate-match-backend/internal/repository"
)

type candidateRepository struct {
	db *sqlx.DB
}

func NewCandidateRepository(db *sqlx.DB) repository.CandidateRepository {
	return &candidateRepository{db: db}
}

// ListRoommateCandidates returns the most recently updated profiles other than
// the requesting user's.
func (r *candidateRepository) ListRoommateCandidates(ctx context.Context, excludeUserID string, limit int) ([]*domain.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE user_id <> $1
		ORDER BY updated_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryxContext(ctx, query, excludeUserID, limit)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()

	profiles := make([]*domain.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, unavailable(err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return profiles, nil
}

// ListPropertyCandidates returns active listings, newest first.
func (r *candidateRepository) ListPropertyCandidates(ctx context.Context, limit int) ([]domain.PropertyCandidate, error) {
	query := `
		SELECT id, title, price, location, amenities, lifestyle_tags
		FROM listings
		WHERE is_active = true
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.QueryxContext(ctx, query, limit)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()

	listings := make([]domain.PropertyCandidate, 0)
	for rows.Next() {
		var c domain.PropertyCandidate
		if err := rows.Scan(&c.ID, &c.Title, &c.Price, &c.Location,
			pq.Array(&c.Amenities), pq.Array(&c.LifestyleTags)); err != nil {
			return nil, unavailable(err)
		}
		listings = append(listings, c)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return listings, nil
}
