package matching

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/gdugdh24/roommate-match-backend/internal/domain"
	"github.com/gdugdh24/roommate-match-backend/internal/infrastructure/logger"
	"github.com/gdugdh24/roommate-match-backend/internal/repository"
)

const defaultPoolSize = 200

type MatchingUseCase struct {
	profileRepo   repository.ProfileRepository
	candidateRepo repository.CandidateRepository
	ranker        *Ranker
	poolSize      int
	log           *logger.Logger
}

func NewMatchingUseCase(
	profileRepo repository.ProfileRepository,
	candidateRepo repository.CandidateRepository,
	ranker *Ranker,
	poolSize int,
	log *logger.Logger,
) *MatchingUseCase {
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	return &MatchingUseCase{
		profileRepo:   profileRepo,
		candidateRepo: candidateRepo,
		ranker:        ranker,
		poolSize:      poolSize,
		log:           log,
	}
}

// RoommateMatches ranks other users' profiles against the caller's profile.
func (uc *MatchingUseCase) RoommateMatches(ctx context.Context, userID string, opts Options) ([]domain.CompatibilityResult, error) {
	var others []*domain.Profile
	profile, err := uc.fetchWithPool(ctx, userID, func(gctx context.Context) error {
		var err error
		others, err = uc.candidateRepo.ListRoommateCandidates(gctx, userID, uc.poolSize)
		return err
	})
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.Candidate, 0, len(others))
	for _, p := range others {
		if p == nil || p.UserID == userID {
			continue
		}
		candidates = append(candidates, p.AsRoommateCandidate())
	}
	return uc.rank(profile, candidates, opts)
}

// PropertyMatches ranks listings against the caller's profile.
func (uc *MatchingUseCase) PropertyMatches(ctx context.Context, userID string, opts Options) ([]domain.CompatibilityResult, error) {
	var listings []domain.PropertyCandidate
	profile, err := uc.fetchWithPool(ctx, userID, func(gctx context.Context) error {
		var err error
		listings, err = uc.candidateRepo.ListPropertyCandidates(gctx, uc.poolSize)
		return err
	})
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.Candidate, 0, len(listings))
	for _, l := range listings {
		candidates = append(candidates, l)
	}
	return uc.rank(profile, candidates, opts)
}

// fetchWithPool loads the caller's profile while fetchPool runs alongside it.
func (uc *MatchingUseCase) fetchWithPool(ctx context.Context, userID string, fetchPool func(context.Context) error) (*domain.Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidationFailed)
	}

	var profile *domain.Profile
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = uc.profileRepo.GetByUserID(gctx, userID)
		return err
	})
	g.Go(func() error {
		return fetchPool(gctx)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return profile, nil
}

func (uc *MatchingUseCase) rank(profile *domain.Profile, candidates []domain.Candidate, opts Options) ([]domain.CompatibilityResult, error) {
	results, err := uc.ranker.Rank(profile, candidates, opts)
	if err != nil {
		uc.log.Warn("ranking rejected", "user_id", profile.UserID, "error", err)
		return nil, err
	}
	uc.log.Debug("ranked candidates",
		"user_id", profile.UserID,
		"pool", len(candidates),
		"returned", len(results),
	)
	return results, nil
}
