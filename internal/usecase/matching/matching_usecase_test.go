package matching

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdugdh24/roommate-match-backend/internal/domain"
	"github.com/gdugdh24/roommate-match-backend/internal/infrastructure/logger"
)

type stubProfileRepo struct {
	profiles map[string]*domain.Profile
	err      error
}

func (s *stubProfileRepo) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (s *stubProfileRepo) Upsert(context.Context, *domain.Profile) (*domain.Profile, error) {
	return nil, errors.New("not used")
}

type stubCandidateRepo struct {
	roommates  []*domain.Profile
	properties []domain.PropertyCandidate
	err        error

	gotExclude string
	gotLimit   int
}

func (s *stubCandidateRepo) ListRoommateCandidates(_ context.Context, excludeUserID string, limit int) ([]*domain.Profile, error) {
	s.gotExclude, s.gotLimit = excludeUserID, limit
	return s.roommates, s.err
}

func (s *stubCandidateRepo) ListPropertyCandidates(_ context.Context, limit int) ([]domain.PropertyCandidate, error) {
	s.gotLimit = limit
	return s.properties, s.err
}

func newTestUseCase(t *testing.T, profiles *stubProfileRepo, candidates *stubCandidateRepo) *MatchingUseCase {
	t.Helper()
	return NewMatchingUseCase(profiles, candidates, newTestRanker(t), 0, logger.NewNop())
}

func TestRoommateMatchesRanksOtherProfiles(t *testing.T) {
	me := seekerProfile()
	profiles := &stubProfileRepo{profiles: map[string]*domain.Profile{"me": me}}
	candidates := &stubCandidateRepo{roommates: []*domain.Profile{
		{UserID: "me", Location: me.Location, BudgetMin: 1000, BudgetMax: 1500},
		{UserID: "alex", Location: "Brooklyn, New York", BudgetMin: 1100, BudgetMax: 1400, Hobbies: []string{"Gaming"}},
		{UserID: "sam", Location: "Austin, Texas", BudgetMin: 3000, BudgetMax: 3500},
		nil,
	}}
	uc := newTestUseCase(t, profiles, candidates)

	results, err := uc.RoommateMatches(context.Background(), "me", Options{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "alex", results[0].CandidateID)
	assert.Equal(t, "sam", results[1].CandidateID)
	assert.Equal(t, domain.KindRoommate, results[0].Kind)

	assert.Equal(t, "me", candidates.gotExclude)
	assert.Equal(t, defaultPoolSize, candidates.gotLimit)
}

func TestPropertyMatchesAppliesOptions(t *testing.T) {
	profiles := &stubProfileRepo{profiles: map[string]*domain.Profile{"me": seekerProfile()}}
	var listings []domain.PropertyCandidate
	for _, c := range propertyPool() {
		listings = append(listings, c.(domain.PropertyCandidate))
	}
	uc := newTestUseCase(t, profiles, &stubCandidateRepo{properties: listings})

	results, err := uc.PropertyMatches(context.Background(), "me", Options{MinScore: intPtr(80), Limit: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "pB", results[0].CandidateID)
	assert.Equal(t, "pD", results[1].CandidateID)
}

func TestMatchesProfileNotFound(t *testing.T) {
	uc := newTestUseCase(t, &stubProfileRepo{profiles: map[string]*domain.Profile{}}, &stubCandidateRepo{})

	_, err := uc.PropertyMatches(context.Background(), "ghost", Options{})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestMatchesPoolUnavailable(t *testing.T) {
	profiles := &stubProfileRepo{profiles: map[string]*domain.Profile{"me": seekerProfile()}}
	candidates := &stubCandidateRepo{err: fmt.Errorf("%w: connection refused", domain.ErrStoreUnavailable)}
	uc := newTestUseCase(t, profiles, candidates)

	_, err := uc.RoommateMatches(context.Background(), "me", Options{})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestMatchesRequireUserID(t *testing.T) {
	uc := newTestUseCase(t, &stubProfileRepo{}, &stubCandidateRepo{})

	_, err := uc.RoommateMatches(context.Background(), "", Options{})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestMatchesInvalidOptionsSurface(t *testing.T) {
	profiles := &stubProfileRepo{profiles: map[string]*domain.Profile{"me": seekerProfile()}}
	uc := newTestUseCase(t, profiles, &stubCandidateRepo{})

	_, err := uc.PropertyMatches(context.Background(), "me", Options{Limit: -5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
