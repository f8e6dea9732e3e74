package matching

import (
	"fmt"
	"sort"

	"github.com/gdugdh24/roommate-match-backend/internal/domain"
)

// Options narrows a ranking.
type Options struct {
	// Limit caps the number of results; 0 means unbounded.
	Limit int
	// MinScore, when set, keeps only results scoring strictly above it.
	MinScore *int
}

// Ranker scores candidates against a profile. It holds no mutable state and
// is safe for concurrent use.
type Ranker struct {
	weights      map[domain.CandidateKind]map[domain.Category]int
	regionCredit int
}

func NewRanker(cfg Config) (*Ranker, error) {
	roommate, err := cfg.RoommateWeights.basisPoints(domain.KindRoommate)
	if err != nil {
		return nil, err
	}
	property, err := cfg.PropertyWeights.basisPoints(domain.KindProperty)
	if err != nil {
		return nil, err
	}
	if cfg.RegionCredit < 0 || cfg.RegionCredit > 100 {
		return nil, fmt.Errorf("region credit must be within [0,100], got %d", cfg.RegionCredit)
	}
	return &Ranker{
		weights: map[domain.CandidateKind]map[domain.Category]int{
			domain.KindRoommate: roommate,
			domain.KindProperty: property,
		},
		regionCredit: cfg.RegionCredit,
	}, nil
}

// Rank scores every distinct candidate against the profile and returns the
// results ordered by score descending, then candidate id ascending.
// All inputs are validated before scoring starts; on error nothing is returned.
func (r *Ranker) Rank(profile *domain.Profile, candidates []domain.Candidate, opts Options) ([]domain.CompatibilityResult, error) {
	if err := profile.CheckInvariants(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidProfile, err)
	}
	if opts.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative, got %d", domain.ErrInvalidInput, opts.Limit)
	}
	if opts.MinScore != nil && (*opts.MinScore < 0 || *opts.MinScore > 100) {
		return nil, fmt.Errorf("%w: min score must be within [0,100], got %d", domain.ErrInvalidInput, *opts.MinScore)
	}

	pool, kind, err := distinctCandidates(candidates)
	if err != nil {
		return nil, err
	}
	results := make([]domain.CompatibilityResult, 0, len(pool))
	if len(pool) == 0 {
		return results, nil
	}

	features := newProfileFeatures(profile)
	weights := r.weights[kind]
	for _, c := range pool {
		var breakdown map[domain.Category]int
		switch v := c.(type) {
		case domain.RoommateCandidate:
			breakdown = r.scoreRoommate(features, v)
		case domain.PropertyCandidate:
			breakdown = r.scoreProperty(features, v)
		}
		score := aggregate(breakdown, weights)
		if opts.MinScore != nil && score <= *opts.MinScore {
			continue
		}
		results = append(results, domain.CompatibilityResult{
			CandidateID: c.CandidateID(),
			Kind:        kind,
			Score:       score,
			Breakdown:   breakdown,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].CandidateID < results[j].CandidateID
	})
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results, nil
}

// distinctCandidates validates the pool and drops repeated identities,
// keeping the first occurrence. Pointer variants are dereferenced so the
// scorer only sees values.
func distinctCandidates(candidates []domain.Candidate) ([]domain.Candidate, domain.CandidateKind, error) {
	var kind domain.CandidateKind
	seen := make(map[string]struct{}, len(candidates))
	pool := make([]domain.Candidate, 0, len(candidates))
	for i, c := range candidates {
		switch v := c.(type) {
		case domain.RoommateCandidate, domain.PropertyCandidate:
		case *domain.RoommateCandidate:
			if v == nil {
				return nil, "", fmt.Errorf("%w: candidate %d is nil", domain.ErrInvalidInput, i)
			}
			c = *v
		case *domain.PropertyCandidate:
			if v == nil {
				return nil, "", fmt.Errorf("%w: candidate %d is nil", domain.ErrInvalidInput, i)
			}
			c = *v
		case nil:
			return nil, "", fmt.Errorf("%w: candidate %d is nil", domain.ErrInvalidInput, i)
		default:
			return nil, "", fmt.Errorf("%w: candidate %d has unsupported type %T", domain.ErrInvalidInput, i, c)
		}

		if kind == "" {
			kind = c.Kind()
		} else if c.Kind() != kind {
			return nil, "", fmt.Errorf("%w: cannot rank %s and %s candidates together", domain.ErrInvalidInput, kind, c.Kind())
		}
		id := c.CandidateID()
		if id == "" {
			return nil, "", fmt.Errorf("%w: candidate %d has no identity", domain.ErrInvalidInput, i)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		pool = append(pool, c)
	}
	return pool, kind, nil
}
