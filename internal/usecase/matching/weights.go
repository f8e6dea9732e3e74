package matching

import (
	"fmt"
	"math"

	"github.com/gdugdh24/roommate-match-backend/internal/domain"
)

const (
	basisPointsTotal    = 10000
	defaultRegionCredit = 50
)

// Weights assigns each category of a candidate kind its share of the overall score.
// Shares must sum to 1.0.
type Weights map[domain.Category]float64

var (
	defaultRoommateWeights = Weights{
		domain.CategoryBudget:      0.25,
		domain.CategoryLocation:    0.20,
		domain.CategoryLifestyle:   0.20,
		domain.CategorySchedule:    0.15,
		domain.CategoryInterests:   0.10,
		domain.CategoryCleanliness: 0.10,
	}
	defaultPropertyWeights = Weights{
		domain.CategoryBudget:    0.40,
		domain.CategoryLocation:  0.30,
		domain.CategoryAmenities: 0.15,
		domain.CategoryLifestyle: 0.15,
	}
)

// Config holds the tunable numbers of the ranker.
type Config struct {
	RoommateWeights Weights
	PropertyWeights Weights
	// RegionCredit is the location sub-score for same region, different place.
	RegionCredit int
}

func DefaultConfig() Config {
	return Config{
		RoommateWeights: defaultRoommateWeights.clone(),
		PropertyWeights: defaultPropertyWeights.clone(),
		RegionCredit:    defaultRegionCredit,
	}
}

func (w Weights) clone() Weights {
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// basisPoints converts weights to integer basis points so aggregation is exact.
func (w Weights) basisPoints(kind domain.CandidateKind) (map[domain.Category]int, error) {
	categories := kind.Categories()
	if len(w) != len(categories) {
		return nil, fmt.Errorf("%s weights: want %d categories, got %d", kind, len(categories), len(w))
	}
	bp := make(map[domain.Category]int, len(categories))
	total := 0
	for _, c := range categories {
		v, ok := w[c]
		if !ok {
			return nil, fmt.Errorf("%s weights: missing category %q", kind, c)
		}
		if v < 0 || math.IsNaN(v) {
			return nil, fmt.Errorf("%s weights: category %q has invalid weight %v", kind, c, v)
		}
		bp[c] = int(math.Round(v * basisPointsTotal))
		total += bp[c]
	}
	if total != basisPointsTotal {
		return nil, fmt.Errorf("%s weights must sum to 1.0, got %.4f", kind, float64(total)/basisPointsTotal)
	}
	return bp, nil
}

// NewConfig builds a ranker config from externally supplied weights keyed by
// category name. An empty weight set keeps the default for that kind.
func NewConfig(roommate, property map[string]float64, regionCredit int) Config {
	cfg := DefaultConfig()
	if len(roommate) > 0 {
		cfg.RoommateWeights = weightsFrom(roommate)
	}
	if len(property) > 0 {
		cfg.PropertyWeights = weightsFrom(property)
	}
	cfg.RegionCredit = regionCredit
	return cfg
}

func weightsFrom(raw map[string]float64) Weights {
	w := make(Weights, len(raw))
	for k, v := range raw {
		w[domain.Category(k)] = v
	}
	return w
}
