package matching

import (
	"math"

	"github.com/gdugdh24/roommate-match-backend/internal/domain"
	"github.com/gdugdh24/roommate-match-backend/pkg/textnorm"
)

// neutralScore is used when either side of a tag comparison has no data.
const neutralScore = 50

type tagSet = map[string]struct{}

// profileFeatures is the normalised form of the profile being matched,
// computed once per ranking call.
type profileFeatures struct {
	budgetMin   int
	budgetMax   int
	location    string
	region      string
	lifestyle   tagSet
	schedule    tagSet
	interests   tagSet
	cleanliness tagSet
	amenities   tagSet
}

func newProfileFeatures(p *domain.Profile) profileFeatures {
	return profileFeatures{
		budgetMin:   p.BudgetMin,
		budgetMax:   p.BudgetMax,
		location:    textnorm.Location(p.Location),
		region:      textnorm.Region(p.Location),
		lifestyle:   textnorm.Set(p.LifestyleTags()),
		schedule:    textnorm.Set(p.ScheduleTags()),
		interests:   textnorm.Set(p.Hobbies),
		cleanliness: textnorm.Set(p.CleanlinessTags()),
		amenities:   textnorm.Set(p.DesiredAmenities),
	}
}

// budgetScore is 100 inside [min,max] and decays linearly with the distance
// to the nearest bound, relative to that bound, down to 0.
func budgetScore(min, max int, value float64) int {
	lo, hi := float64(min), float64(max)
	if value >= lo && value <= hi {
		return 100
	}
	var distance, ref float64
	if value < lo {
		distance, ref = lo-value, lo
	} else {
		distance, ref = value-hi, hi
	}
	if ref < 1 {
		ref = 1
	}
	s := 100 * (1 - distance/ref)
	if s <= 0 {
		return 0
	}
	return int(math.Round(s))
}

// locationScore compares normalised locations: exact match, same region, or nothing.
func locationScore(f profileFeatures, location string, regionCredit int) int {
	n := textnorm.Location(location)
	if n == "" || f.location == "" {
		return 0
	}
	if n == f.location {
		return 100
	}
	if r := textnorm.Region(location); r != "" && r == f.region {
		return regionCredit
	}
	return 0
}

// overlapScore is the Jaccard index of two tag sets scaled to 0-100.
func overlapScore(a tagSet, tags []string) int {
	b := textnorm.Set(tags)
	if len(a) == 0 || len(b) == 0 {
		return neutralScore
	}
	common := 0
	for tag := range b {
		if _, ok := a[tag]; ok {
			common++
		}
	}
	union := len(a) + len(b) - common
	return int(math.Round(float64(common) * 100 / float64(union)))
}

func (r *Ranker) scoreRoommate(f profileFeatures, c domain.RoommateCandidate) map[domain.Category]int {
	midpoint := float64(c.BudgetMin+c.BudgetMax) / 2
	return map[domain.Category]int{
		domain.CategoryBudget:      budgetScore(f.budgetMin, f.budgetMax, midpoint),
		domain.CategoryLocation:    locationScore(f, c.Location, r.regionCredit),
		domain.CategoryLifestyle:   overlapScore(f.lifestyle, c.LifestyleTags),
		domain.CategorySchedule:    overlapScore(f.schedule, c.ScheduleTags),
		domain.CategoryInterests:   overlapScore(f.interests, c.Hobbies),
		domain.CategoryCleanliness: overlapScore(f.cleanliness, c.CleanlinessTags),
	}
}

func (r *Ranker) scoreProperty(f profileFeatures, c domain.PropertyCandidate) map[domain.Category]int {
	return map[domain.Category]int{
		domain.CategoryBudget:    budgetScore(f.budgetMin, f.budgetMax, float64(c.Price)),
		domain.CategoryLocation:  locationScore(f, c.Location, r.regionCredit),
		domain.CategoryAmenities: overlapScore(f.amenities, c.Amenities),
		domain.CategoryLifestyle: overlapScore(f.lifestyle, c.LifestyleTags),
	}
}

// aggregate returns round(sum(weight * sub-score)) using integer basis points.
func aggregate(breakdown map[domain.Category]int, weights map[domain.Category]int) int {
	sum := 0
	for category, bp := range weights {
		sum += bp * breakdown[category]
	}
	return (sum + basisPointsTotal/2) / basisPointsTotal
}
