package domain

// Category names one comparison dimension of a compatibility breakdown.
type Category string

const (
	CategoryBudget      Category = "budget"
	CategoryLocation    Category = "location"
	CategoryLifestyle   Category = "lifestyle"
	CategorySchedule    Category = "schedule"
	CategoryInterests   Category = "interests"
	CategoryCleanliness Category = "cleanliness"
	CategoryAmenities   Category = "amenities"
)

// CandidateKind distinguishes the two candidate variants.
type CandidateKind string

const (
	KindRoommate CandidateKind = "roommate"
	KindProperty CandidateKind = "property"
)

// Categories returns the breakdown keys scored for a candidate kind.
func (k CandidateKind) Categories() []Category {
	switch k {
	case KindRoommate:
		return []Category{
			CategoryBudget, CategoryLocation, CategoryLifestyle,
			CategorySchedule, CategoryInterests, CategoryCleanliness,
		}
	case KindProperty:
		return []Category{CategoryBudget, CategoryLocation, CategoryAmenities, CategoryLifestyle}
	default:
		return nil
	}
}

// Candidate is one potential match handed to the ranker.
type Candidate interface {
	CandidateID() string
	Kind() CandidateKind
}

// RoommateCandidate is another user considered as a roommate.
type RoommateCandidate struct {
	ID              string   `json:"id"`
	BudgetMin       int      `json:"budget_min"`
	BudgetMax       int      `json:"budget_max"`
	Location        string   `json:"location"`
	LifestyleTags   []string `json:"lifestyle_tags"`
	ScheduleTags    []string `json:"schedule_tags"`
	Hobbies         []string `json:"hobbies"`
	CleanlinessTags []string `json:"cleanliness_tags"`
}

func (c RoommateCandidate) CandidateID() string { return c.ID }
func (c RoommateCandidate) Kind() CandidateKind { return KindRoommate }

// PropertyCandidate is a listing. LifestyleTags use the same vocabulary as
// Profile.LifestyleTags ("smoking", "non_smoking", "pets", "no_pets", "social:<level>").
type PropertyCandidate struct {
	ID            string   `json:"id" db:"id"`
	Title         string   `json:"title" db:"title"`
	Price         int      `json:"price" db:"price"`
	Location      string   `json:"location" db:"location"`
	Amenities     []string `json:"amenities" db:"amenities"`
	LifestyleTags []string `json:"lifestyle_tags" db:"lifestyle_tags"`
}

func (c PropertyCandidate) CandidateID() string { return c.ID }
func (c PropertyCandidate) Kind() CandidateKind { return KindProperty }

// CompatibilityResult is the scored outcome for one candidate.
type CompatibilityResult struct {
	CandidateID string           `json:"candidate_id"`
	Kind        CandidateKind    `json:"kind"`
	Score       int              `json:"score"`
	Breakdown   map[Category]int `json:"breakdown"`
}

// LifestyleTags derives the lifestyle tag set of a profile.
func (p *Profile) LifestyleTags() []string {
	var tags []string
	if p.Smoking != nil {
		if *p.Smoking {
			tags = append(tags, "smoking")
		} else {
			tags = append(tags, "non_smoking")
		}
	}
	if p.Pets != nil {
		if *p.Pets {
			tags = append(tags, "pets")
		} else {
			tags = append(tags, "no_pets")
		}
	}
	if p.SocialLevel != nil && *p.SocialLevel != "" {
		tags = append(tags, "social:"+*p.SocialLevel)
	}
	return tags
}

// ScheduleTags derives the work/sleep schedule tag set of a profile.
func (p *Profile) ScheduleTags() []string {
	var tags []string
	if p.WorkSchedule != nil && *p.WorkSchedule != "" {
		tags = append(tags, "work:"+*p.WorkSchedule)
	}
	if p.SleepSchedule != nil && *p.SleepSchedule != "" {
		tags = append(tags, "sleep:"+*p.SleepSchedule)
	}
	return tags
}

func (p *Profile) CleanlinessTags() []string {
	if p.CleanlinessLevel == nil || *p.CleanlinessLevel == "" {
		return nil
	}
	return []string{*p.CleanlinessLevel}
}

// AsRoommateCandidate projects another user's profile onto the roommate comparison fields.
func (p *Profile) AsRoommateCandidate() RoommateCandidate {
	return RoommateCandidate{
		ID:              p.UserID,
		BudgetMin:       p.BudgetMin,
		BudgetMax:       p.BudgetMax,
		Location:        p.Location,
		LifestyleTags:   p.LifestyleTags(),
		ScheduleTags:    p.ScheduleTags(),
		Hobbies:         append([]string(nil), p.Hobbies...),
		CleanlinessTags: p.CleanlinessTags(),
	}
}
