package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ImportanceLevel says how much a preference category matters to the profile owner.
type ImportanceLevel string

const (
	ImportanceNotImportant ImportanceLevel = "not_important"
	ImportanceImportant    ImportanceLevel = "important"
	ImportanceMustHave     ImportanceLevel = "must_have"
)

func (l ImportanceLevel) IsValid() bool {
	switch l {
	case ImportanceNotImportant, ImportanceImportant, ImportanceMustHave:
		return true
	default:
		return false
	}
}

// Importance maps a preference category to its importance level.
type Importance map[Category]ImportanceLevel

// Visibility field names accepted in Profile.ProfileVisibility.
const (
	VisibleEmail  = "email"
	VisiblePhone  = "phone"
	VisibleAge    = "age"
	VisibleGender = "gender"
)

type Profile struct {
	ID     uuid.UUID `json:"id" db:"id"`
	UserID string    `json:"user_id" db:"user_id"`

	Name   *string `json:"name" db:"name"`
	Age    *int    `json:"age" db:"age"`
	Gender *string `json:"gender" db:"gender"`

	Email             *string  `json:"email" db:"email"`
	Phone             *string  `json:"phone" db:"phone"`
	ProfileVisibility []string `json:"profile_visibility" db:"profile_visibility"`

	Location    string     `json:"location" db:"location"`
	BudgetMin   int        `json:"budget_min" db:"budget_min"`
	BudgetMax   int        `json:"budget_max" db:"budget_max"`
	MoveInDate  *time.Time `json:"move_in_date" db:"move_in_date"`
	HousingType *string    `json:"housing_type" db:"housing_type"`

	Smoking          *bool    `json:"smoking" db:"smoking"`
	Pets             *bool    `json:"pets" db:"pets"`
	CleanlinessLevel *string  `json:"cleanliness_level" db:"cleanliness_level"`
	SocialLevel      *string  `json:"social_level" db:"social_level"`
	WorkSchedule     *string  `json:"work_schedule" db:"work_schedule"`
	SleepSchedule    *string  `json:"sleep_schedule" db:"sleep_schedule"`
	Hobbies          []string `json:"hobbies" db:"hobbies"`

	PrefGender       *string    `json:"pref_gender" db:"pref_gender"`
	PrefAgeMin       *int       `json:"pref_age_min" db:"pref_age_min"`
	PrefAgeMax       *int       `json:"pref_age_max" db:"pref_age_max"`
	DesiredTraits    []string   `json:"desired_traits" db:"desired_traits"`
	DesiredAmenities []string   `json:"desired_amenities" db:"desired_amenities"`
	Importance       Importance `json:"importance" db:"importance"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CheckInvariants reports the first broken profile invariant, or nil.
// Callers wrap the result with the sentinel that fits their operation.
func (p *Profile) CheckInvariants() error {
	if p == nil {
		return errors.New("profile is nil")
	}
	if p.UserID == "" {
		return errors.New("user_id is required")
	}
	if p.Location == "" {
		return errors.New("location is required")
	}
	if p.BudgetMin < 0 {
		return fmt.Errorf("budget_min must not be negative, got %d", p.BudgetMin)
	}
	if p.BudgetMin > p.BudgetMax {
		return fmt.Errorf("budget range is inverted: [%d,%d]", p.BudgetMin, p.BudgetMax)
	}
	if p.Age != nil && *p.Age <= 0 {
		return fmt.Errorf("age must be positive, got %d", *p.Age)
	}
	if p.PrefAgeMin != nil && p.PrefAgeMax != nil && *p.PrefAgeMin > *p.PrefAgeMax {
		return fmt.Errorf("preferred age range is inverted: [%d,%d]", *p.PrefAgeMin, *p.PrefAgeMax)
	}
	seen := make(map[string]struct{}, len(p.ProfileVisibility))
	for _, field := range p.ProfileVisibility {
		if _, dup := seen[field]; dup {
			return fmt.Errorf("profile_visibility contains %q twice", field)
		}
		seen[field] = struct{}{}
	}
	for category, level := range p.Importance {
		if !level.IsValid() {
			return fmt.Errorf("importance for %q has unknown level %q", category, level)
		}
	}
	return nil
}

// IsVisible reports whether the owner shares the named field with other users.
func (p *Profile) IsVisible(field string) bool {
	for _, f := range p.ProfileVisibility {
		if f == field {
			return true
		}
	}
	return false
}

// PublicView returns a copy safe to show to other users: privacy-gated
// fields are cleared unless listed in ProfileVisibility.
func (p *Profile) PublicView() *Profile {
	view := *p
	if !p.IsVisible(VisibleEmail) {
		view.Email = nil
	}
	if !p.IsVisible(VisiblePhone) {
		view.Phone = nil
	}
	if !p.IsVisible(VisibleAge) {
		view.Age = nil
	}
	if !p.IsVisible(VisibleGender) {
		view.Gender = nil
	}
	return &view
}
