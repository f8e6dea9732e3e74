package profile

import (
	"fmt"

	"github.com/gdugdh24/roommate-match-backend/internal/domain"
)

// verifyPersisted fails when a field present in the written profile is not
// reflected in the row the store returned.
func verifyPersisted(sent, stored *domain.Profile) error {
	if stored == nil {
		return fmt.Errorf("%w: store returned no row", domain.ErrStoreUnavailable)
	}
	checks := []struct {
		field string
		ok    bool
	}{
		{"user_id", sent.UserID == stored.UserID},
		{"location", sent.Location == stored.Location},
		{"budget_min", sent.BudgetMin == stored.BudgetMin},
		{"budget_max", sent.BudgetMax == stored.BudgetMax},
		{"name", sentPtrKept(sent.Name, stored.Name)},
		{"age", sentPtrKept(sent.Age, stored.Age)},
		{"gender", sentPtrKept(sent.Gender, stored.Gender)},
		{"email", sentPtrKept(sent.Email, stored.Email)},
		{"phone", sentPtrKept(sent.Phone, stored.Phone)},
		{"profile_visibility", sentSliceKept(sent.ProfileVisibility, stored.ProfileVisibility)},
		{"move_in_date", sentDateKept(sent, stored)},
		{"housing_type", sentPtrKept(sent.HousingType, stored.HousingType)},
		{"smoking", sentPtrKept(sent.Smoking, stored.Smoking)},
		{"pets", sentPtrKept(sent.Pets, stored.Pets)},
		{"cleanliness_level", sentPtrKept(sent.CleanlinessLevel, stored.CleanlinessLevel)},
		{"social_level", sentPtrKept(sent.SocialLevel, stored.SocialLevel)},
		{"work_schedule", sentPtrKept(sent.WorkSchedule, stored.WorkSchedule)},
		{"sleep_schedule", sentPtrKept(sent.SleepSchedule, stored.SleepSchedule)},
		{"hobbies", sentSliceKept(sent.Hobbies, stored.Hobbies)},
		{"pref_gender", sentPtrKept(sent.PrefGender, stored.PrefGender)},
		{"pref_age_min", sentPtrKept(sent.PrefAgeMin, stored.PrefAgeMin)},
		{"pref_age_max", sentPtrKept(sent.PrefAgeMax, stored.PrefAgeMax)},
		{"desired_traits", sentSliceKept(sent.DesiredTraits, stored.DesiredTraits)},
		{"desired_amenities", sentSliceKept(sent.DesiredAmenities, stored.DesiredAmenities)},
		{"importance", sentImportanceKept(sent.Importance, stored.Importance)},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%w: field %s was not persisted", domain.ErrStoreUnavailable, c.field)
		}
	}
	return nil
}

func sentPtrKept[T comparable](sent, stored *T) bool {
	if sent == nil {
		return true
	}
	return stored != nil && *sent == *stored
}

// nil means the field was absent from the form; an empty slice must come back empty.
func sentSliceKept(sent, stored []string) bool {
	if sent == nil {
		return true
	}
	if len(sent) != len(stored) {
		return false
	}
	for i := range sent {
		if sent[i] != stored[i] {
			return false
		}
	}
	return true
}

func sentDateKept(sent, stored *domain.Profile) bool {
	if sent.MoveInDate == nil {
		return true
	}
	return stored.MoveInDate != nil &&
		sent.MoveInDate.Format(dateLayout) == stored.MoveInDate.Format(dateLayout)
}

func sentImportanceKept(sent, stored domain.Importance) bool {
	if sent == nil {
		return true
	}
	if len(sent) != len(stored) {
		return false
	}
	for k, v := range sent {
		if stored[k] != v {
			return false
		}
	}
	return true
}
