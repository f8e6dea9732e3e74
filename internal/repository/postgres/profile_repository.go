package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/gdugdh24/roommate-match-backend/internal/domain"
	"github.com/gdugdh24/roommate-match-backend/internal/repository"
)

const profileColumns = `id, user_id, name, age, gender, email, phone, profile_visibility,
	location, budget_min, budget_max, move_in_date, housing_type,
	smoking, pets, cleanliness_level, social_level, work_schedule, sleep_schedule, hobbies,
	pref_gender, pref_age_min, pref_age_max, desired_traits, desired_amenities, importance,
	created_at, updated_at`

// Optional columns use COALESCE so a field absent from the form keeps its
// stored value; required columns are always overwritten.
const upsertProfileQuery = `
	INSERT INTO profiles (
		id, user_id, name, age, gender, email, phone, profile_visibility,
		location, budget_min, budget_max, move_in_date, housing_type,
		smoking, pets, cleanliness_level, social_level, work_schedule, sleep_schedule, hobbies,
		pref_gender, pref_age_min, pref_age_max, desired_traits, desired_amenities, importance
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
	        $21, $22, $23, $24, $25, $26)
	ON CONFLICT (user_id) DO UPDATE SET
		name = COALESCE(EXCLUDED.name, profiles.name),
		age = COALESCE(EXCLUDED.age, profiles.age),
		gender = COALESCE(EXCLUDED.gender, profiles.gender),
		email = COALESCE(EXCLUDED.email, profiles.email),
		phone = COALESCE(EXCLUDED.phone, profiles.phone),
		profile_visibility = COALESCE(EXCLUDED.profile_visibility, profiles.profile_visibility),
		location = EXCLUDED.location,
		budget_min = EXCLUDED.budget_min,
		budget_max = EXCLUDED.budget_max,
		move_in_date = COALESCE(EXCLUDED.move_in_date, profiles.move_in_date),
		housing_type = COALESCE(EXCLUDED.housing_type, profiles.housing_type),
		smoking = COALESCE(EXCLUDED.smoking, profiles.smoking),
		pets = COALESCE(EXCLUDED.pets, profiles.pets),
		cleanliness_level = COALESCE(EXCLUDED.cleanliness_level, profiles.cleanliness_level),
		social_level = COALESCE(EXCLUDED.social_level, profiles.social_level),
		work_schedule = COALESCE(EXCLUDED.work_schedule, profiles.work_schedule),
		sleep_schedule = COALESCE(EXCLUDED.sleep_schedule, profiles.sleep_schedule),
		hobbies = COALESCE(EXCLUDED.hobbies, profiles.hobbies),
		pref_gender = COALESCE(EXCLUDED.pref_gender, profiles.pref_gender),
		pref_age_min = COALESCE(EXCLUDED.pref_age_min, profiles.pref_age_min),
		pref_age_max = COALESCE(EXCLUDED.pref_age_max, profiles.pref_age_max),
		desired_traits = COALESCE(EXCLUDED.desired_traits, profiles.desired_traits),
		desired_amenities = COALESCE(EXCLUDED.desired_amenities, profiles.desired_amenities),
		importance = COALESCE(EXCLUDED.importance, profiles.importance),
		updated_at = CURRENT_TIMESTAMP
	RETURNING ` + profileColumns

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	profile, err := scanProfile(r.db.QueryRowxContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, unavailable(err)
	}
	return profile, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	importance, err := encodeImportance(profile.Importance)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidationFailed, err)
	}

	// The generated id is only used when the row does not exist yet.
	stored, err := scanProfile(r.db.QueryRowxContext(
		ctx, upsertProfileQuery,
		uuid.New(), profile.UserID, profile.Name, profile.Age, profile.Gender,
		profile.Email, profile.Phone, nullableArray(profile.ProfileVisibility),
		profile.Location, profile.BudgetMin, profile.BudgetMax, profile.MoveInDate, profile.HousingType,
		profile.Smoking, profile.Pets, profile.CleanlinessLevel, profile.SocialLevel,
		profile.WorkSchedule, profile.SleepSchedule, nullableArray(profile.Hobbies),
		profile.PrefGender, profile.PrefAgeMin, profile.PrefAgeMax,
		nullableArray(profile.DesiredTraits), nullableArray(profile.DesiredAmenities), importance,
	))
	if err != nil {
		return nil, unavailable(err)
	}
	return stored, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var (
		profile    domain.Profile
		importance []byte
	)
	err := row.Scan(
		&profile.ID, &profile.UserID, &profile.Name, &profile.Age, &profile.Gender,
		&profile.Email, &profile.Phone, pq.Array(&profile.ProfileVisibility),
		&profile.Location, &profile.BudgetMin, &profile.BudgetMax, &profile.MoveInDate, &profile.HousingType,
		&profile.Smoking, &profile.Pets, &profile.CleanlinessLevel, &profile.SocialLevel,
		&profile.WorkSchedule, &profile.SleepSchedule, pq.Array(&profile.Hobbies),
		&profile.PrefGender, &profile.PrefAgeMin, &profile.PrefAgeMax,
		pq.Array(&profile.DesiredTraits), pq.Array(&profile.DesiredAmenities), &importance,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(importance) > 0 {
		if err := json.Unmarshal(importance, &profile.Importance); err != nil {
			return nil, fmt.Errorf("decode importance: %w", err)
		}
	}
	return &profile, nil
}

// nullableArray sends NULL for a nil slice so COALESCE keeps the stored set,
// and '{}' for an empty one so the set is cleared.
func nullableArray(values []string) interface{} {
	if values == nil {
		return nil
	}
	return pq.Array(values)
}

func encodeImportance(importance domain.Importance) (interface{}, error) {
	if importance == nil {
		return nil, nil
	}
	b, err := json.Marshal(importance)
	if err != nil {
		return nil, err
	}
	// jsonb takes text; a []byte argument would be sent as bytea.
	return string(b), nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
