package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gdugdh24/roommate-match-backend/internal/domain"
	"github.com/gdugdh24/roommate-match-backend/internal/infrastructure/logger"
	"github.com/gdugdh24/roommate-match-backend/internal/repository"
)

const dateLayout = "2006-01-02"

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	locker      repository.ProfileLocker
	validate    *validator.Validate
	log         *logger.Logger
}

// NewProfileUseCase wires the profile store. locker may be nil, in which case
// concurrent saves for one user race at the store and the last write wins.
func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	locker repository.ProfileLocker,
	log *logger.Logger,
) *ProfileUseCase {
	v := validator.New()
	// Same tags gin checks on bind, so non-HTTP callers get identical rules.
	v.SetTagName("binding")
	return &ProfileUseCase{
		profileRepo: profileRepo,
		locker:      locker,
		validate:    v,
		log:         log,
	}
}

// SaveProfileRequest is the profile form. Optional fields left nil keep
// their stored value on update; required fields are always written.
type SaveProfileRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=1,max=100"`
	Age    *int    `json:"age" binding:"omitempty,min=1,max=150"`
	Gender *string `json:"gender" binding:"omitempty,max=32"`

	Email             *string  `json:"email" binding:"omitempty,email"`
	Phone             *string  `json:"phone" binding:"omitempty,min=5,max=32"`
	ProfileVisibility []string `json:"profile_visibility" binding:"omitempty,unique,dive,oneof=email phone age gender"`

	Location    string  `json:"location" binding:"required,max=200"`
	BudgetMin   *int    `json:"budget_min" binding:"required,min=0"`
	BudgetMax   *int    `json:"budget_max" binding:"required,min=0"`
	MoveInDate  *string `json:"move_in_date" binding:"omitempty,datetime=2006-01-02"`
	HousingType *string `json:"housing_type" binding:"omitempty,max=50"`

	Smoking          *bool    `json:"smoking"`
	Pets             *bool    `json:"pets"`
	CleanlinessLevel *string  `json:"cleanliness_level" binding:"omitempty,max=50"`
	SocialLevel      *string  `json:"social_level" binding:"omitempty,max=50"`
	WorkSchedule     *string  `json:"work_schedule" binding:"omitempty,max=50"`
	SleepSchedule    *string  `json:"sleep_schedule" binding:"omitempty,max=50"`
	Hobbies          []string `json:"hobbies" binding:"omitempty,max=30,dive,min=1,max=50"`

	PrefGender       *string  `json:"pref_gender" binding:"omitempty,max=32"`
	PrefAgeMin       *int     `json:"pref_age_min" binding:"omitempty,min=1,max=150"`
	PrefAgeMax       *int     `json:"pref_age_max" binding:"omitempty,min=1,max=150"`
	DesiredTraits    []string `json:"desired_traits" binding:"omitempty,max=30,dive,min=1,max=50"`
	DesiredAmenities []string `json:"desired_amenities" binding:"omitempty,max=30,dive,min=1,max=50"`

	Importance map[domain.Category]domain.ImportanceLevel `json:"importance" binding:"omitempty,dive,keys,oneof=budget location lifestyle schedule interests cleanliness amenities,endkeys,oneof=not_important important must_have"`
}

// FetchProfile returns the stored profile, or domain.ErrProfileNotFound when
// the user has never saved one.
func (uc *ProfileUseCase) FetchProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidationFailed)
	}
	return uc.profileRepo.GetByUserID(ctx, userID)
}

// GetPublicProfile returns another user's profile with privacy-gated fields hidden.
func (uc *ProfileUseCase) GetPublicProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	p, err := uc.FetchProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return p.PublicView(), nil
}

// SaveProfile upserts the user's profile in one write: the first save inserts,
// later saves update the same row in place, keeping its id and creation time.
func (uc *ProfileUseCase) SaveProfile(ctx context.Context, userID string, req *SaveProfileRequest) (*domain.Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidationFailed)
	}
	if req == nil {
		return nil, fmt.Errorf("%w: empty payload", domain.ErrValidationFailed)
	}
	if err := uc.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidationFailed, err)
	}

	// Absent fields keep their stored value, so a lone bound could be merged
	// with the other stored bound into an inverted range.
	if (req.PrefAgeMin == nil) != (req.PrefAgeMax == nil) {
		return nil, fmt.Errorf("%w: pref_age_min and pref_age_max must be sent together", domain.ErrValidationFailed)
	}

	profile, err := toProfile(userID, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidationFailed, err)
	}
	if err := profile.CheckInvariants(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidationFailed, err)
	}

	if uc.locker != nil {
		unlock, err := uc.locker.Lock(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				uc.log.Warn("failed to release profile lock", "user_id", userID, "error", err)
			}
		}()
	}

	stored, err := uc.profileRepo.Upsert(ctx, profile)
	if err != nil {
		return nil, err
	}
	if err := verifyPersisted(profile, stored); err != nil {
		uc.log.Error("profile write not fully persisted", "user_id", userID, "error", err)
		return nil, err
	}

	uc.log.Info("profile saved",
		"user_id", userID,
		"profile_id", stored.ID.String(),
		"created", stored.CreatedAt.Equal(stored.UpdatedAt),
	)
	return stored, nil
}

func toProfile(userID string, req *SaveProfileRequest) (*domain.Profile, error) {
	p := &domain.Profile{
		UserID:            userID,
		Name:              req.Name,
		Age:               req.Age,
		Gender:            req.Gender,
		Email:             req.Email,
		Phone:             req.Phone,
		ProfileVisibility: req.ProfileVisibility,
		Location:          strings.TrimSpace(req.Location),
		BudgetMin:         *req.BudgetMin,
		BudgetMax:         *req.BudgetMax,
		HousingType:       req.HousingType,
		Smoking:           req.Smoking,
		Pets:              req.Pets,
		CleanlinessLevel:  req.CleanlinessLevel,
		SocialLevel:       req.SocialLevel,
		WorkSchedule:      req.WorkSchedule,
		SleepSchedule:     req.SleepSchedule,
		Hobbies:           distinct(req.Hobbies),
		PrefGender:        req.PrefGender,
		PrefAgeMin:        req.PrefAgeMin,
		PrefAgeMax:        req.PrefAgeMax,
		DesiredTraits:     distinct(req.DesiredTraits),
		DesiredAmenities:  distinct(req.DesiredAmenities),
	}
	if req.MoveInDate != nil {
		d, err := time.Parse(dateLayout, *req.MoveInDate)
		if err != nil {
			return nil, fmt.Errorf("move_in_date: %w", err)
		}
		p.MoveInDate = &d
	}
	if req.Importance != nil {
		p.Importance = make(domain.Importance, len(req.Importance))
		for k, v := range req.Importance {
			p.Importance[k] = v
		}
	}
	return p, nil
}

// distinct trims tags and drops repeats, keeping first-seen order.
// A nil input stays nil so "absent" and "cleared" remain distinguishable.
func distinct(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
