package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func validProfile() *Profile {
	return &Profile{UserID: "u1", Location: "Austin, Texas", BudgetMin: 800, BudgetMax: 1200}
}

func TestCheckInvariants(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Profile)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Profile) {}},
		{name: "equal budget bounds", mutate: func(p *Profile) { p.BudgetMin = 1200 }},
		{name: "missing user", mutate: func(p *Profile) { p.UserID = "" }, wantErr: true},
		{name: "missing location", mutate: func(p *Profile) { p.Location = "" }, wantErr: true},
		{name: "negative budget", mutate: func(p *Profile) { p.BudgetMin = -1 }, wantErr: true},
		{name: "inverted budget", mutate: func(p *Profile) { p.BudgetMin = 1300 }, wantErr: true},
		{name: "zero age", mutate: func(p *Profile) { p.Age = ptr(0) }, wantErr: true},
		{name: "inverted preferred ages", mutate: func(p *Profile) { p.PrefAgeMin, p.PrefAgeMax = ptr(40), ptr(30) }, wantErr: true},
		{name: "duplicate visibility", mutate: func(p *Profile) { p.ProfileVisibility = []string{"email", "email"} }, wantErr: true},
		{name: "unknown importance", mutate: func(p *Profile) { p.Importance = Importance{CategoryBudget: "critical"} }, wantErr: true},
		{name: "known importance", mutate: func(p *Profile) { p.Importance = Importance{CategoryBudget: ImportanceMustHave} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(p)
			err := p.CheckInvariants()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	var nilProfile *Profile
	assert.Error(t, nilProfile.CheckInvariants())
}

func TestPublicView(t *testing.T) {
	p := validProfile()
	p.Email = ptr("dana@example.com")
	p.Phone = ptr("+15550100")
	p.Age = ptr(27)
	p.Gender = ptr("female")
	p.ProfileVisibility = []string{VisibleEmail, VisibleAge}

	view := p.PublicView()

	require.NotNil(t, view.Email)
	require.NotNil(t, view.Age)
	assert.Nil(t, view.Phone)
	assert.Nil(t, view.Gender)
	// the stored profile is left untouched
	assert.NotNil(t, p.Phone)
	assert.NotNil(t, p.Gender)
}

func TestDerivedTags(t *testing.T) {
	p := validProfile()
	assert.Empty(t, p.LifestyleTags())
	assert.Empty(t, p.ScheduleTags())
	assert.Nil(t, p.CleanlinessTags())

	p.Smoking = ptr(false)
	p.Pets = ptr(true)
	p.SocialLevel = ptr("quiet")
	p.WorkSchedule = ptr("remote")
	p.SleepSchedule = ptr("early")
	p.CleanlinessLevel = ptr("tidy")
	p.Hobbies = []string{"climbing"}

	assert.Equal(t, []string{"non_smoking", "pets", "social:quiet"}, p.LifestyleTags())
	assert.Equal(t, []string{"work:remote", "sleep:early"}, p.ScheduleTags())
	assert.Equal(t, []string{"tidy"}, p.CleanlinessTags())

	c := p.AsRoommateCandidate()
	assert.Equal(t, "u1", c.CandidateID())
	assert.Equal(t, KindRoommate, c.Kind())
	assert.Equal(t, []string{"climbing"}, c.Hobbies)

	// the candidate owns its slices
	c.Hobbies[0] = "chess"
	assert.Equal(t, "climbing", p.Hobbies[0])
}

func TestRoleIsValid(t *testing.T) {
	for _, r := range []Role{RoleSeeker, RoleLandlord, RoleAdmin} {
		assert.True(t, r.IsValid(), r)
	}
	assert.False(t, Role("guest").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestCandidateKindCategories(t *testing.T) {
	assert.Len(t, KindRoommate.Categories(), 6)
	assert.Len(t, KindProperty.Categories(), 4)
}
