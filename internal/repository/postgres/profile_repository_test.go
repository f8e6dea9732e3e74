package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdugdh24/roommate-match-backend/internal/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func profileColumnNames() []string {
	parts := strings.Split(profileColumns, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// storedProfileRow is a row as postgres would return it: arrays in text form,
// jsonb as bytes and unset optional columns as NULL.
func storedProfileRow(id uuid.UUID, userID string, created, updated time.Time) []driver.Value {
	return []driver.Value{
		id.String(), userID, "Dana", int64(27), nil, "dana@example.com", nil, "{email}",
		"Brooklyn, New York", int64(1000), int64(1500), time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), nil,
		false, nil, "tidy", nil, nil, nil, "{Reading,Gaming}",
		nil, nil, nil, nil, "{}", []byte(`{"budget":"must_have"}`),
		created, updated,
	}
}

func TestProfileRepositoryGetByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)

	id := uuid.New()
	created := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(profileColumnNames()).AddRow(storedProfileRow(id, "u1", created, created)...)
	mock.ExpectQuery(`FROM profiles WHERE user_id = \$1`).WithArgs("u1").WillReturnRows(rows)

	p, err := repo.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, id, p.ID)
	assert.Equal(t, "u1", p.UserID)
	require.NotNil(t, p.Name)
	assert.Equal(t, "Dana", *p.Name)
	require.NotNil(t, p.Age)
	assert.Equal(t, 27, *p.Age)
	assert.Nil(t, p.Gender)
	assert.Nil(t, p.Phone)
	assert.Equal(t, []string{"email"}, p.ProfileVisibility)
	assert.Equal(t, 1000, p.BudgetMin)
	assert.Equal(t, 1500, p.BudgetMax)
	require.NotNil(t, p.MoveInDate)
	assert.Equal(t, 2026, p.MoveInDate.Year())
	require.NotNil(t, p.Smoking)
	assert.False(t, *p.Smoking)
	assert.Nil(t, p.Pets)
	assert.Equal(t, []string{"Reading", "Gaming"}, p.Hobbies)
	assert.Nil(t, p.DesiredTraits)
	assert.Equal(t, []string{}, p.DesiredAmenities)
	assert.Equal(t, domain.Importance{domain.CategoryBudget: domain.ImportanceMustHave}, p.Importance)
	assert.Equal(t, created, p.CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepositoryGetByUserIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectQuery(`FROM profiles WHERE user_id = \$1`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(profileColumnNames()))

	_, err := repo.GetByUserID(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepositoryGetByUserIDDriverError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectQuery(`FROM profiles WHERE user_id = \$1`).
		WillReturnError(errors.New("connection reset by peer"))

	_, err := repo.GetByUserID(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestProfileRepositoryUpsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)

	name := "Dana"
	profile := &domain.Profile{
		UserID:     "u1",
		Name:       &name,
		Location:   "Brooklyn, New York",
		BudgetMin:  1000,
		BudgetMax:  1500,
		Hobbies:    nil,
		Importance: domain.Importance{domain.CategoryBudget: domain.ImportanceMustHave},
	}

	args := make([]driver.Value, 26)
	for i := range args {
		args[i] = sqlmock.AnyArg()
	}
	args[1] = "u1"
	args[8] = "Brooklyn, New York"
	args[9] = int64(1000)
	args[10] = int64(1500)
	// absent hobbies go out as NULL so the stored set survives
	args[19] = nil
	args[25] = `{"budget":"must_have"}`

	id := uuid.New()
	created := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	mock.ExpectQuery(`INSERT INTO profiles .* ON CONFLICT \(user_id\) DO UPDATE SET`).
		WithArgs(args...).
		WillReturnRows(sqlmock.NewRows(profileColumnNames()).AddRow(storedProfileRow(id, "u1", created, updated)...))

	stored, err := repo.Upsert(context.Background(), profile)
	require.NoError(t, err)
	assert.Equal(t, id, stored.ID)
	assert.Equal(t, created, stored.CreatedAt)
	assert.Equal(t, updated, stored.UpdatedAt)
	assert.Equal(t, []string{"Reading", "Gaming"}, stored.Hobbies)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepositoryUpsertDriverError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectQuery(`INSERT INTO profiles`).WillReturnError(errors.New("too many connections"))

	_, err := repo.Upsert(context.Background(), &domain.Profile{UserID: "u1", Location: "Austin"})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestNullableArray(t *testing.T) {
	assert.Nil(t, nullableArray(nil))

	v, err := nullableArray([]string{}).(driver.Valuer).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)
}
