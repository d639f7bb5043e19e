package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/campista/internal/db"
	"github.com/vbonduro/campista/internal/domain"
)

const (
	userOne = "11111111-1111-1111-1111-111111111111"
	userTwo = "22222222-2222-2222-2222-222222222222"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	for i, id := range []string{userOne, userTwo} {
		_, err := d.Exec(`INSERT INTO users (id, email, password_hash) VALUES (?, ?, 'x')`,
			id, []string{"one@example.com", "two@example.com"}[i])
		require.NoError(t, err)
	}
	return d
}

func strPtr(s string) *string     { return &s }
func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }

func TestCampsiteStoreCreate(t *testing.T) {
	s := NewCampsiteStore(openTestDB(t))
	ctx := context.Background()

	campsite, err := s.Create(ctx, userOne, domain.NewCampsite{
		Name:        "Ridge Camp",
		DateVisited: strPtr("2024-05-01"),
		Rating:      intPtr(4),
		Lat:         floatPtr(47.6),
		Lng:         floatPtr(-122.3),
	})
	require.NoError(t, err)
	assert.NotZero(t, campsite.ID)
	assert.Equal(t, userOne, campsite.UserID)
	assert.Equal(t, "Ridge Camp", campsite.Name)
	assert.Equal(t, "2024-05-01", *campsite.DateVisited)
	assert.Equal(t, 4, *campsite.Rating)
	assert.Nil(t, campsite.Description)
	assert.False(t, campsite.CreatedAt.IsZero())
}

func TestCampsiteStoreCreateRequiresName(t *testing.T) {
	s := NewCampsiteStore(openTestDB(t))

	_, err := s.Create(context.Background(), userOne, domain.NewCampsite{Name: "   "})
	assert.True(t, domain.IsValidation(err))
}

func TestCampsiteStoreCreateRejectsBadRating(t *testing.T) {
	s := NewCampsiteStore(openTestDB(t))

	_, err := s.Create(context.Background(), userOne, domain.NewCampsite{Name: "X", Rating: intPtr(6)})
	assert.True(t, domain.IsValidation(err))
}

func TestCampsiteStoreGetByIDIsOwnerScoped(t *testing.T) {
	s := NewCampsiteStore(openTestDB(t))
	ctx := context.Background()

	created, err := s.Create(ctx, userOne, domain.NewCampsite{Name: "Ridge Camp"})
	require.NoError(t, err)

	got, err := s.GetByID(ctx, userOne, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)

	// Another user sees nothing, same as a nonexistent id.
	foreign, err := s.GetByID(ctx, userTwo, created.ID)
	require.NoError(t, err)
	assert.Nil(t, foreign)

	missing, err := s.GetByID(ctx, userOne, created.ID+999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCampsiteStoreListOrdersByDateVisitedDescNullsLast(t *testing.T) {
	s := NewCampsiteStore(openTestDB(t))
	ctx := context.Background()

	_, err := s.Create(ctx, userOne, domain.NewCampsite{Name: "Old", DateVisited: strPtr("2023-07-10")})
	require.NoError(t, err)
	_, err = s.Create(ctx, userOne, domain.NewCampsite{Name: "Undated"})
	require.NoError(t, err)
	_, err = s.Create(ctx, userOne, domain.NewCampsite{Name: "New", DateVisited: strPtr("2024-05-01")})
	require.NoError(t, err)

	campsites, err := s.List(ctx, userOne, domain.CampsiteFilter{})
	require.NoError(t, err)
	require.Len(t, campsites, 3)
	assert.Equal(t, "New", campsites[0].Name)
	assert.Equal(t, "Old", campsites[1].Name)
	assert.Equal(t, "Undated", campsites[2].Name)
}

func TestCampsiteStoreListFilters(t *testing.T) {
	s := NewCampsiteStore(openTestDB(t))
	ctx := context.Background()

	_, err := s.Create(ctx, userOne, domain.NewCampsite{
		Name: "A", Rating: intPtr(5), State: strPtr("WA"), DateVisited: strPtr("2024-05-01")})
	require.NoError(t, err)
	_, err = s.Create(ctx, userOne, domain.NewCampsite{
		Name: "B", Rating: intPtr(2), State: strPtr("OR"), DateVisited: strPtr("2023-01-01")})
	require.NoError(t, err)

	byRating, err := s.List(ctx, userOne, domain.CampsiteFilter{MinRating: 4})
	require.NoError(t, err)
	require.Len(t, byRating, 1)
	assert.Equal(t, "A", byRating[0].Name)

	byState, err := s.List(ctx, userOne, domain.CampsiteFilter{State: "OR"})
	require.NoError(t, err)
	require.Len(t, byState, 1)
	assert.Equal(t, "B", byState[0].Name)

	byDate, err := s.List(ctx, userOne, domain.CampsiteFilter{VisitedAfter: "2024-01-01"})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "A", byDate[0].Name)
}

func TestCampsiteStoreListIsPerOwner(t *testing.T) {
	s := NewCampsiteStore(openTestDB(t))
	ctx := context.Background()

	_, err := s.Create(ctx, userOne, domain.NewCampsite{Name: "Ridge Camp", DateVisited: strPtr("2024-05-01")})
	require.NoError(t, err)

	mine, err := s.List(ctx, userOne, domain.CampsiteFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Ridge Camp", mine[0].Name)

	theirs, err := s.List(ctx, userTwo, domain.CampsiteFilter{})
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestCampsiteStoreUpdatePartialFields(t *testing.T) {
	s := NewCampsiteStore(openTestDB(t))
	ctx := context.Background()

	created, err := s.Create(ctx, userOne, domain.NewCampsite{
		Name:        "Ridge Camp",
		Description: strPtr("pines"),
		Rating:      intPtr(4),
		City:        strPtr("Leavenworth"),
	})
	require.NoError(t, err)

	// Only notes is touched; everything else must stay put.
	err = s.Update(ctx, userOne, created.ID, domain.CampsitePatch{
		Notes: domain.Set("bring water"),
	})
	require.NoError(t, err)

	got, err := s.GetByID(ctx, userOne, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ridge Camp", got.Name)
	assert.Equal(t, "pines", *got.Description)
	assert.Equal(t, 4, *got.Rating)
	assert.Equal(t, "Leavenworth", *got.City)
	assert.Equal(t, "bring water", *got.Notes)
}

func TestCampsiteStoreUpdateClearsToNull(t *testing.T) {
	s := NewCampsiteStore(openTestDB(t))
	ctx := context.Background()

	created, err := s.Create(ctx, userOne, domain.NewCampsite{
		Name: "Ridge Camp", Rating: intPtr(4), City: strPtr("Leavenworth")})
	require.NoError(t, err)

	err = s.Update(ctx, userOne, created.ID, domain.CampsitePatch{
		Rating: domain.Clear[int](),
	})
	require.NoError(t, err)

	got, err := s.GetByID(ctx, userOne, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Rating)
	// Untouched field survives.
	assert.Equal(t, "Leavenworth", *got.City)
}

func TestCampsiteStoreUpdateNameCannotBecomeEmpty(t *testing.T) {
	s := NewCampsiteStore(openTestDB(t))
	ctx := context.Background()

	created, err := s.Create(ctx, userOne, domain.NewCampsite{Name: "Ridge Camp"})
	require.NoError(t, err)

	err = s.Update(ctx, userOne, created.ID, domain.CampsitePatch{Name: domain.Set("   ")})
	assert.True(t, domain.IsValidation(err))

	err = s.Update(ctx, userOne, created.ID, domain.CampsitePatch{Name: domain.Clear[string]()})
	assert.True(t, domain.IsValidation(err))

	got, err := s.GetByID(ctx, userOne, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ridge Camp", got.Name)
}

func TestCampsiteStoreUpdateEmptyPatchIsNoop(t *testing.T) {
	s := NewCampsiteStore(openTestDB(t))
	ctx := context.Background()

	created, err := s.Create(ctx, userOne, domain.NewCampsite{Name: "Ridge Camp"})
	require.NoError(t, err)

	assert.NoError(t, s.Update(ctx, userOne, created.ID, domain.CampsitePatch{}))
}

func TestCampsiteStoreUpdateCollapsesForeignAndMissing(t *testing.T) {
	s := NewCampsiteStore(openTestDB(t))
	ctx := context.Background()

	created, err := s.Create(ctx, userOne, domain.NewCampsite{Name: "Ridge Camp"})
	require.NoError(t, err)

	patch := domain.CampsitePatch{Notes: domain.Set("x")}

	foreignErr := s.Update(ctx, userTwo, created.ID, patch)
	missingErr := s.Update(ctx, userOne, created.ID+999, patch)

	// A foreign-owned id and a nonexistent id are indistinguishable.
	assert.True(t, errors.Is(foreignErr, domain.ErrNotFound))
	assert.True(t, errors.Is(missingErr, domain.ErrNotFound))

	got, err := s.GetByID(ctx, userOne, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Notes)
}

func TestCampsiteStoreDelete(t *testing.T) {
	s := NewCampsiteStore(openTestDB(t))
	ctx := context.Background()

	created, err := s.Create(ctx, userOne, domain.NewCampsite{Name: "Temp"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, userOne, created.ID))

	got, err := s.GetByID(ctx, userOne, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCampsiteStoreDeleteCollapsesForeignAndMissing(t *testing.T) {
	s := NewCampsiteStore(openTestDB(t))
	ctx := context.Background()

	created, err := s.Create(ctx, userOne, domain.NewCampsite{Name: "Ridge Camp"})
	require.NoError(t, err)

	assert.True(t, errors.Is(s.Delete(ctx, userTwo, created.ID), domain.ErrNotFound))
	assert.True(t, errors.Is(s.Delete(ctx, userOne, created.ID+999), domain.ErrNotFound))

	// The record is untouched for its owner.
	got, err := s.GetByID(ctx, userOne, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
}
