package availability

import (
	"context"
	"testing"
	"time"

	"lagoona/internal/villas"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stay struct {
	villaID  uuid.UUID
	checkIn  time.Time
	checkOut time.Time
}

// fakeRepo applies the same half-open predicate as the SQL counter
type fakeRepo struct {
	stays []stay
	err   error
}

func (f *fakeRepo) CountOverlapping(villaID uuid.UUID, checkIn, checkOut time.Time) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var count int64
	for _, s := range f.stays {
		if s.villaID == villaID && IntervalsOverlap(s.checkIn, s.checkOut, checkIn, checkOut) {
			count++
		}
	}
	return count, nil
}

type fakeCatalog struct {
	villas []villas.Villa
}

func (f *fakeCatalog) GetBySlug(slug string) (*villas.Villa, error) {
	for i := range f.villas {
		if f.villas[i].Slug == slug {
			return &f.villas[i], nil
		}
	}
	return nil, villas.ErrVillaNotFound
}

func (f *fakeCatalog) ListActive() ([]villas.Villa, error) {
	return f.villas, nil
}

func date(value string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestIntervalsOverlap(t *testing.T) {
	// Same-day turnover is not an overlap
	assert.False(t, IntervalsOverlap(
		date("2024-06-10"), date("2024-06-12"),
		date("2024-06-12"), date("2024-06-14"),
	))

	// A stay straddling the boundary does overlap
	assert.True(t, IntervalsOverlap(
		date("2024-06-10"), date("2024-06-12"),
		date("2024-06-11"), date("2024-06-13"),
	))

	// Containment overlaps
	assert.True(t, IntervalsOverlap(
		date("2024-06-01"), date("2024-06-30"),
		date("2024-06-10"), date("2024-06-12"),
	))

	// Disjoint ranges do not
	assert.False(t, IntervalsOverlap(
		date("2024-06-01"), date("2024-06-05"),
		date("2024-06-10"), date("2024-06-12"),
	))
}

func TestCheckAvailability_SubtractsOverlaps(t *testing.T) {
	villaID := uuid.New()
	catalog := &fakeCatalog{villas: []villas.Villa{
		{ID: villaID, Slug: "lagoon-villa", Name: "Lagoon Villa", TotalUnits: 3, Active: true},
	}}
	repo := &fakeRepo{stays: []stay{
		{villaID, date("2025-01-01"), date("2025-01-03")},
		{villaID, date("2025-01-02"), date("2025-01-05")},
	}}

	svc := NewService(repo, catalog)
	result, err := svc.CheckAvailability(context.Background(), "lagoon-villa", date("2025-01-02"), date("2025-01-04"))
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalUnits)
	assert.Equal(t, 2, result.BookedUnits)
	assert.Equal(t, 1, result.AvailableUnits)
	assert.True(t, result.Available)
}

func TestCheckAvailability_NeverNegative(t *testing.T) {
	villaID := uuid.New()
	catalog := &fakeCatalog{villas: []villas.Villa{
		{ID: villaID, Slug: "glass-cottage", Name: "Glass Cottage", TotalUnits: 1, Active: true},
	}}
	repo := &fakeRepo{stays: []stay{
		{villaID, date("2025-01-01"), date("2025-01-03")},
		{villaID, date("2025-01-01"), date("2025-01-03")},
	}}

	svc := NewService(repo, catalog)
	result, err := svc.CheckAvailability(context.Background(), "glass-cottage", date("2025-01-01"), date("2025-01-03"))
	require.NoError(t, err)

	assert.Equal(t, 0, result.AvailableUnits)
	assert.False(t, result.Available)
}

func TestCheckAvailability_Idempotent(t *testing.T) {
	villaID := uuid.New()
	catalog := &fakeCatalog{villas: []villas.Villa{
		{ID: villaID, Slug: "glass-cottage", Name: "Glass Cottage", TotalUnits: 1, Active: true},
	}}
	repo := &fakeRepo{}

	svc := NewService(repo, catalog)
	first, err := svc.CheckAvailability(context.Background(), "glass-cottage", date("2025-01-01"), date("2025-01-03"))
	require.NoError(t, err)
	second, err := svc.CheckAvailability(context.Background(), "glass-cottage", date("2025-01-01"), date("2025-01-03"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, first.AvailableUnits)
	assert.True(t, first.Available)
}

func TestCheckAvailability_UnknownVilla(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeCatalog{})
	_, err := svc.CheckAvailability(context.Background(), "no-such-villa", date("2025-01-01"), date("2025-01-03"))
	assert.ErrorIs(t, err, villas.ErrVillaNotFound)
}

func TestListAvailableVillas_OmitsFullyBooked(t *testing.T) {
	bookedID := uuid.New()
	freeID := uuid.New()
	catalog := &fakeCatalog{villas: []villas.Villa{
		{ID: bookedID, Slug: "glass-cottage", Name: "Glass Cottage", TotalUnits: 1, Active: true},
		{ID: freeID, Slug: "lagoon-villa", Name: "Lagoon Villa", TotalUnits: 4, Active: true},
	}}
	repo := &fakeRepo{stays: []stay{
		{bookedID, date("2025-01-01"), date("2025-01-03")},
	}}

	svc := NewService(repo, catalog)
	results, err := svc.ListAvailableVillas(context.Background(), date("2025-01-02"), date("2025-01-04"))
	require.NoError(t, err)

	// The fully booked glass cottage is left out of the listing
	require.Len(t, results, 1)
	assert.Equal(t, "lagoon-villa", results[0].VillaSlug)
	assert.Equal(t, 4, results[0].AvailableUnits)
	assert.True(t, results[0].Available)
}

func TestListAvailableVillas_EmptyWhenEverythingBooked(t *testing.T) {
	villaID := uuid.New()
	catalog := &fakeCatalog{villas: []villas.Villa{
		{ID: villaID, Slug: "glass-cottage", Name: "Glass Cottage", TotalUnits: 1, Active: true},
	}}
	repo := &fakeRepo{stays: []stay{
		{villaID, date("2025-01-01"), date("2025-01-03")},
	}}

	svc := NewService(repo, catalog)
	results, err := svc.ListAvailableVillas(context.Background(), date("2025-01-01"), date("2025-01-03"))
	require.NoError(t, err)
	assert.Empty(t, results)
}
