package availability

import (
	"context"
	"time"

	"lagoona/internal/shared/utils/dates"
	"lagoona/internal/villas"
)

// VillaCatalog is the slice of the villa repository the resolver needs.
// Declared here so tests can substitute a fake.
type VillaCatalog interface {
	GetBySlug(slug string) (*villas.Villa, error)
	ListActive() ([]villas.Villa, error)
}

// Result is per-villa availability for one requested stay
type Result struct {
	VillaSlug      string `json:"villa_slug"`
	VillaName      string `json:"villa_name"`
	CheckIn        string `json:"check_in"`
	CheckOut       string `json:"check_out"`
	TotalUnits     int    `json:"total_units"`
	BookedUnits    int    `json:"booked_units"`
	AvailableUnits int    `json:"available_units"`
	Available      bool   `json:"available"`
}

type Service interface {
	// CheckAvailability resolves unit availability for one villa
	CheckAvailability(ctx context.Context, villaSlug string, checkIn, checkOut time.Time) (*Result, error)
	// ListAvailableVillas returns the active villas with at least one
	// free unit for the stay, annotated with their unit counts
	ListAvailableVillas(ctx context.Context, checkIn, checkOut time.Time) ([]Result, error)
}

type service struct {
	repo    Repository
	catalog VillaCatalog
}

func NewService(repo Repository, catalog VillaCatalog) Service {
	return &service{repo: repo, catalog: catalog}
}

func (s *service) CheckAvailability(ctx context.Context, villaSlug string, checkIn, checkOut time.Time) (*Result, error) {
	villa, err := s.catalog.GetBySlug(villaSlug)
	if err != nil {
		return nil, err
	}
	return s.resolve(villa, checkIn, checkOut)
}

func (s *service) ListAvailableVillas(ctx context.Context, checkIn, checkOut time.Time) ([]Result, error) {
	catalog, err := s.catalog.ListActive()
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(catalog))
	for i := range catalog {
		result, err := s.resolve(&catalog[i], checkIn, checkOut)
		if err != nil {
			return nil, err
		}
		if result.AvailableUnits > 0 {
			results = append(results, *result)
		}
	}
	return results, nil
}

func (s *service) resolve(villa *villas.Villa, checkIn, checkOut time.Time) (*Result, error) {
	overlap, err := s.repo.CountOverlapping(villa.ID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	available := villa.TotalUnits - int(overlap)
	if available < 0 {
		available = 0
	}

	return &Result{
		VillaSlug:      villa.Slug,
		VillaName:      villa.Name,
		CheckIn:        dates.Format(checkIn),
		CheckOut:       dates.Format(checkOut),
		TotalUnits:     villa.TotalUnits,
		BookedUnits:    int(overlap),
		AvailableUnits: available,
		Available:      available > 0,
	}, nil
}
