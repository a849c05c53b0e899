package villas

import (
	"context"
	"time"

	"lagoona/internal/shared/utils/dates"
	"lagoona/pkg/cache"
	"lagoona/pkg/logger"

	"github.com/google/uuid"
)

const catalogCacheKey = "villas:catalog"

type Service interface {
	ListVillas(ctx context.Context) ([]VillaResponse, error)
	GetVilla(ctx context.Context, slug string) (*VillaResponse, error)
	CreateVilla(ctx context.Context, req CreateVillaRequest) (*VillaResponse, error)
	UpdateVilla(ctx context.Context, id uuid.UUID, req UpdateVillaRequest) (*VillaResponse, error)
	DeleteVilla(ctx context.Context, id uuid.UUID) error

	// PriceForDate resolves one villa-night through overrides and rules
	PriceForDate(ctx context.Context, slug string, night time.Time) (int64, error)
	// QuoteStay resolves every night of [checkIn, checkOut)
	QuoteStay(ctx context.Context, slug string, checkIn, checkOut time.Time) ([]NightPrice, error)

	CreateRule(ctx context.Context, req CreateRuleRequest) (*PricingRule, error)
	UpdateRule(ctx context.Context, id uuid.UUID, req UpdateRuleRequest) (*PricingRule, error)
	DeleteRule(ctx context.Context, id uuid.UUID) error
	ListRules(ctx context.Context) ([]PricingRule, error)

	CreateOverride(ctx context.Context, req CreateOverrideRequest) (*DateOverride, error)
	DeleteOverride(ctx context.Context, id uuid.UUID) error
	ListOverrides(ctx context.Context, villaSlug string) ([]DateOverride, error)
}

type service struct {
	repo     Repository
	cache    cache.Service
	cacheTTL time.Duration
	log      *logger.Logger
}

func NewService(repo Repository, cacheService cache.Service, cacheTTL time.Duration) Service {
	return &service{
		repo:     repo,
		cache:    cacheService,
		cacheTTL: cacheTTL,
		log:      logger.GetDefault(),
	}
}

func (s *service) ListVillas(ctx context.Context) ([]VillaResponse, error) {
	var cached []VillaResponse
	err := s.cache.GetOrSet(ctx, catalogCacheKey, &cached, s.cacheTTL, func() (interface{}, error) {
		list, err := s.repo.ListActive()
		if err != nil {
			return nil, err
		}
		responses := make([]VillaResponse, 0, len(list))
		for i := range list {
			responses = append(responses, list[i].ToResponse())
		}
		return responses, nil
	})
	if err != nil {
		return nil, err
	}
	return cached, nil
}

func (s *service) GetVilla(ctx context.Context, slug string) (*VillaResponse, error) {
	villa, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	resp := villa.ToResponse()
	return &resp, nil
}

func (s *service) CreateVilla(ctx context.Context, req CreateVillaRequest) (*VillaResponse, error) {
	villa := &Villa{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		MaxGuests:   req.MaxGuests,
		TotalUnits:  req.TotalUnits,
		Active:      true,
		Amenities:   req.Amenities,
		Images:      req.Images,
	}
	if err := s.repo.Create(villa); err != nil {
		return nil, err
	}
	s.invalidateCatalog(ctx)

	resp := villa.ToResponse()
	return &resp, nil
}

func (s *service) UpdateVilla(ctx context.Context, id uuid.UUID, req UpdateVillaRequest) (*VillaResponse, error) {
	villa, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		villa.Name = *req.Name
	}
	if req.Description != nil {
		villa.Description = *req.Description
	}
	if req.BasePrice != nil {
		villa.BasePrice = *req.BasePrice
	}
	if req.MaxGuests != nil {
		villa.MaxGuests = *req.MaxGuests
	}
	if req.TotalUnits != nil {
		villa.TotalUnits = *req.TotalUnits
	}
	if req.Active != nil {
		villa.Active = *req.Active
	}
	if req.Amenities != nil {
		villa.Amenities = req.Amenities
	}
	if req.Images != nil {
		villa.Images = req.Images
	}

	if err := s.repo.Update(villa); err != nil {
		return nil, err
	}
	s.invalidateCatalog(ctx)

	resp := villa.ToResponse()
	return &resp, nil
}

func (s *service) DeleteVilla(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *service) PriceForDate(ctx context.Context, slug string, night time.Time) (int64, error) {
	prices, err := s.QuoteStay(ctx, slug, night, night.AddDate(0, 0, 1))
	if err != nil {
		return 0, err
	}
	return prices[0].Price, nil
}

func (s *service) QuoteStay(ctx context.Context, slug string, checkIn, checkOut time.Time) ([]NightPrice, error) {
	villa, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	rules, err := s.repo.ListRulesForStay(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	overrides, err := s.repo.OverridesForStay(villa.ID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	var nights []NightPrice
	dates.EachNight(checkIn, checkOut, func(night time.Time) {
		var override *int64
		if price, ok := overrides[dates.Format(night)]; ok {
			override = &price
		}
		nights = append(nights, NightPrice{
			Date:  dates.Format(night),
			Price: ResolveNightlyPrice(villa.BasePrice, slug, night, rules, override),
		})
	})
	return nights, nil
}

func (s *service) CreateRule(ctx context.Context, req CreateRuleRequest) (*PricingRule, error) {
	if req.VillaScope != ScopeAll {
		if _, err := s.repo.GetBySlug(req.VillaScope); err != nil {
			return nil, err
		}
	}

	startDate, err := dates.Parse(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := dates.Parse(req.EndDate)
	if err != nil {
		return nil, err
	}

	rule := &PricingRule{
		Name:       req.Name,
		VillaScope: req.VillaScope,
		Modifier:   req.Modifier,
		StartDate:  startDate,
		EndDate:    endDate,
		Active:     true,
	}
	if err := s.repo.CreateRule(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *service) UpdateRule(ctx context.Context, id uuid.UUID, req UpdateRuleRequest) (*PricingRule, error) {
	rule, err := s.repo.GetRule(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		rule.Name = *req.Name
	}
	if req.Modifier != nil {
		rule.Modifier = *req.Modifier
	}
	if req.StartDate != nil {
		startDate, err := dates.Parse(*req.StartDate)
		if err != nil {
			return nil, err
		}
		rule.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := dates.Parse(*req.EndDate)
		if err != nil {
			return nil, err
		}
		rule.EndDate = endDate
	}
	if req.Active != nil {
		rule.Active = *req.Active
	}

	if err := s.repo.UpdateRule(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *service) DeleteRule(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteRule(id)
}

func (s *service) ListRules(ctx context.Context) ([]PricingRule, error) {
	return s.repo.ListRules()
}

func (s *service) CreateOverride(ctx context.Context, req CreateOverrideRequest) (*DateOverride, error) {
	villa, err := s.repo.GetBySlug(req.VillaSlug)
	if err != nil {
		return nil, err
	}

	date, err := dates.Parse(req.Date)
	if err != nil {
		return nil, err
	}

	override := &DateOverride{
		VillaID: villa.ID,
		Date:    date,
		Price:   req.Price,
		Reason:  req.Reason,
	}
	if err := s.repo.CreateOverride(override); err != nil {
		return nil, err
	}
	return override, nil
}

func (s *service) DeleteOverride(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteOverride(id)
}

func (s *service) ListOverrides(ctx context.Context, villaSlug string) ([]DateOverride, error) {
	villa, err := s.repo.GetBySlug(villaSlug)
	if err != nil {
		return nil, err
	}
	return s.repo.ListOverrides(villa.ID)
}

func (s *service) invalidateCatalog(ctx context.Context) {
	if err := s.cache.Delete(ctx, catalogCacheKey); err != nil {
		s.log.ErrorWithContext(ctx, "failed to invalidate villa catalog cache", err, nil)
	}
}
