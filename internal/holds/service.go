package holds

import (
	"context"
	"strconv"
	"time"

	"lagoona/internal/availability"
	"lagoona/internal/shared/utils/dates"
	"lagoona/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	// CreateHold soft-locks one unit for the range after confirming the
	// villa still has unheld units left
	CreateHold(ctx context.Context, villaSlug string, checkIn, checkOut time.Time) (*Hold, error)
	GetHold(ctx context.Context, holdID string) (*Hold, error)
	ReleaseHold(ctx context.Context, holdID string) error
	// CountActiveHolds reports unexpired holds overlapping the range
	CountActiveHolds(ctx context.Context, villaSlug string, checkIn, checkOut time.Time) (int64, error)
}

type service struct {
	engine       *Engine
	availability availability.Service
	ttl          time.Duration
	log          *logger.Logger
}

func NewService(engine *Engine, availabilityService availability.Service, ttl time.Duration) Service {
	return &service{
		engine:       engine,
		availability: availabilityService,
		ttl:          ttl,
		log:          logger.GetDefault(),
	}
}

func (s *service) CreateHold(ctx context.Context, villaSlug string, checkIn, checkOut time.Time) (*Hold, error) {
	result, err := s.availability.CheckAvailability(ctx, villaSlug, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if !result.Available {
		return nil, ErrHoldConflict
	}

	holdID := uuid.New().String()
	now := time.Now()

	granted, _, err := s.engine.AcquireHold(ctx,
		villaSlug,
		holdID,
		dates.EpochDays(checkIn),
		dates.EpochDays(checkOut),
		int64(result.AvailableUnits),
		now.Unix(),
		int64(s.ttl.Seconds()),
		dates.Format(checkIn),
		dates.Format(checkOut),
	)
	if err != nil {
		return nil, err
	}
	if !granted {
		return nil, ErrHoldConflict
	}

	s.log.LogHoldAcquired(ctx, holdID, villaSlug, dates.Format(checkIn), dates.Format(checkOut))

	return &Hold{
		ID:        holdID,
		VillaSlug: villaSlug,
		CheckIn:   dates.Format(checkIn),
		CheckOut:  dates.Format(checkOut),
		ExpiresAt: now.Add(s.ttl),
	}, nil
}

func (s *service) GetHold(ctx context.Context, holdID string) (*Hold, error) {
	meta, err := s.engine.GetHoldMeta(ctx, holdID)
	if err != nil {
		return nil, err
	}

	expiresUnix, _ := strconv.ParseInt(meta["expires_at"], 10, 64)
	return &Hold{
		ID:        holdID,
		VillaSlug: meta["villa"],
		CheckIn:   meta["check_in"],
		CheckOut:  meta["check_out"],
		ExpiresAt: time.Unix(expiresUnix, 0).UTC(),
	}, nil
}

func (s *service) ReleaseHold(ctx context.Context, holdID string) error {
	meta, err := s.engine.GetHoldMeta(ctx, holdID)
	if err != nil {
		return err
	}

	removed, err := s.engine.ReleaseHold(ctx, meta["villa"], holdID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrHoldNotFound
	}
	return nil
}

func (s *service) CountActiveHolds(ctx context.Context, villaSlug string, checkIn, checkOut time.Time) (int64, error) {
	return s.engine.CountActiveHolds(ctx,
		villaSlug,
		dates.EpochDays(checkIn),
		dates.EpochDays(checkOut),
		time.Now().Unix(),
	)
}
