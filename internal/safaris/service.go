package safaris

import (
	"context"
	"fmt"

	"lagoona/internal/shared/utils/dates"
	"lagoona/pkg/logger"

	"github.com/google/uuid"
)

// EnquiryNotifier publishes enquiry lifecycle events. Implemented by the
// notifications package; declared here to avoid an import cycle.
type EnquiryNotifier interface {
	PublishEnquiryReceived(ctx context.Context, enquiry *Enquiry, tour *Tour) error
}

type Service interface {
	ListTours(ctx context.Context) ([]Tour, error)
	GetTour(ctx context.Context, slug string) (*Tour, error)
	CreateTour(ctx context.Context, req CreateTourRequest) (*Tour, error)
	UpdateTour(ctx context.Context, id uuid.UUID, req UpdateTourRequest) (*Tour, error)
	DeleteTour(ctx context.Context, id uuid.UUID) error

	CreateEnquiry(ctx context.Context, req CreateEnquiryRequest) (*Enquiry, error)
	GetEnquiry(ctx context.Context, id uuid.UUID) (*Enquiry, error)
	UpdateEnquiryStatus(ctx context.Context, id uuid.UUID, status string) error
	ListEnquiries(ctx context.Context, status string, page, limit int) ([]Enquiry, int64, error)
}

type service struct {
	repo     Repository
	notifier EnquiryNotifier
	log      *logger.Logger
}

func NewService(repo Repository, notifier EnquiryNotifier) Service {
	return &service{
		repo:     repo,
		notifier: notifier,
		log:      logger.GetDefault(),
	}
}

func (s *service) ListTours(ctx context.Context) ([]Tour, error) {
	return s.repo.ListActiveTours()
}

func (s *service) GetTour(ctx context.Context, slug string) (*Tour, error) {
	return s.repo.GetTourBySlug(slug)
}

func (s *service) CreateTour(ctx context.Context, req CreateTourRequest) (*Tour, error) {
	tour := &Tour{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		DurationHrs: req.DurationHrs,
		Active:      true,
	}
	if tour.DurationHrs == 0 {
		tour.DurationHrs = 3
	}
	if err := s.repo.CreateTour(tour); err != nil {
		return nil, err
	}
	return tour, nil
}

func (s *service) UpdateTour(ctx context.Context, id uuid.UUID, req UpdateTourRequest) (*Tour, error) {
	tour, err := s.repo.GetTourByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tour.Name = *req.Name
	}
	if req.Description != nil {
		tour.Description = *req.Description
	}
	if req.Price != nil {
		tour.Price = *req.Price
	}
	if req.DurationHrs != nil {
		tour.DurationHrs = *req.DurationHrs
	}
	if req.Active != nil {
		tour.Active = *req.Active
	}

	if err := s.repo.UpdateTour(tour); err != nil {
		return nil, err
	}
	return tour, nil
}

func (s *service) DeleteTour(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTour(id)
}

func (s *service) CreateEnquiry(ctx context.Context, req CreateEnquiryRequest) (*Enquiry, error) {
	tour, err := s.repo.GetTourBySlug(req.TourSlug)
	if err != nil {
		return nil, err
	}

	preferredOn, err := dates.Parse(req.PreferredOn)
	if err != nil {
		return nil, fmt.Errorf("invalid preferred date: %w", err)
	}

	enquiry := &Enquiry{
		TourID:      tour.ID,
		BookingCode: req.BookingCode,
		GuestName:   req.GuestName,
		GuestEmail:  req.GuestEmail,
		GuestPhone:  req.GuestPhone,
		PartySize:   req.PartySize,
		PreferredOn: preferredOn,
		Message:     req.Message,
		Status:      EnquiryStatusNew,
	}
	if err := s.repo.CreateEnquiry(enquiry); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.PublishEnquiryReceived(ctx, enquiry, tour); err != nil {
			s.log.ErrorWithContext(ctx, "failed to publish enquiry notification", err, map[string]interface{}{
				"enquiry_id": enquiry.ID.String(),
			})
		}
	}

	return enquiry, nil
}

func (s *service) GetEnquiry(ctx context.Context, id uuid.UUID) (*Enquiry, error) {
	return s.repo.GetEnquiry(id)
}

func (s *service) UpdateEnquiryStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !IsValidEnquiryStatus(status) {
		return fmt.Errorf("invalid enquiry status %q", status)
	}
	return s.repo.UpdateEnquiryStatus(id, status)
}

func (s *service) ListEnquiries(ctx context.Context, status string, page, limit int) ([]Enquiry, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.ListEnquiries(status, limit, (page-1)*limit)
}
