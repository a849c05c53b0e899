package safaris

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTourNotFound    = errors.New("safari tour not found")
	ErrEnquiryNotFound = errors.New("safari enquiry not found")
)

type Repository interface {
	CreateTour(tour *Tour) error
	UpdateTour(tour *Tour) error
	DeleteTour(id uuid.UUID) error
	GetTourByID(id uuid.UUID) (*Tour, error)
	GetTourBySlug(slug string) (*Tour, error)
	GetToursBySlugs(slugs []string) ([]Tour, error)
	ListActiveTours() ([]Tour, error)

	CreateEnquiry(enquiry *Enquiry) error
	GetEnquiry(id uuid.UUID) (*Enquiry, error)
	UpdateEnquiryStatus(id uuid.UUID, status string) error
	ListEnquiries(status string, limit, offset int) ([]Enquiry, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTour(tour *Tour) error {
	if err := r.db.Create(tour).Error; err != nil {
		return fmt.Errorf("failed to create safari tour: %w", err)
	}
	return nil
}

func (r *repository) UpdateTour(tour *Tour) error {
	if err := r.db.Save(tour).Error; err != nil {
		return fmt.Errorf("failed to update safari tour: %w", err)
	}
	return nil
}

func (r *repository) DeleteTour(id uuid.UUID) error {
	result := r.db.Delete(&Tour{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete safari tour: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTourNotFound
	}
	return nil
}

func (r *repository) GetTourByID(id uuid.UUID) (*Tour, error) {
	var tour Tour
	if err := r.db.Where("id = ?", id).First(&tour).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, fmt.Errorf("failed to get safari tour: %w", err)
	}
	return &tour, nil
}

func (r *repository) GetTourBySlug(slug string) (*Tour, error) {
	var tour Tour
	if err := r.db.Where("slug = ?", slug).First(&tour).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, fmt.Errorf("failed to get safari tour by slug: %w", err)
	}
	return &tour, nil
}

func (r *repository) GetToursBySlugs(slugs []string) ([]Tour, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	var tours []Tour
	if err := r.db.Where("slug IN ? AND active = ?", slugs, true).Find(&tours).Error; err != nil {
		return nil, fmt.Errorf("failed to get safari tours: %w", err)
	}
	return tours, nil
}

func (r *repository) ListActiveTours() ([]Tour, error) {
	var tours []Tour
	if err := r.db.Where("active = ?", true).Order("name ASC").Find(&tours).Error; err != nil {
		return nil, fmt.Errorf("failed to list safari tours: %w", err)
	}
	return tours, nil
}

func (r *repository) CreateEnquiry(enquiry *Enquiry) error {
	if err := r.db.Create(enquiry).Error; err != nil {
		return fmt.Errorf("failed to create safari enquiry: %w", err)
	}
	return nil
}

func (r *repository) GetEnquiry(id uuid.UUID) (*Enquiry, error) {
	var enquiry Enquiry
	if err := r.db.Preload("Tour").Where("id = ?", id).First(&enquiry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnquiryNotFound
		}
		return nil, fmt.Errorf("failed to get safari enquiry: %w", err)
	}
	return &enquiry, nil
}

func (r *repository) UpdateEnquiryStatus(id uuid.UUID, status string) error {
	result := r.db.Model(&Enquiry{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update safari enquiry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEnquiryNotFound
	}
	return nil
}

func (r *repository) ListEnquiries(status string, limit, offset int) ([]Enquiry, int64, error) {
	query := r.db.Model(&Enquiry{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count safari enquiries: %w", err)
	}

	var enquiries []Enquiry
	err := query.Preload("Tour").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&enquiries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list safari enquiries: %w", err)
	}
	return enquiries, total, nil
}
