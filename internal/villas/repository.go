package villas

import (
	"errors"
	"fmt"
	"time"

	"lagoona/internal/shared/utils/dates"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrVillaNotFound    = errors.New("villa not found")
	ErrRuleNotFound     = errors.New("pricing rule not found")
	ErrOverrideNotFound = errors.New("date override not found")
	ErrDuplicateSlug    = errors.New("villa slug already exists")
)

type Repository interface {
	Create(villa *Villa) error
	Update(villa *Villa) error
	Delete(id uuid.UUID) error
	GetByID(id uuid.UUID) (*Villa, error)
	GetBySlug(slug string) (*Villa, error)
	ListActive() ([]Villa, error)
	ListAll() ([]Villa, error)

	CreateRule(rule *PricingRule) error
	UpdateRule(rule *PricingRule) error
	DeleteRule(id uuid.UUID) error
	GetRule(id uuid.UUID) (*PricingRule, error)
	ListRules() ([]PricingRule, error)
	// ListRulesForStay returns active rules whose inclusive range
	// intersects [from, to)
	ListRulesForStay(from, to time.Time) ([]PricingRule, error)

	CreateOverride(override *DateOverride) error
	DeleteOverride(id uuid.UUID) error
	ListOverrides(villaID uuid.UUID) ([]DateOverride, error)
	// OverridesForStay returns the villa's overrides within [from, to)
	// keyed by YYYY-MM-DD
	OverridesForStay(villaID uuid.UUID, from, to time.Time) (map[string]int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(villa *Villa) error {
	if err := r.db.Create(villa).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("failed to create villa: %w", err)
	}
	return nil
}

func (r *repository) Update(villa *Villa) error {
	if err := r.db.Save(villa).Error; err != nil {
		return fmt.Errorf("failed to update villa: %w", err)
	}
	return nil
}

func (r *repository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&Villa{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete villa: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrVillaNotFound
	}
	return nil
}

func (r *repository) GetByID(id uuid.UUID) (*Villa, error) {
	var villa Villa
	if err := r.db.Where("id = ?", id).First(&villa).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVillaNotFound
		}
		return nil, fmt.Errorf("failed to get villa: %w", err)
	}
	return &villa, nil
}

func (r *repository) GetBySlug(slug string) (*Villa, error) {
	var villa Villa
	if err := r.db.Where("slug = ?", slug).First(&villa).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVillaNotFound
		}
		return nil, fmt.Errorf("failed to get villa by slug: %w", err)
	}
	return &villa, nil
}

func (r *repository) ListActive() ([]Villa, error) {
	var list []Villa
	if err := r.db.Where("active = ?", true).Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list villas: %w", err)
	}
	return list, nil
}

func (r *repository) ListAll() ([]Villa, error) {
	var list []Villa
	if err := r.db.Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list villas: %w", err)
	}
	return list, nil
}

func (r *repository) CreateRule(rule *PricingRule) error {
	if err := r.db.Create(rule).Error; err != nil {
		return fmt.Errorf("failed to create pricing rule: %w", err)
	}
	return nil
}

func (r *repository) UpdateRule(rule *PricingRule) error {
	if err := r.db.Save(rule).Error; err != nil {
		return fmt.Errorf("failed to update pricing rule: %w", err)
	}
	return nil
}

func (r *repository) DeleteRule(id uuid.UUID) error {
	result := r.db.Delete(&PricingRule{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete pricing rule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRuleNotFound
	}
	return nil
}

func (r *repository) GetRule(id uuid.UUID) (*PricingRule, error) {
	var rule PricingRule
	if err := r.db.Where("id = ?", id).First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, fmt.Errorf("failed to get pricing rule: %w", err)
	}
	return &rule, nil
}

func (r *repository) ListRules() ([]PricingRule, error) {
	var rules []PricingRule
	if err := r.db.Order("start_date ASC").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to list pricing rules: %w", err)
	}
	return rules, nil
}

func (r *repository) ListRulesForStay(from, to time.Time) ([]PricingRule, error) {
	var rules []PricingRule
	// Inclusive rule range vs half-open stay range
	err := r.db.
		Where("active = ?", true).
		Where("start_date < ? AND end_date >= ?", to, from).
		Find(&rules).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pricing rules for stay: %w", err)
	}
	return rules, nil
}

func (r *repository) CreateOverride(override *DateOverride) error {
	if err := r.db.Create(override).Error; err != nil {
		return fmt.Errorf("failed to create date override: %w", err)
	}
	return nil
}

func (r *repository) DeleteOverride(id uuid.UUID) error {
	result := r.db.Delete(&DateOverride{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete date override: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrOverrideNotFound
	}
	return nil
}

func (r *repository) ListOverrides(villaID uuid.UUID) ([]DateOverride, error) {
	var overrides []DateOverride
	if err := r.db.Where("villa_id = ?", villaID).Order("date ASC").Find(&overrides).Error; err != nil {
		return nil, fmt.Errorf("failed to list date overrides: %w", err)
	}
	return overrides, nil
}

func (r *repository) OverridesForStay(villaID uuid.UUID, from, to time.Time) (map[string]int64, error) {
	var overrides []DateOverride
	err := r.db.
		Where("villa_id = ?", villaID).
		Where("date >= ? AND date < ?", from, to).
		Find(&overrides).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list date overrides for stay: %w", err)
	}

	result := make(map[string]int64, len(overrides))
	for _, o := range overrides {
		result[dates.Format(o.Date)] = o.Price
	}
	return result, nil
}
