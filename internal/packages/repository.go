package packages

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrPackageNotFound = errors.New("package not found")

type Repository interface {
	Create(pkg *Package) error
	Update(pkg *Package) error
	Delete(id uuid.UUID) error
	GetByID(id uuid.UUID) (*Package, error)
	GetBySlug(slug string) (*Package, error)
	ListActive() ([]Package, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(pkg *Package) error {
	if err := r.db.Create(pkg).Error; err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}
	return nil
}

func (r *repository) Update(pkg *Package) error {
	if err := r.db.Save(pkg).Error; err != nil {
		return fmt.Errorf("failed to update package: %w", err)
	}
	return nil
}

func (r *repository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&Package{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete package: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPackageNotFound
	}
	return nil
}

func (r *repository) GetByID(id uuid.UUID) (*Package, error) {
	var pkg Package
	if err := r.db.Where("id = ?", id).First(&pkg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return &pkg, nil
}

func (r *repository) GetBySlug(slug string) (*Package, error) {
	var pkg Package
	if err := r.db.Where("slug = ?", slug).First(&pkg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to get package by slug: %w", err)
	}
	return &pkg, nil
}

func (r *repository) ListActive() ([]Package, error) {
	var list []Package
	if err := r.db.Where("active = ?", true).Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return list, nil
}
