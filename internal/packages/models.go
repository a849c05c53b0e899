package packages

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Package is a nightly-rate meal or experience add-on
type Package struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Slug          string         `json:"slug" gorm:"uniqueIndex;not null"`
	Name          string         `json:"name" gorm:"not null"`
	Description   string         `json:"description" gorm:"type:text"`
	PricePerNight int64          `json:"price_per_night" gorm:"not null;check:price_per_night >= 0"`
	Active        bool           `json:"active" gorm:"not null;default:true"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for Package model
func (Package) TableName() string {
	return "packages"
}

// CreatePackageRequest is the admin payload for a new package
type CreatePackageRequest struct {
	Slug          string `json:"slug" binding:"required,lowercase"`
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	PricePerNight int64  `json:"price_per_night" binding:"required,gte=0"`
}

// UpdatePackageRequest is the admin payload for a partial update
type UpdatePackageRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	PricePerNight *int64  `json:"price_per_night" binding:"omitempty,gte=0"`
	Active        *bool   `json:"active"`
}
