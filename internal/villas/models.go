package villas

import (
	"time"

	"lagoona/internal/shared/utils/dates"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScopeAll marks a pricing rule that applies to every villa
const ScopeAll = "all"

// Villa is a sellable room type with a fixed number of identical units
type Villa struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;not null"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	BasePrice   int64          `json:"base_price" gorm:"not null;check:base_price >= 0"` // rupees per night
	MaxGuests   int            `json:"max_guests" gorm:"not null;default:2"`
	TotalUnits  int            `json:"total_units" gorm:"not null;default:1;check:total_units >= 1"`
	Active      bool           `json:"active" gorm:"not null;default:true"`
	Amenities   []string       `json:"amenities" gorm:"serializer:json"`
	Images      []string       `json:"images" gorm:"serializer:json"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for Villa model
func (Villa) TableName() string {
	return "villas"
}

// PricingRule scales the base price of the villas it covers over an
// inclusive date range. Modifiers are never stacked; when several rules
// cover the same night the largest one wins.
type PricingRule struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name       string         `json:"name" gorm:"not null"`
	VillaScope string         `json:"villa_scope" gorm:"not null;default:'all'"` // villa slug or "all"
	Modifier   float64        `json:"modifier" gorm:"not null;check:modifier > 0"`
	StartDate  time.Time      `json:"start_date" gorm:"not null;type:date"`
	EndDate    time.Time      `json:"end_date" gorm:"not null;type:date"`
	Active     bool           `json:"active" gorm:"not null;default:true"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for PricingRule model
func (PricingRule) TableName() string {
	return "pricing_rules"
}

// Covers reports whether the rule applies to the given villa-night
func (r *PricingRule) Covers(villaSlug string, night time.Time) bool {
	if !r.Active {
		return false
	}
	if r.VillaScope != ScopeAll && r.VillaScope != villaSlug {
		return false
	}
	d := dates.Truncate(night)
	return !d.Before(dates.Truncate(r.StartDate)) && !d.After(dates.Truncate(r.EndDate))
}

// DateOverride pins an absolute nightly price to one villa-date,
// superseding the base price and every rule
type DateOverride struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	VillaID   uuid.UUID      `json:"villa_id" gorm:"type:uuid;not null;index"`
	Date      time.Time      `json:"date" gorm:"not null;type:date"`
	Price     int64          `json:"price" gorm:"not null;check:price >= 0"`
	Reason    string         `json:"reason"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for DateOverride model
func (DateOverride) TableName() string {
	return "date_overrides"
}

// NightPrice is one resolved villa-night
type NightPrice struct {
	Date  string `json:"date"`
	Price int64  `json:"price"`
}

// VillaResponse is the public projection of a villa
type VillaResponse struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	BasePrice   int64     `json:"base_price"`
	MaxGuests   int       `json:"max_guests"`
	TotalUnits  int       `json:"total_units"`
	Active      bool      `json:"active"`
	Amenities   []string  `json:"amenities"`
	Images      []string  `json:"images"`
}

// ToResponse converts Villa to VillaResponse
func (v *Villa) ToResponse() VillaResponse {
	return VillaResponse{
		ID:          v.ID,
		Slug:        v.Slug,
		Name:        v.Name,
		Description: v.Description,
		BasePrice:   v.BasePrice,
		MaxGuests:   v.MaxGuests,
		TotalUnits:  v.TotalUnits,
		Active:      v.Active,
		Amenities:   v.Amenities,
		Images:      v.Images,
	}
}
