package safaris

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enquiry status values
const (
	EnquiryStatusNew       = "new"
	EnquiryStatusContacted = "contacted"
	EnquiryStatusConfirmed = "confirmed"
	EnquiryStatusClosed    = "closed"
)

// IsValidEnquiryStatus reports whether status is a known enquiry status
func IsValidEnquiryStatus(status string) bool {
	switch status {
	case EnquiryStatusNew, EnquiryStatusContacted, EnquiryStatusConfirmed, EnquiryStatusClosed:
		return true
	}
	return false
}

// Tour is a bookable safari with a flat per-booking price
type Tour struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;not null"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	Price       int64          `json:"price" gorm:"not null;check:price >= 0"` // flat, per booking
	DurationHrs int            `json:"duration_hrs" gorm:"not null;default:3"`
	Active      bool           `json:"active" gorm:"not null;default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for Tour model
func (Tour) TableName() string {
	return "safari_tours"
}

// Enquiry is a guest request about a safari, filed standalone or
// attached to an existing booking by its code
type Enquiry struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TourID      uuid.UUID      `json:"tour_id" gorm:"type:uuid;not null;index"`
	Tour        *Tour          `json:"tour,omitempty" gorm:"foreignKey:TourID"`
	BookingCode string         `json:"booking_code,omitempty"`
	GuestName   string         `json:"guest_name" gorm:"not null"`
	GuestEmail  string         `json:"guest_email" gorm:"not null;index"`
	GuestPhone  string         `json:"guest_phone"`
	PartySize   int            `json:"party_size" gorm:"not null;default:1"`
	PreferredOn time.Time      `json:"preferred_on" gorm:"type:date"`
	Message     string         `json:"message" gorm:"type:text"`
	Status      string         `json:"status" gorm:"not null;default:'new';index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for Enquiry model
func (Enquiry) TableName() string {
	return "safari_enquiries"
}

// CreateTourRequest is the admin payload for a new tour
type CreateTourRequest struct {
	Slug        string `json:"slug" binding:"required,lowercase"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,gte=0"`
	DurationHrs int    `json:"duration_hrs" binding:"omitempty,gt=0"`
}

// UpdateTourRequest is the admin payload for a partial tour update
type UpdateTourRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price" binding:"omitempty,gte=0"`
	DurationHrs *int    `json:"duration_hrs" binding:"omitempty,gt=0"`
	Active      *bool   `json:"active"`
}

// CreateEnquiryRequest is the guest payload for a safari enquiry
type CreateEnquiryRequest struct {
	TourSlug    string `json:"tour_slug" binding:"required"`
	BookingCode string `json:"booking_code"`
	GuestName   string `json:"guest_name" binding:"required"`
	GuestEmail  string `json:"guest_email" binding:"required,email"`
	GuestPhone  string `json:"guest_phone"`
	PartySize   int    `json:"party_size" binding:"required,gt=0"`
	PreferredOn string `json:"preferred_on" binding:"required"`
	Message     string `json:"message"`
}

// UpdateEnquiryStatusRequest moves an enquiry along its workflow (admin)
type UpdateEnquiryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
