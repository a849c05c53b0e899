package bookings

import (
	"time"

	"lagoona/internal/shared/utils/dates"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking is a persisted stay. Villa and package details are stored as
// snapshots so later catalog edits never change what the guest agreed
// to pay.
type Booking struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	BookingCode string    `json:"booking_code" gorm:"uniqueIndex;not null"`

	VillaID           uuid.UUID `json:"villa_id" gorm:"type:uuid;not null;index"`
	VillaSlug         string    `json:"villa_slug" gorm:"not null"`
	VillaName         string    `json:"villa_name" gorm:"not null"`
	VillaNightlyPrice int64     `json:"villa_nightly_price" gorm:"not null"` // resolved price of the first night

	CheckIn  time.Time `json:"check_in" gorm:"not null;type:date"`
	CheckOut time.Time `json:"check_out" gorm:"not null;type:date"`
	Guests   int       `json:"guests" gorm:"not null;default:1"`

	PackageSlug          string `json:"package_slug,omitempty"`
	PackageName          string `json:"package_name,omitempty"`
	PackagePricePerNight int64  `json:"package_price_per_night"`

	Safaris []BookingSafari `json:"safaris,omitempty" gorm:"foreignKey:BookingID"`

	Subtotal    int64 `json:"subtotal" gorm:"not null"`
	Taxes       int64 `json:"taxes" gorm:"not null"`
	TotalAmount int64 `json:"total_amount" gorm:"not null"`

	Status        BookingStatus `json:"status" gorm:"not null;default:'pending';index"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"not null;default:'pending';index"`

	GuestName  string `json:"guest_name" gorm:"not null"`
	GuestEmail string `json:"guest_email" gorm:"not null;index"`
	GuestPhone string `json:"guest_phone"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for Booking model
func (Booking) TableName() string {
	return "bookings"
}

// Nights returns the length of the stay
func (b *Booking) Nights() int {
	return dates.NightsBetween(b.CheckIn, b.CheckOut)
}

// CanCancel reports whether the booking may still be cancelled
func (b *Booking) CanCancel() bool {
	return b.Status.CanTransitionTo(StatusCancelled)
}

// BookingSafari is one flat-priced safari add-on line on a booking
type BookingSafari struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	BookingID uuid.UUID `json:"booking_id" gorm:"type:uuid;not null;index"`
	TourSlug  string    `json:"tour_slug" gorm:"not null"`
	TourName  string    `json:"tour_name" gorm:"not null"`
	Price     int64     `json:"price" gorm:"not null"` // flat, snapshot at booking time
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for BookingSafari model
func (BookingSafari) TableName() string {
	return "booking_safaris"
}

// Payment is one attempt to settle a booking. The demo gateway flips
// these between pending and completed/failed.
type Payment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	BookingID uuid.UUID `json:"booking_id" gorm:"type:uuid;not null;index"`
	Amount    int64     `json:"amount" gorm:"not null"`
	Kind      string    `json:"kind" gorm:"not null;default:'full'"` // full or advance
	Status    string    `json:"status" gorm:"not null;default:'pending'"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for Payment model
func (Payment) TableName() string {
	return "payments"
}

// BookingResponse is the public projection of a booking
type BookingResponse struct {
	ID            uuid.UUID       `json:"id"`
	BookingCode   string          `json:"booking_code"`
	VillaSlug     string          `json:"villa_slug"`
	VillaName     string          `json:"villa_name"`
	CheckIn       string          `json:"check_in"`
	CheckOut      string          `json:"check_out"`
	Nights        int             `json:"nights"`
	Guests        int             `json:"guests"`
	PackageName   string          `json:"package_name,omitempty"`
	Safaris       []BookingSafari `json:"safaris,omitempty"`
	Subtotal      int64           `json:"subtotal"`
	Taxes         int64           `json:"taxes"`
	TotalAmount   int64           `json:"total_amount"`
	Status        BookingStatus   `json:"status"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	GuestName     string          `json:"guest_name"`
	GuestEmail    string          `json:"guest_email"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToResponse converts Booking to BookingResponse
func (b *Booking) ToResponse() BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		BookingCode:   b.BookingCode,
		VillaSlug:     b.VillaSlug,
		VillaName:     b.VillaName,
		CheckIn:       dates.Format(b.CheckIn),
		CheckOut:      dates.Format(b.CheckOut),
		Nights:        b.Nights(),
		Guests:        b.Guests,
		PackageName:   b.PackageName,
		Safaris:       b.Safaris,
		Subtotal:      b.Subtotal,
		Taxes:         b.Taxes,
		TotalAmount:   b.TotalAmount,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		GuestName:     b.GuestName,
		GuestEmail:    b.GuestEmail,
		CreatedAt:     b.CreatedAt,
	}
}
