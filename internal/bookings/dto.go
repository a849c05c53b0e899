package bookings

// CreateBookingRequest is the guest payload for a new booking. The
// optional hold id releases the guest's advisory hold once the row is
// committed.
type CreateBookingRequest struct {
	VillaSlug   string   `json:"villa_slug" validate:"required"`
	CheckIn     string   `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut    string   `json:"check_out" validate:"required,datetime=2006-01-02"`
	Guests      int      `json:"guests" validate:"required,gt=0"`
	PackageSlug string   `json:"package_slug" validate:"omitempty"`
	SafariSlugs []string `json:"safari_slugs" validate:"omitempty,dive,required"`
	GuestName   string   `json:"guest_name" validate:"required,min=2"`
	GuestEmail  string   `json:"guest_email" validate:"required,email"`
	GuestPhone  string   `json:"guest_phone" validate:"omitempty,min=7"`
	HoldID      string   `json:"hold_id" validate:"omitempty,uuid4"`
}

// LookupBookingRequest identifies a booking for an unauthenticated guest
type LookupBookingRequest struct {
	BookingCode string `json:"booking_code" binding:"required"`
	GuestEmail  string `json:"guest_email" binding:"required,email"`
}

// CancelBookingRequest is the guest cancellation payload
type CancelBookingRequest struct {
	BookingCode string `json:"booking_code" binding:"required"`
	GuestEmail  string `json:"guest_email" binding:"required,email"`
	Reason      string `json:"reason"`
}

// PayBookingRequest drives the demo payment gateway
type PayBookingRequest struct {
	BookingCode string `json:"booking_code" binding:"required"`
	GuestEmail  string `json:"guest_email" binding:"required,email"`
	Kind        string `json:"kind" binding:"omitempty,oneof=full advance"`
	// Outcome lets the demo gateway simulate failures
	Outcome string `json:"outcome" binding:"omitempty,oneof=success failure"`
}

// ListFilters narrows the admin booking listing
type ListFilters struct {
	VillaSlug     string
	Status        string
	PaymentStatus string
	GuestEmail    string
	Page          int
	Limit         int
}

// ListResult is a paginated booking listing
type ListResult struct {
	Bookings   []BookingResponse `json:"bookings"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
