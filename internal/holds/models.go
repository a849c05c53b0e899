package holds

import (
	"errors"
	"time"
)

var (
	// ErrHoldConflict is returned when every remaining unit for the
	// requested range is already held
	ErrHoldConflict = errors.New("all remaining units are currently held")
	// ErrHoldNotFound is returned when a hold id is unknown or expired
	ErrHoldNotFound = errors.New("hold not found or expired")
)

// Hold is an advisory soft-lock on one villa unit for a date range.
// Holds are not bookings: they only shrink the pool other hold
// requests see, and they lapse on their own after the TTL.
type Hold struct {
	ID        string    `json:"id"`
	VillaSlug string    `json:"villa_slug"`
	CheckIn   string    `json:"check_in"`
	CheckOut  string    `json:"check_out"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateHoldRequest is the guest payload for taking a hold
type CreateHoldRequest struct {
	VillaSlug string `json:"villa_slug" binding:"required"`
	CheckIn   string `json:"check_in" binding:"required"`
	CheckOut  string `json:"check_out" binding:"required"`
}
