package bookings

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoAvailability is returned when the transactional recount finds
	// no unit left for the requested range
	ErrNoAvailability = errors.New("no units available for the requested dates")
	// ErrBookingNotFound is returned for unknown booking ids or codes
	ErrBookingNotFound = errors.New("booking not found")
	// ErrInvalidTransition is returned for illegal status moves
	ErrInvalidTransition = errors.New("invalid booking status transition")
	// ErrPaymentRequired is returned when confirming an unpaid booking
	ErrPaymentRequired = errors.New("booking cannot be confirmed before payment")
)

// ValidationError carries per-field messages for a rejected draft
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError from field messages
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// AsValidationError unwraps err into a *ValidationError when possible
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
