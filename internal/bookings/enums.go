package bookings

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// PaymentStatus tracks money against a booking
type PaymentStatus string

const (
	PaymentPending      PaymentStatus = "pending"
	PaymentAdvancePaid  PaymentStatus = "advance_paid"
	PaymentPaid         PaymentStatus = "paid"
	PaymentFailed       PaymentStatus = "failed"
	PaymentRefunded     PaymentStatus = "refunded"
)

// IsValid reports whether the booking status is known
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// CanTransitionTo encodes the booking state machine:
// pending -> confirmed -> completed, with cancellation allowed from
// pending or confirmed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// IsValid reports whether the payment status is known
func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPending, PaymentAdvancePaid, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// CoversConfirmation reports whether this payment state is enough to
// confirm the booking
func (p PaymentStatus) CoversConfirmation() bool {
	return p == PaymentPaid || p == PaymentAdvancePaid
}

// BlocksInventory reports whether a booking in this payment state still
// occupies a unit. Failed payments free the unit immediately.
func (p PaymentStatus) BlocksInventory() bool {
	return p != PaymentFailed
}
