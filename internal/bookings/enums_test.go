package bookings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_Transitions(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestBookingStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
}

func TestPaymentStatus_CoversConfirmation(t *testing.T) {
	assert.True(t, PaymentPaid.CoversConfirmation())
	assert.True(t, PaymentAdvancePaid.CoversConfirmation())
	assert.False(t, PaymentPending.CoversConfirmation())
	assert.False(t, PaymentFailed.CoversConfirmation())
	assert.False(t, PaymentRefunded.CoversConfirmation())
}

func TestPaymentStatus_BlocksInventory(t *testing.T) {
	// Only failed payments free the unit; refunds come with a
	// cancellation, which frees it through the booking status instead
	assert.True(t, PaymentPending.BlocksInventory())
	assert.True(t, PaymentPaid.BlocksInventory())
	assert.False(t, PaymentFailed.BlocksInventory())
}
