package bookings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBookingCode_Format(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	code, err := GenerateBookingCode(now)
	require.NoError(t, err)

	assert.Regexp(t, `^RST-20250115-[A-HJ-NP-Z2-9]{6}$`, code)
}

func TestGenerateBookingCode_Varies(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateBookingCode(now)
		require.NoError(t, err)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}
