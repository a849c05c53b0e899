package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndFormat(t *testing.T) {
	d, err := Parse("2025-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2025-01-15", Format(d))

	_, err = Parse("15-01-2025")
	assert.Error(t, err)
	_, err = Parse("")
	assert.Error(t, err)
}

func TestNightsBetween(t *testing.T) {
	in, _ := Parse("2025-01-01")
	out, _ := Parse("2025-01-03")
	assert.Equal(t, 2, NightsBetween(in, out))
	assert.Equal(t, 0, NightsBetween(in, in))
}

func TestEpochDays(t *testing.T) {
	epoch, _ := Parse("1970-01-01")
	assert.Equal(t, int64(0), EpochDays(epoch))

	next, _ := Parse("1970-01-02")
	assert.Equal(t, int64(1), EpochDays(next))

	// Time of day never changes the encoding
	noon := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	midnight := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, EpochDays(midnight), EpochDays(noon))
}

func TestEachNight(t *testing.T) {
	in, _ := Parse("2025-01-01")
	out, _ := Parse("2025-01-04")

	var nights []string
	EachNight(in, out, func(night time.Time) {
		nights = append(nights, Format(night))
	})

	assert.Equal(t, []string{"2025-01-01", "2025-01-02", "2025-01-03"}, nights)
}
