package dates

import (
	"fmt"
	"time"
)

// Layout is the wire format for stay dates
const Layout = "2006-01-02"

// Parse parses a YYYY-MM-DD string into a UTC midnight time
func Parse(value string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

// Format renders a time as YYYY-MM-DD
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Truncate drops the time-of-day component, keeping UTC midnight
func Truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current UTC date at midnight
func Today() time.Time {
	return Truncate(time.Now())
}

// NightsBetween returns the number of nights in the half-open
// interval [checkIn, checkOut)
func NightsBetween(checkIn, checkOut time.Time) int {
	return int(Truncate(checkOut).Sub(Truncate(checkIn)).Hours() / 24)
}

// EpochDays returns the number of days since the Unix epoch, used as a
// compact interval encoding in Redis scripts
func EpochDays(t time.Time) int64 {
	return Truncate(t).Unix() / 86400
}

// EachNight calls fn once per night of the stay, in order
func EachNight(checkIn, checkOut time.Time, fn func(night time.Time)) {
	for d := Truncate(checkIn); d.Before(Truncate(checkOut)); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}
