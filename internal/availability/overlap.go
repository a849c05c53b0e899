package availability

import "time"

// IntervalsOverlap reports whether two half-open stay intervals
// [aIn, aOut) and [bIn, bOut) intersect. Same-day turnover, where one
// stay checks out the day the other checks in, is not an overlap. This
// is the in-memory mirror of the predicate the repository runs in SQL.
func IntervalsOverlap(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && aOut.After(bIn)
}
