package villas

import (
	"math"
	"time"
)

// ResolveNightlyPrice computes the price of one villa-night.
//
// A date override wins unconditionally. Otherwise the largest modifier
// among the rules covering this villa-night is applied to the base
// price; modifiers are never summed. The result is rounded to the
// nearest whole rupee.
func ResolveNightlyPrice(basePrice int64, villaSlug string, night time.Time, rules []PricingRule, override *int64) int64 {
	if override != nil {
		return *override
	}

	matched := false
	modifier := 0.0
	for i := range rules {
		if !rules[i].Covers(villaSlug, night) {
			continue
		}
		if !matched || rules[i].Modifier > modifier {
			modifier = rules[i].Modifier
			matched = true
		}
	}

	if !matched {
		return basePrice
	}
	return int64(math.Round(float64(basePrice) * modifier))
}
