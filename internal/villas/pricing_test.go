package villas

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(value string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func rule(scope string, modifier float64, start, end string) PricingRule {
	return PricingRule{
		Name:       "test rule",
		VillaScope: scope,
		Modifier:   modifier,
		StartDate:  date(start),
		EndDate:    date(end),
		Active:     true,
	}
}

func TestResolveNightlyPrice_NoRules(t *testing.T) {
	price := ResolveNightlyPrice(10000, "lagoon-villa", date("2026-06-10"), nil, nil)
	assert.Equal(t, int64(10000), price)
}

func TestResolveNightlyPrice_MaxModifierWins(t *testing.T) {
	rules := []PricingRule{
		rule(ScopeAll, 1.3, "2026-06-01", "2026-06-30"),
		rule("lagoon-villa", 1.8, "2026-06-05", "2026-06-15"),
	}

	// Both rules cover the night; 1.8 wins, never 1.3+1.8
	price := ResolveNightlyPrice(10000, "lagoon-villa", date("2026-06-10"), rules, nil)
	assert.Equal(t, int64(18000), price)
}

func TestResolveNightlyPrice_ScopedRuleIgnoredForOtherVilla(t *testing.T) {
	rules := []PricingRule{
		rule("lagoon-villa", 1.8, "2026-06-01", "2026-06-30"),
	}

	price := ResolveNightlyPrice(10000, "glass-cottage", date("2026-06-10"), rules, nil)
	assert.Equal(t, int64(10000), price)
}

func TestResolveNightlyPrice_InactiveRuleIgnored(t *testing.T) {
	inactive := rule(ScopeAll, 2.0, "2026-06-01", "2026-06-30")
	inactive.Active = false

	price := ResolveNightlyPrice(10000, "lagoon-villa", date("2026-06-10"), []PricingRule{inactive}, nil)
	assert.Equal(t, int64(10000), price)
}

func TestResolveNightlyPrice_RangeIsInclusive(t *testing.T) {
	rules := []PricingRule{
		rule(ScopeAll, 1.5, "2026-06-10", "2026-06-12"),
	}

	assert.Equal(t, int64(10000), ResolveNightlyPrice(10000, "v", date("2026-06-09"), rules, nil))
	assert.Equal(t, int64(15000), ResolveNightlyPrice(10000, "v", date("2026-06-10"), rules, nil))
	assert.Equal(t, int64(15000), ResolveNightlyPrice(10000, "v", date("2026-06-12"), rules, nil))
	assert.Equal(t, int64(10000), ResolveNightlyPrice(10000, "v", date("2026-06-13"), rules, nil))
}

func TestResolveNightlyPrice_OverrideSupersedesRules(t *testing.T) {
	rules := []PricingRule{
		rule(ScopeAll, 1.3, "2026-06-01", "2026-06-30"),
		rule(ScopeAll, 1.8, "2026-06-01", "2026-06-30"),
	}
	override := int64(12000)

	price := ResolveNightlyPrice(10000, "lagoon-villa", date("2026-06-10"), rules, &override)
	assert.Equal(t, int64(12000), price)
}

func TestResolveNightlyPrice_RoundsToNearestRupee(t *testing.T) {
	rules := []PricingRule{
		rule(ScopeAll, 1.155, "2026-06-01", "2026-06-30"),
	}

	// 9999 * 1.155 = 11548.845 -> 11549
	price := ResolveNightlyPrice(9999, "v", date("2026-06-10"), rules, nil)
	assert.Equal(t, int64(11549), price)
}

func TestResolveNightlyPrice_DiscountRuleApplies(t *testing.T) {
	// A lone off-season rule below 1.0 is still the max among matches
	rules := []PricingRule{
		rule(ScopeAll, 0.8, "2026-06-01", "2026-06-30"),
	}

	price := ResolveNightlyPrice(10000, "v", date("2026-06-10"), rules, nil)
	assert.Equal(t, int64(8000), price)
}
