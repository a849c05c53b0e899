package bookings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeQuote_VillaPackageAndSafari(t *testing.T) {
	quote := ComputeQuote(QuoteInput{
		NightlyPrices:   []int64{15000, 15000},
		PackagePerNight: 2000,
		SafariPrices:    []int64{3000},
		TaxRatePercent:  18,
	})

	// (15000+2000)*2 + 3000
	assert.Equal(t, int64(37000), quote.Subtotal)
	assert.Equal(t, int64(6660), quote.Taxes)
	assert.Equal(t, int64(43660), quote.Total)
}

func TestComputeQuote_VillaOnly(t *testing.T) {
	quote := ComputeQuote(QuoteInput{
		NightlyPrices:  []int64{10000, 18000, 10000},
		TaxRatePercent: 18,
	})

	assert.Equal(t, int64(38000), quote.Subtotal)
	assert.Equal(t, int64(6840), quote.Taxes)
	assert.Equal(t, int64(44840), quote.Total)
}

func TestComputeQuote_TaxRoundsToNearestRupee(t *testing.T) {
	// 18% of 10003 = 1800.54 -> 1801
	quote := ComputeQuote(QuoteInput{
		NightlyPrices:  []int64{10003},
		TaxRatePercent: 18,
	})

	assert.Equal(t, int64(1801), quote.Taxes)
	assert.Equal(t, quote.Subtotal+quote.Taxes, quote.Total)
}

func TestComputeQuote_ZeroNights(t *testing.T) {
	quote := ComputeQuote(QuoteInput{TaxRatePercent: 18})

	assert.Equal(t, int64(0), quote.Subtotal)
	assert.Equal(t, int64(0), quote.Taxes)
	assert.Equal(t, int64(0), quote.Total)
}

func TestComputeQuote_TotalAlwaysBalances(t *testing.T) {
	inputs := []QuoteInput{
		{NightlyPrices: []int64{9999}, TaxRatePercent: 18},
		{NightlyPrices: []int64{1, 2, 3}, PackagePerNight: 7, TaxRatePercent: 18},
		{NightlyPrices: []int64{123457}, SafariPrices: []int64{999, 1001}, TaxRatePercent: 12},
	}
	for _, in := range inputs {
		quote := ComputeQuote(in)
		assert.Equal(t, quote.Subtotal+quote.Taxes, quote.Total)
	}
}
