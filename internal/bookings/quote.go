package bookings

import "math"

// QuoteInput is everything the money math needs, already resolved:
// one price per villa-night, the package nightly rate (0 when no
// package was chosen) and one flat price per safari add-on.
type QuoteInput struct {
	NightlyPrices   []int64
	PackagePerNight int64
	SafariPrices    []int64
	TaxRatePercent  int
}

// Quote is the derived money snapshot persisted on the booking
type Quote struct {
	Subtotal int64 `json:"subtotal"`
	Taxes    int64 `json:"taxes"`
	Total    int64 `json:"total"`
}

// ComputeQuote derives the booking total. Pure: subtotal is the sum of
// villa nights plus package nights plus flat safari prices, taxes are
// the configured percentage rounded to the nearest rupee, and
// total == subtotal + taxes always holds.
func ComputeQuote(in QuoteInput) Quote {
	var subtotal int64
	for _, price := range in.NightlyPrices {
		subtotal += price
	}
	subtotal += int64(len(in.NightlyPrices)) * in.PackagePerNight
	for _, price := range in.SafariPrices {
		subtotal += price
	}

	taxes := int64(math.Round(float64(subtotal) * float64(in.TaxRatePercent) / 100))

	return Quote{
		Subtotal: subtotal,
		Taxes:    taxes,
		Total:    subtotal + taxes,
	}
}
