package repositories

import "context"

// RateSource fetches base-relative exchange rates from an external provider.
type RateSource interface {
	// FetchRates returns currency code to multiplier against base.
	FetchRates(ctx context.Context, base string) (map[string]float64, error)
}
