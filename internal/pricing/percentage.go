package pricing

import "github.com/zyraa/storefront/internal/domain"

// PercentageTax calculates tax as subtotal × rate. The product is kept
// unrounded; rounding to two places happens at presentation only, so
// repeated accumulation never drifts from the once-rounded result.
type PercentageTax struct {
	rate float64 // e.g., 0.18 for 18%
}

// NewPercentageTax creates a percentage-based tax calculator.
func NewPercentageTax(rate float64) TaxCalculator {
	return &PercentageTax{rate: rate}
}

// Tax computes tax on the subtotal using the configured rate.
func (c *PercentageTax) Tax(subtotal domain.Amount) domain.Amount {
	return subtotal.MulRate(c.rate)
}
