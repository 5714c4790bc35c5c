package pricing

import "github.com/zyraa/storefront/internal/domain"

// NoTax returns zero tax for all calculations.
// Used for tax-exempt configurations.
type NoTax struct{}

// NewNoTax creates a no-tax calculator.
func NewNoTax() TaxCalculator {
	return NoTax{}
}

// Tax always returns zero.
func (NoTax) Tax(subtotal domain.Amount) domain.Amount {
	return domain.ZeroAmount
}
