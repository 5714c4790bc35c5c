package pricing

import "github.com/zyraa/storefront/internal/domain"

// FlatRateShipping charges a fixed fee regardless of subtotal, weight or
// destination. This is the storefront's documented simplification; a
// carrier-rate provider would slot in behind the same interface.
type FlatRateShipping struct {
	fee domain.Amount
}

// NewFlatRateShipping creates a flat-rate shipping provider.
func NewFlatRateShipping(fee domain.Amount) ShippingProvider {
	return &FlatRateShipping{fee: fee}
}

// Fee returns the configured flat fee.
func (p *FlatRateShipping) Fee(subtotal domain.Amount) domain.Amount {
	return p.fee
}
