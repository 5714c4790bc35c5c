package pricing

import "github.com/zyraa/storefront/internal/domain"

// ShippingProvider computes the shipping fee for an order subtotal.
// Implementations: FlatRateShipping.
type ShippingProvider interface {
	Fee(subtotal domain.Amount) domain.Amount
}

// TaxCalculator computes tax on an order subtotal.
// Implementations: PercentageTax, NoTax.
type TaxCalculator interface {
	Tax(subtotal domain.Amount) domain.Amount
}

// Quote is the priced breakdown of a subtotal. Total is exactly
// Subtotal + Shipping + Tax; all values stay unrounded until displayed.
type Quote struct {
	Subtotal domain.Amount `json:"subtotal"`
	Shipping domain.Amount `json:"shipping"`
	Tax      domain.Amount `json:"tax"`
	Total    domain.Amount `json:"total"`
}

// Calculator combines a shipping provider and a tax calculator into the
// storefront's pricing policy.
type Calculator struct {
	shipping ShippingProvider
	tax      TaxCalculator
}

// NewCalculator creates a pricing calculator from its two policies.
func NewCalculator(shipping ShippingProvider, tax TaxCalculator) *Calculator {
	return &Calculator{shipping: shipping, tax: tax}
}

// Quote prices a subtotal. Pure: same subtotal, same quote.
func (c *Calculator) Quote(subtotal domain.Amount) Quote {
	shipping := c.shipping.Fee(subtotal)
	tax := c.tax.Tax(subtotal)

	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}
