package domain

// Cart domain errors.
var (
	ErrInvalidQuantity = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
	ErrInvalidLineItem = &Error{Code: EINVALID, Message: "Line item requires a product id"}
)

// LineItem is one product entry in a cart. The unit price is fixed at the
// moment the item is added and is never re-fetched from the catalog.
type LineItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image,omitempty"`
	UnitPrice Amount `json:"price"`
	Variant   string `json:"variant,omitempty"`
	Quantity  int    `json:"quantity"`
}

// LineTotal returns unit price × quantity, unrounded.
func (li LineItem) LineTotal() Amount {
	return li.UnitPrice.MulInt(li.Quantity)
}

// CartSummary aggregates the cart's lines with its derived totals for the
// presentation layer. Subtotal and Count are always recomputed from the
// lines, never stored.
type CartSummary struct {
	Items    []LineItem `json:"items"`
	Count    int        `json:"count"`
	Subtotal Amount     `json:"subtotal"`
	Shipping Amount     `json:"shipping"`
	Tax      Amount     `json:"tax"`
	Total    Amount     `json:"total"`
}
