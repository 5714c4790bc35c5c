package domain

import "time"

// Order domain errors.
var (
	ErrEmptyCart        = &Error{Code: EINVALID, Message: "Cart is empty"}
	ErrOrderNotFound    = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrDuplicateOrderID = &Error{Code: ECONFLICT, Message: "Order id already exists"}
)

// OrderStatus is an order lifecycle tag. Orders are created confirmed;
// later transitions are driven outside this service.
type OrderStatus string

const (
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
)

// OrderMetadata carries the checkout form data attached to an order.
// The contents are stored verbatim; nothing here is interpreted.
type OrderMetadata struct {
	Customer      map[string]string `json:"customer,omitempty"`
	Delivery      map[string]string `json:"delivery,omitempty"`
	PaymentMethod string            `json:"paymentMethod,omitempty"`
}

// Order is an immutable snapshot of a cart at checkout. Items are a deep
// copy; mutating the cart afterwards never affects a placed order. The
// frozen totals satisfy Total = Subtotal + Shipping + Tax exactly.
type Order struct {
	ID            string            `json:"id"`
	Items         []LineItem        `json:"items"`
	Subtotal      Amount            `json:"subtotal"`
	Shipping      Amount            `json:"shipping"`
	Tax           Amount            `json:"tax"`
	Total         Amount            `json:"total"`
	Status        OrderStatus       `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
	Customer      map[string]string `json:"customer,omitempty"`
	Delivery      map[string]string `json:"delivery,omitempty"`
	PaymentMethod string            `json:"paymentMethod,omitempty"`
}

// CloneItems returns an independent copy of a line item slice. LineItem
// holds only value types, so copying the backing array severs all aliasing.
func CloneItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	cloned := make([]LineItem, len(items))
	copy(cloned, items)
	return cloned
}

// CloneMetadata returns an independent copy of a metadata map.
func CloneMetadata(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	cloned := make(map[string]string, len(m))
	for k, v := range m {
		cloned[k] = v
	}
	return cloned
}
