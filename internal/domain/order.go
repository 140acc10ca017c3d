package domain

import "encoding/json"

// OrderPayment is the gateway a completed order was paid with, used for
// display on the confirmation page.
type OrderPayment struct {
	Gateway string `json:"gateway"`
}

// Order is the terminal entity a checkout converts into. Its metadata
// carries a serialized snapshot of the checkout at completion time,
// because the checkout itself may no longer be queryable once the order
// exists.
type Order struct {
	ID       string          `json:"id"`
	Number   string          `json:"number"`
	Created  string          `json:"created"`
	Payments []OrderPayment  `json:"payments"`
	Metadata []MetadataEntry `json:"metadata"`
}

// CheckoutSnapshot decodes the checkout snapshot stored under
// MetaKeyCheckoutData. Returns nil when the order carries no snapshot.
func (o *Order) CheckoutSnapshot() (*Checkout, error) {
	raw := MetadataValue(o.Metadata, MetaKeyCheckoutData)
	if raw == "" {
		return nil, nil
	}
	var checkout Checkout
	if err := json.Unmarshal([]byte(raw), &checkout); err != nil {
		return nil, err
	}
	return &checkout, nil
}
