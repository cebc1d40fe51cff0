// internal/domain/payment/entity.go
package payment

// Intent is the gateway-side view of a created payment intent
type Intent struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"order_id"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Status    string  `json:"status"`
	Reference string  `json:"reference,omitempty"`
}

// UPIDetails carries everything the UI needs to render a UPI payment:
// the deep-link URI, a QR image URL for it, and the transaction reference
// the shopper's payment is verified against.
type UPIDetails struct {
	URI        string  `json:"uri"`
	QRImageURL string  `json:"qr_image_url"`
	Reference  string  `json:"reference"`
	PayeeID    string  `json:"payee_id"`
	AmountINR  float64 `json:"amount_inr"`
}

// RazorpayCheckout carries the hosted-widget session handed to the UI
type RazorpayCheckout struct {
	KeyID           string  `json:"key_id"`
	RazorpayOrderID string  `json:"razorpay_order_id"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
}
