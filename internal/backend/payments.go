// internal/backend/payments.go
package backend

import (
	"context"
	"net/http"
)

// PaymentIntentResponse is the result of creating a payment intent. Exactly
// one of the method-specific payloads may be present: UPI details for the
// qr/id flows, or a Razorpay session when the backend delegates to the
// hosted checkout widget.
type PaymentIntentResponse struct {
	Payment  *Payment         `json:"payment"`
	UPI      *UPIPayload      `json:"upi,omitempty"`
	Razorpay *RazorpayPayload `json:"razorpay,omitempty"`
}

// CardPayload carries card form fields for processing
type CardPayload struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

// CreatePaymentIntent creates a payment intent for an order
func (c *Client) CreatePaymentIntent(ctx context.Context, token, orderID, method string) (*PaymentIntentResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/payments/create-intent", token, map[string]string{
		"orderId": orderID,
		"method":  method,
	})
	if err != nil {
		return nil, err
	}

	var resp PaymentIntentResponse
	if err := decodeEnvelope(body, &resp); err != nil {
		return nil, err
	}
	if resp.Payment == nil || resp.Payment.ID == "" {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "backend did not return a payment intent"}
	}

	return &resp, nil
}

// VerifyUPIPayment confirms a UPI payment by reference. The upiID is empty
// for the QR flow and carries the user-entered id for the id flow.
func (c *Client) VerifyUPIPayment(ctx context.Context, token, reference, upiID string) (*Payment, error) {
	payload := map[string]string{
		"paymentReference": reference,
	}
	if upiID != "" {
		payload["upiId"] = upiID
	}

	body, err := c.do(ctx, http.MethodPost, "/payments/verify-upi", token, payload)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Payment *Payment `json:"payment"`
	}
	if err := decodeEnvelope(body, &resp); err != nil {
		return nil, err
	}
	return resp.Payment, nil
}

// ProcessCardPayment submits card details against an existing intent
func (c *Client) ProcessCardPayment(ctx context.Context, token, paymentID string, card CardPayload) (*Payment, error) {
	body, err := c.do(ctx, http.MethodPost, "/payments/process-card", token, map[string]interface{}{
		"paymentId":   paymentID,
		"cardDetails": card,
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Payment *Payment `json:"payment"`
	}
	if err := decodeEnvelope(body, &resp); err != nil {
		return nil, err
	}
	return resp.Payment, nil
}

// VerifyPayment confirms a hosted-checkout (widget) payment result
func (c *Client) VerifyPayment(ctx context.Context, token string, payload map[string]string) (*Payment, error) {
	body, err := c.do(ctx, http.MethodPost, "/payments/verify", token, payload)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Payment *Payment `json:"payment"`
	}
	if err := decodeEnvelope(body, &resp); err != nil {
		return nil, err
	}
	return resp.Payment, nil
}
