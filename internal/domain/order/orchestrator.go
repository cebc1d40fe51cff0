// internal/domain/order/orchestrator.go
package order

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront-gateway/internal/backend"
	"github.com/your-org/storefront-gateway/internal/domain/cart"
	"github.com/your-org/storefront-gateway/internal/domain/checkout"
	"github.com/your-org/storefront-gateway/internal/domain/payment"
)

// Placement statuses returned to the handler layer
const (
	StatusCompleted      = "completed"
	StatusAwaitingUPI    = "awaiting_upi_confirmation"
	StatusAwaitingWidget = "awaiting_widget"
)

// OrdersAPI is the order-creation slice of the backend client
type OrdersAPI interface {
	CreateOrder(ctx context.Context, token string, req backend.CreateOrderRequest) (*backend.Order, error)
}

// PaymentsAPI is the payment slice of the backend client
type PaymentsAPI interface {
	CreatePaymentIntent(ctx context.Context, token, orderID, method string) (*backend.PaymentIntentResponse, error)
	ProcessCardPayment(ctx context.Context, token, paymentID string, card backend.CardPayload) (*backend.Payment, error)
	VerifyUPIPayment(ctx context.Context, token, reference, upiID string) (*backend.Payment, error)
	VerifyPayment(ctx context.Context, token string, payload map[string]string) (*backend.Payment, error)
}

// Cart is the slice of the cart service the orchestrator reads and clears
type Cart interface {
	Items() []cart.CartItem
	Totals() cart.Totals
	ClearLocalOnly(ctx context.Context) error
}

// PlaceRequest carries the method-specific inputs for one placement attempt
type PlaceRequest struct {
	Card  *checkout.CardDetails
	UPIID string
}

// PlacementResult is the outcome of a placement attempt. Status says
// whether the order is fully paid or the flow is waiting on a UPI
// confirmation or the hosted widget.
type PlacementResult struct {
	Status   string                    `json:"status"`
	Order    *Order                    `json:"order,omitempty"`
	UPI      *payment.UPIDetails       `json:"upi,omitempty"`
	Razorpay *payment.RazorpayCheckout `json:"razorpay,omitempty"`
}

// Orchestrator drives the order placement pipeline: validate, create the
// order, create a payment intent, then run the method-specific payment
// branch. Local checkout state moves forward only on success; failures
// leave the session at the Payment step so the shopper can retry.
type Orchestrator struct {
	orders   OrdersAPI
	payments PaymentsAPI
	upi      *payment.UPIService
	logger   *logrus.Logger
}

// NewOrchestrator wires the placement pipeline
func NewOrchestrator(orders OrdersAPI, payments PaymentsAPI, upi *payment.UPIService, logger *logrus.Logger) *Orchestrator {
	return &Orchestrator{
		orders:   orders,
		payments: payments,
		upi:      upi,
		logger:   logger,
	}
}

// PlaceOrder runs the full placement pipeline for the session's chosen
// payment method. It must be called from the Payment step; a second call
// while one is in flight is rejected by the session's busy flag.
func (o *Orchestrator) PlaceOrder(ctx context.Context, token string, session *checkout.Session, crt Cart, req PlaceRequest) (*PlacementResult, error) {
	if err := session.BeginPlacement(); err != nil {
		return nil, err
	}
	defer session.EndPlacement()

	items := crt.Items()
	if len(items) == 0 {
		return nil, checkout.NewError(checkout.KindEmptyCart, "cart is empty", nil)
	}

	method := session.PaymentMethod()
	if !checkout.IsValidPaymentMethod(method) {
		return nil, checkout.NewError(checkout.KindValidation, "select a payment method", nil)
	}
	if err := o.validateMethodInputs(method, req); err != nil {
		return nil, err
	}

	created, err := o.createOrder(ctx, token, session, items, method)
	if err != nil {
		return nil, err
	}

	intent, err := o.payments.CreatePaymentIntent(ctx, token, created.ID, method)
	if err != nil {
		o.logger.WithFields(logrus.Fields{
			"order_id": created.ID,
			"error":    err.Error(),
		}).Error("Payment intent creation failed")
		return nil, checkout.NewError(checkout.KindPaymentIntentFailed, "could not start payment", err)
	}
	session.RecordOrder(created.ID, intent.Payment.ID)

	switch method {
	case checkout.MethodCard:
		return o.payCard(ctx, token, session, crt, created, intent.Payment.ID, *req.Card)
	case checkout.MethodUPIQR:
		return o.startUPIQR(session, crt, created, intent)
	case checkout.MethodUPIID:
		return o.payUPIID(ctx, token, session, crt, created, intent, req.UPIID)
	case checkout.MethodRazorpay:
		return o.startWidget(session, created, intent)
	}

	return nil, checkout.NewError(checkout.KindValidation, "unsupported payment method", nil)
}

// ConfirmUPI verifies a pending UPI payment against its transaction
// reference. It is retryable: a failed verification leaves the order and
// intent in place, and a later call may succeed without re-creating
// anything.
func (o *Orchestrator) ConfirmUPI(ctx context.Context, token string, session *checkout.Session, crt Cart, upiID string) (*PlacementResult, error) {
	if err := session.BeginPlacement(); err != nil {
		return nil, err
	}
	defer session.EndPlacement()

	orderID := session.OrderID()
	reference := session.PaymentReference()
	if orderID == "" || reference == "" {
		return nil, checkout.NewError(checkout.KindValidation, "no pending UPI payment to confirm", nil)
	}

	paid, err := o.payments.VerifyUPIPayment(ctx, token, reference, upiID)
	if err != nil {
		o.logger.WithFields(logrus.Fields{
			"order_id":  orderID,
			"reference": reference,
			"error":     err.Error(),
		}).Warn("UPI payment verification failed")
		return nil, checkout.NewError(checkout.KindPaymentVerificationFailed, "payment not verified yet", err)
	}

	return o.finalize(ctx, session, crt, &Order{ID: orderID, Status: statusOf(paid)})
}

// CompleteWidget finalizes a hosted-widget payment using the processor's
// callback payload
func (o *Orchestrator) CompleteWidget(ctx context.Context, token string, session *checkout.Session, crt Cart, payload map[string]string) (*PlacementResult, error) {
	if err := session.BeginPlacement(); err != nil {
		return nil, err
	}
	defer session.EndPlacement()

	orderID := session.OrderID()
	if orderID == "" {
		return nil, checkout.NewError(checkout.KindValidation, "no pending order to complete", nil)
	}

	paid, err := o.payments.VerifyPayment(ctx, token, payload)
	if err != nil {
		return nil, checkout.NewError(checkout.KindPaymentVerificationFailed, "payment could not be verified", err)
	}

	return o.finalize(ctx, session, crt, &Order{ID: orderID, Status: statusOf(paid)})
}

// Private helper methods

func (o *Orchestrator) validateMethodInputs(method string, req PlaceRequest) error {
	switch method {
	case checkout.MethodCard:
		if req.Card == nil {
			return checkout.NewError(checkout.KindValidation, "card details are required", nil)
		}
		if fieldErrors := req.Card.Validate(); len(fieldErrors) > 0 {
			return checkout.NewError(checkout.KindValidation, "card details are invalid", nil)
		}
	case checkout.MethodUPIID:
		if fieldErrors := checkout.ValidateUPIID(req.UPIID); len(fieldErrors) > 0 {
			return checkout.NewError(checkout.KindValidation, "UPI id is invalid", nil)
		}
	}
	return nil
}

func (o *Orchestrator) createOrder(ctx context.Context, token string, session *checkout.Session, items []cart.CartItem, method string) (*Order, error) {
	refs := make([]backend.OrderItemRef, 0, len(items))
	for _, item := range items {
		refs = append(refs, backend.OrderItemRef{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
		})
	}

	shipping := session.Shipping()
	created, err := o.orders.CreateOrder(ctx, token, backend.CreateOrderRequest{
		Items: refs,
		ShippingAddress: backend.ShippingAddress{
			Name:    shipping.Name,
			Address: shipping.Address,
			City:    shipping.City,
			State:   shipping.State,
			ZipCode: shipping.ZipCode,
			Country: shipping.Country,
			Phone:   shipping.Phone,
		},
		PaymentMethod: method,
	})
	if err != nil {
		o.logger.WithField("error", err.Error()).Error("Order creation failed")
		return nil, checkout.NewError(checkout.KindOrderCreationFailed, "could not create the order", err)
	}

	return FromBackend(created), nil
}

func (o *Orchestrator) payCard(ctx context.Context, token string, session *checkout.Session, crt Cart, created *Order, paymentID string, card checkout.CardDetails) (*PlacementResult, error) {
	paid, err := o.payments.ProcessCardPayment(ctx, token, paymentID, backend.CardPayload{
		Number: card.Number,
		Name:   card.Name,
		Expiry: card.Expiry,
		CVV:    card.CVV,
	})
	if err != nil {
		o.logger.WithFields(logrus.Fields{
			"order_id": created.ID,
			"error":    err.Error(),
		}).Error("Card payment failed")
		return nil, checkout.NewError(checkout.KindPaymentProcessingFailed, "card payment failed", err)
	}

	created.Status = statusOf(paid)
	return o.finalize(ctx, session, crt, created)
}

func (o *Orchestrator) startUPIQR(session *checkout.Session, crt Cart, created *Order, intent *backend.PaymentIntentResponse) (*PlacementResult, error) {
	reference := o.upi.NewReference()
	if intent.UPI != nil && intent.UPI.Reference != "" {
		reference = intent.UPI.Reference
	}

	amount := created.Total
	if amount == 0 {
		amount = crt.Totals().Subtotal
	}

	details := o.upi.Details(amount, reference)
	session.RecordUPI(reference, details.URI, details.QRImageURL, details.PayeeID)

	// The cart survives until the payment is confirmed
	return &PlacementResult{
		Status: StatusAwaitingUPI,
		Order:  created,
		UPI:    &details,
	}, nil
}

func (o *Orchestrator) payUPIID(ctx context.Context, token string, session *checkout.Session, crt Cart, created *Order, intent *backend.PaymentIntentResponse, upiID string) (*PlacementResult, error) {
	reference := o.upi.NewReference()
	if intent.UPI != nil && intent.UPI.Reference != "" {
		reference = intent.UPI.Reference
	}
	session.RecordUPI(reference, "", "", "")

	paid, err := o.payments.VerifyUPIPayment(ctx, token, reference, upiID)
	if err != nil {
		o.logger.WithFields(logrus.Fields{
			"order_id": created.ID,
			"error":    err.Error(),
		}).Error("UPI payment failed")
		return nil, checkout.NewError(checkout.KindPaymentProcessingFailed, "UPI payment failed", err)
	}

	created.Status = statusOf(paid)
	return o.finalize(ctx, session, crt, created)
}

func (o *Orchestrator) startWidget(session *checkout.Session, created *Order, intent *backend.PaymentIntentResponse) (*PlacementResult, error) {
	if intent.Razorpay == nil {
		return nil, checkout.NewError(checkout.KindPaymentIntentFailed, "backend did not return a checkout session", nil)
	}

	session.RecordWidget(intent.Razorpay.RazorpayOrderID, intent.Razorpay.KeyID)

	return &PlacementResult{
		Status: StatusAwaitingWidget,
		Order:  created,
		Razorpay: &payment.RazorpayCheckout{
			KeyID:           intent.Razorpay.KeyID,
			RazorpayOrderID: intent.Razorpay.RazorpayOrderID,
			Amount:          intent.Razorpay.Amount,
			Currency:        intent.Razorpay.Currency,
		},
	}, nil
}

// finalize clears the local cart and moves the session to Confirmation. A
// cart clear failure is logged but does not fail a paid order.
func (o *Orchestrator) finalize(ctx context.Context, session *checkout.Session, crt Cart, placed *Order) (*PlacementResult, error) {
	if err := crt.ClearLocalOnly(ctx); err != nil {
		o.logger.WithFields(logrus.Fields{
			"order_id": placed.ID,
			"error":    err.Error(),
		}).Warn("Failed to clear cart after order placement")
	}

	session.Complete()

	return &PlacementResult{
		Status: StatusCompleted,
		Order:  placed,
	}, nil
}

func statusOf(p *backend.Payment) string {
	if p != nil && p.Status != "" {
		return p.Status
	}
	return StatusPaid
}
