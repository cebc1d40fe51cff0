// internal/domain/order/orchestrator_test.go
package order

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-gateway/internal/backend"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/domain/cart"
	"github.com/your-org/storefront-gateway/internal/domain/checkout"
	"github.com/your-org/storefront-gateway/internal/domain/payment"
)

type fakeBackend struct {
	createOrderErr  error
	intentErr       error
	cardErr         error
	upiVerifyErr    error
	widgetVerifyErr error

	intentUPI      *backend.UPIPayload
	intentRazorpay *backend.RazorpayPayload

	ordersCreated int
	upiVerifies   int
}

func (f *fakeBackend) CreateOrder(ctx context.Context, token string, req backend.CreateOrderRequest) (*backend.Order, error) {
	if f.createOrderErr != nil {
		return nil, f.createOrderErr
	}
	f.ordersCreated++
	total := 0.0
	for _, item := range req.Items {
		total += float64(item.Quantity) * 10
	}
	return &backend.Order{ID: "ord-1", Total: total, Status: "pending"}, nil
}

func (f *fakeBackend) CreatePaymentIntent(ctx context.Context, token, orderID, method string) (*backend.PaymentIntentResponse, error) {
	if f.intentErr != nil {
		return nil, f.intentErr
	}
	return &backend.PaymentIntentResponse{
		Payment:  &backend.Payment{ID: "pay-1", OrderID: orderID, Method: method, Status: "pending"},
		UPI:      f.intentUPI,
		Razorpay: f.intentRazorpay,
	}, nil
}

func (f *fakeBackend) ProcessCardPayment(ctx context.Context, token, paymentID string, card backend.CardPayload) (*backend.Payment, error) {
	if f.cardErr != nil {
		return nil, f.cardErr
	}
	return &backend.Payment{ID: paymentID, Status: "paid"}, nil
}

func (f *fakeBackend) VerifyUPIPayment(ctx context.Context, token, reference, upiID string) (*backend.Payment, error) {
	f.upiVerifies++
	if f.upiVerifyErr != nil {
		return nil, f.upiVerifyErr
	}
	return &backend.Payment{ID: "pay-1", Status: "paid", PaymentReference: reference}, nil
}

func (f *fakeBackend) VerifyPayment(ctx context.Context, token string, payload map[string]string) (*backend.Payment, error) {
	if f.widgetVerifyErr != nil {
		return nil, f.widgetVerifyErr
	}
	return &backend.Payment{ID: "pay-1", Status: "paid"}, nil
}

type fakeCart struct {
	items   []cart.CartItem
	cleared bool
}

func (f *fakeCart) Items() []cart.CartItem { return f.items }

func (f *fakeCart) Totals() cart.Totals {
	var t cart.Totals
	for _, item := range f.items {
		t.ItemCount += item.Quantity
		t.Subtotal += item.Product.Price * float64(item.Quantity)
	}
	return t
}

func (f *fakeCart) ClearLocalOnly(ctx context.Context) error {
	f.cleared = true
	f.items = nil
	return nil
}

func testUPIService() *payment.UPIService {
	return payment.NewUPIService(&config.Config{
		Payments: config.PaymentsConfig{UPIPayeeID: "shopease@ybl", UPIPayeeName: "ShopEase"},
		Pricing:  config.PricingConfig{INRConversionRate: 83},
	})
}

func newOrchestrator(api *fakeBackend) *Orchestrator {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewOrchestrator(api, api, testUPIService(), logger)
}

func paymentReadySession(t *testing.T, method string) *checkout.Session {
	t.Helper()
	session := checkout.NewSession(true)
	require.NoError(t, session.SetShipping(checkout.ShippingForm{
		Name:    "Jordan Shopper",
		Email:   "jordan@example.com",
		Address: "1 Main St",
		City:    "Springfield",
		State:   "IL",
		ZipCode: "62704",
		Country: "US",
	}))
	require.NoError(t, session.Advance(checkout.StepPayment))
	require.NoError(t, session.SetPaymentMethod(method))
	return session
}

func cartWithItem() *fakeCart {
	return &fakeCart{items: []cart.CartItem{
		{Product: cart.Product{ID: "p1", Name: "Widget", Price: 10, Stock: 5}, Quantity: 2},
	}}
}

func validCard() *checkout.CardDetails {
	return &checkout.CardDetails{
		Number: "4111111111111111",
		Name:   "Jordan Shopper",
		Expiry: "12/27",
		CVV:    "123",
	}
}

func TestPlaceOrder_CardHappyPath(t *testing.T) {
	api := &fakeBackend{}
	orch := newOrchestrator(api)
	session := paymentReadySession(t, checkout.MethodCard)
	crt := cartWithItem()

	result, err := orch.PlaceOrder(context.Background(), "token", session, crt, PlaceRequest{Card: validCard()})
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, "ord-1", result.Order.ID)
	assert.True(t, crt.cleared)
	assert.Equal(t, checkout.StepConfirmation, session.Step())
}

func TestPlaceOrder_EmptyCartRejected(t *testing.T) {
	api := &fakeBackend{}
	orch := newOrchestrator(api)
	session := paymentReadySession(t, checkout.MethodCard)

	_, err := orch.PlaceOrder(context.Background(), "token", session, &fakeCart{}, PlaceRequest{Card: validCard()})
	require.Error(t, err)
	assert.Equal(t, checkout.KindEmptyCart, checkout.KindOf(err))
	assert.Equal(t, 0, api.ordersCreated)
}

func TestPlaceOrder_InvalidCardRejectedBeforeOrderCreation(t *testing.T) {
	api := &fakeBackend{}
	orch := newOrchestrator(api)
	session := paymentReadySession(t, checkout.MethodCard)

	_, err := orch.PlaceOrder(context.Background(), "token", session, cartWithItem(), PlaceRequest{
		Card: &checkout.CardDetails{Number: "1234"},
	})
	require.Error(t, err)
	assert.Equal(t, checkout.KindValidation, checkout.KindOf(err))
	assert.Equal(t, 0, api.ordersCreated)
}

func TestPlaceOrder_OrderCreationFailure(t *testing.T) {
	api := &fakeBackend{createOrderErr: errors.New("upstream 500")}
	orch := newOrchestrator(api)
	session := paymentReadySession(t, checkout.MethodCard)
	crt := cartWithItem()

	_, err := orch.PlaceOrder(context.Background(), "token", session, crt, PlaceRequest{Card: validCard()})
	require.Error(t, err)
	assert.Equal(t, checkout.KindOrderCreationFailed, checkout.KindOf(err))

	// Cart and step are untouched on failure
	assert.False(t, crt.cleared)
	assert.Equal(t, checkout.StepPayment, session.Step())
}

func TestPlaceOrder_IntentFailure(t *testing.T) {
	api := &fakeBackend{intentErr: errors.New("upstream 502")}
	orch := newOrchestrator(api)
	session := paymentReadySession(t, checkout.MethodCard)
	crt := cartWithItem()

	_, err := orch.PlaceOrder(context.Background(), "token", session, crt, PlaceRequest{Card: validCard()})
	require.Error(t, err)
	assert.Equal(t, checkout.KindPaymentIntentFailed, checkout.KindOf(err))
	assert.False(t, crt.cleared)
}

func TestPlaceOrder_CardProcessingFailureKeepsCart(t *testing.T) {
	api := &fakeBackend{cardErr: errors.New("declined")}
	orch := newOrchestrator(api)
	session := paymentReadySession(t, checkout.MethodCard)
	crt := cartWithItem()

	_, err := orch.PlaceOrder(context.Background(), "token", session, crt, PlaceRequest{Card: validCard()})
	require.Error(t, err)
	assert.Equal(t, checkout.KindPaymentProcessingFailed, checkout.KindOf(err))
	assert.False(t, crt.cleared)
	assert.Equal(t, checkout.StepPayment, session.Step())
}

func TestPlaceOrder_UPIQRAwaitsConfirmation(t *testing.T) {
	api := &fakeBackend{}
	orch := newOrchestrator(api)
	session := paymentReadySession(t, checkout.MethodUPIQR)
	crt := cartWithItem()

	result, err := orch.PlaceOrder(context.Background(), "token", session, crt, PlaceRequest{})
	require.NoError(t, err)

	assert.Equal(t, StatusAwaitingUPI, result.Status)
	require.NotNil(t, result.UPI)
	assert.Contains(t, result.UPI.URI, "upi://pay?")
	assert.NotEmpty(t, result.UPI.Reference)

	// Cart survives until the payment is confirmed
	assert.False(t, crt.cleared)
	assert.Equal(t, checkout.StepPayment, session.Step())
}

func TestPlaceOrder_UPIQRUsesBackendReference(t *testing.T) {
	api := &fakeBackend{intentUPI: &backend.UPIPayload{Reference: "BACKEND-REF-1"}}
	orch := newOrchestrator(api)
	session := paymentReadySession(t, checkout.MethodUPIQR)

	result, err := orch.PlaceOrder(context.Background(), "token", session, cartWithItem(), PlaceRequest{})
	require.NoError(t, err)
	assert.Equal(t, "BACKEND-REF-1", result.UPI.Reference)
}

func TestConfirmUPI_RetryableAfterFailure(t *testing.T) {
	api := &fakeBackend{}
	orch := newOrchestrator(api)
	session := paymentReadySession(t, checkout.MethodUPIQR)
	crt := cartWithItem()

	_, err := orch.PlaceOrder(context.Background(), "token", session, crt, PlaceRequest{})
	require.NoError(t, err)

	// First verification fails; nothing is torn down
	api.upiVerifyErr = errors.New("not paid yet")
	_, err = orch.ConfirmUPI(context.Background(), "token", session, crt, "")
	require.Error(t, err)
	assert.Equal(t, checkout.KindPaymentVerificationFailed, checkout.KindOf(err))
	assert.False(t, crt.cleared)

	// Retry succeeds without re-creating the order
	api.upiVerifyErr = nil
	result, err := orch.ConfirmUPI(context.Background(), "token", session, crt, "")
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, result.Status)
	assert.True(t, crt.cleared)
	assert.Equal(t, checkout.StepConfirmation, session.Step())
	assert.Equal(t, 1, api.ordersCreated)
}

func TestConfirmUPI_NoPendingPayment(t *testing.T) {
	orch := newOrchestrator(&fakeBackend{})
	session := paymentReadySession(t, checkout.MethodUPIQR)

	_, err := orch.ConfirmUPI(context.Background(), "token", session, cartWithItem(), "")
	require.Error(t, err)
	assert.Equal(t, checkout.KindValidation, checkout.KindOf(err))
}

func TestPlaceOrder_UPIIDVerifiesInline(t *testing.T) {
	api := &fakeBackend{}
	orch := newOrchestrator(api)
	session := paymentReadySession(t, checkout.MethodUPIID)
	crt := cartWithItem()

	result, err := orch.PlaceOrder(context.Background(), "token", session, crt, PlaceRequest{UPIID: "jordan@ybl"})
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, result.Status)
	assert.True(t, crt.cleared)
	assert.Equal(t, 1, api.upiVerifies)
}

func TestPlaceOrder_UPIIDInvalidRejected(t *testing.T) {
	api := &fakeBackend{}
	orch := newOrchestrator(api)
	session := paymentReadySession(t, checkout.MethodUPIID)

	_, err := orch.PlaceOrder(context.Background(), "token", session, cartWithItem(), PlaceRequest{UPIID: "no-at-sign"})
	require.Error(t, err)
	assert.Equal(t, checkout.KindValidation, checkout.KindOf(err))
	assert.Equal(t, 0, api.ordersCreated)
}

func TestPlaceOrder_RazorpayHandsOffToWidget(t *testing.T) {
	api := &fakeBackend{intentRazorpay: &backend.RazorpayPayload{
		KeyID:           "rzp_test_key",
		RazorpayOrderID: "rzp-ord-1",
		Amount:          2000,
		Currency:        "INR",
	}}
	orch := newOrchestrator(api)
	session := paymentReadySession(t, checkout.MethodRazorpay)
	crt := cartWithItem()

	result, err := orch.PlaceOrder(context.Background(), "token", session, crt, PlaceRequest{})
	require.NoError(t, err)

	assert.Equal(t, StatusAwaitingWidget, result.Status)
	require.NotNil(t, result.Razorpay)
	assert.Equal(t, "rzp-ord-1", result.Razorpay.RazorpayOrderID)
	assert.False(t, crt.cleared)
}

func TestCompleteWidget(t *testing.T) {
	api := &fakeBackend{intentRazorpay: &backend.RazorpayPayload{KeyID: "k", RazorpayOrderID: "r", Currency: "INR"}}
	orch := newOrchestrator(api)
	session := paymentReadySession(t, checkout.MethodRazorpay)
	crt := cartWithItem()

	_, err := orch.PlaceOrder(context.Background(), "token", session, crt, PlaceRequest{})
	require.NoError(t, err)

	result, err := orch.CompleteWidget(context.Background(), "token", session, crt, map[string]string{
		"razorpay_payment_id": "rp-1",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, result.Status)
	assert.True(t, crt.cleared)
	assert.Equal(t, checkout.StepConfirmation, session.Step())
}

func TestConfirmUPI_BusyFlagBlocksConcurrentConfirmation(t *testing.T) {
	api := &fakeBackend{}
	orch := newOrchestrator(api)
	session := paymentReadySession(t, checkout.MethodUPIQR)
	crt := cartWithItem()

	_, err := orch.PlaceOrder(context.Background(), "token", session, crt, PlaceRequest{})
	require.NoError(t, err)

	require.NoError(t, session.BeginPlacement())
	defer session.EndPlacement()

	_, err = orch.ConfirmUPI(context.Background(), "token", session, crt, "")
	require.Error(t, err)
	assert.Equal(t, checkout.KindBusy, checkout.KindOf(err))
	assert.Equal(t, 0, api.upiVerifies)
}

func TestCompleteWidget_BusyFlagBlocksConcurrentCompletion(t *testing.T) {
	api := &fakeBackend{intentRazorpay: &backend.RazorpayPayload{KeyID: "k", RazorpayOrderID: "r", Currency: "INR"}}
	orch := newOrchestrator(api)
	session := paymentReadySession(t, checkout.MethodRazorpay)
	crt := cartWithItem()

	_, err := orch.PlaceOrder(context.Background(), "token", session, crt, PlaceRequest{})
	require.NoError(t, err)

	require.NoError(t, session.BeginPlacement())
	defer session.EndPlacement()

	_, err = orch.CompleteWidget(context.Background(), "token", session, crt, map[string]string{"razorpay_payment_id": "rp-1"})
	require.Error(t, err)
	assert.Equal(t, checkout.KindBusy, checkout.KindOf(err))
	assert.False(t, crt.cleared)
}

// Exercised under -race: session reads must stay consistent while a
// placement is writing session state.
func TestPlaceOrder_SnapshotSafeDuringPlacement(t *testing.T) {
	api := &fakeBackend{}
	orch := newOrchestrator(api)
	session := paymentReadySession(t, checkout.MethodUPIQR)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			_ = session.Snapshot()
		}
	}()

	for i := 0; i < 20; i++ {
		crt := cartWithItem()
		result, err := orch.PlaceOrder(context.Background(), "token", session, crt, PlaceRequest{})
		require.NoError(t, err)
		require.Equal(t, StatusAwaitingUPI, result.Status)
	}
	<-done

	snap := session.Snapshot()
	assert.NotEmpty(t, snap.OrderID)
	assert.NotEmpty(t, snap.PaymentReference)
	assert.Contains(t, snap.UPIURI, "upi://pay?")
}

func TestPlaceOrder_BusyFlagBlocksSecondAttempt(t *testing.T) {
	api := &fakeBackend{}
	orch := newOrchestrator(api)
	session := paymentReadySession(t, checkout.MethodCard)

	require.NoError(t, session.BeginPlacement())
	defer session.EndPlacement()

	_, err := orch.PlaceOrder(context.Background(), "token", session, cartWithItem(), PlaceRequest{Card: validCard()})
	require.Error(t, err)
	assert.Equal(t, checkout.KindBusy, checkout.KindOf(err))
}
