// internal/domain/checkout/session.go
package checkout

import (
	"sync"
	"time"
)

// Step is a position in the checkout flow. Steps are ordered; the flow
// only ever moves along the transitions table below.
type Step int

const (
	StepAccount Step = iota
	StepShipping
	StepPayment
	StepConfirmation
)

var stepNames = map[Step]string{
	StepAccount:      "account",
	StepShipping:     "shipping",
	StepPayment:      "payment",
	StepConfirmation: "confirmation",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// transitions lists the allowed step moves. Confirmation is terminal;
// backward moves stop at Shipping so a placed order cannot be re-entered.
var transitions = map[Step][]Step{
	StepAccount:  {StepShipping},
	StepShipping: {StepPayment},
	StepPayment:  {StepShipping, StepConfirmation},
}

func canTransition(from, to Step) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Session is the checkout state for one device session. All mutation goes
// through its methods under the session lock.
type Session struct {
	mu sync.Mutex

	step          Step
	authenticated bool

	shipping      ShippingForm
	paymentMethod string

	orderID          string
	paymentID        string
	paymentReference string
	upiURI           string
	upiQRCode        string
	payeeUPIID       string
	razorpayOrderID  string
	razorpayKeyID    string

	orderComplete bool
	busy          bool

	lastActive time.Time
}

// NewSession starts a checkout at the Account step, or directly at
// Shipping when the shopper is already authenticated.
func NewSession(authenticated bool) *Session {
	step := StepAccount
	if authenticated {
		step = StepShipping
	}
	return &Session{
		step:          step,
		authenticated: authenticated,
		lastActive:    time.Now(),
	}
}

// Step returns the current step
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Authenticated reports whether the session entered checkout with a token
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// MarkAuthenticated records a successful sign-in during the Account step
// and advances to Shipping.
func (s *Session) MarkAuthenticated() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.authenticated = true
	if s.step == StepAccount {
		s.step = StepShipping
	}
	s.touch()
	return nil
}

// Advance moves the flow to the requested step, enforcing the transition
// table. Advancing past Shipping requires a valid shipping form; advancing
// to Confirmation requires a completed order.
func (s *Session) Advance(to Step) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !canTransition(s.step, to) {
		return NewError(KindInvalidTransition, "cannot move from "+s.step.String()+" to "+to.String(), nil)
	}
	if to == StepPayment {
		if fieldErrors := s.shipping.Validate(); len(fieldErrors) > 0 {
			return NewError(KindValidation, "shipping details are incomplete", nil)
		}
	}
	if to == StepConfirmation && !s.orderComplete {
		return NewError(KindInvalidTransition, "no completed order to confirm", nil)
	}

	s.step = to
	s.touch()
	return nil
}

// SetShipping stores the validated shipping form
func (s *Session) SetShipping(form ShippingForm) error {
	if fieldErrors := form.Validate(); len(fieldErrors) > 0 {
		return NewError(KindValidation, "shipping details are invalid", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.shipping = form
	s.touch()
	return nil
}

// Shipping returns the stored shipping form
func (s *Session) Shipping() ShippingForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shipping
}

// SetPaymentMethod records the chosen payment method
func (s *Session) SetPaymentMethod(method string) error {
	if !IsValidPaymentMethod(method) {
		return NewError(KindValidation, "unsupported payment method", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.paymentMethod = method
	s.touch()
	return nil
}

// PaymentMethod returns the chosen payment method, or "" before one is set
func (s *Session) PaymentMethod() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paymentMethod
}

// RecordOrder stores the backend identifiers of a created order and its
// payment intent
func (s *Session) RecordOrder(orderID, paymentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderID = orderID
	s.paymentID = paymentID
	s.touch()
}

// OrderID returns the backend id of the order being placed, or "" before
// one exists
func (s *Session) OrderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderID
}

// RecordUPI stores the UPI transaction reference a pending confirmation
// verifies against, plus any shopper-facing payment details
func (s *Session) RecordUPI(reference, uri, qrImageURL, payeeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paymentReference = reference
	s.upiURI = uri
	s.upiQRCode = qrImageURL
	s.payeeUPIID = payeeID
	s.touch()
}

// PaymentReference returns the UPI transaction reference, or "" when no
// UPI payment is pending
func (s *Session) PaymentReference() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paymentReference
}

// RecordWidget stores the hosted-widget checkout identifiers
func (s *Session) RecordWidget(razorpayOrderID, keyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.razorpayOrderID = razorpayOrderID
	s.razorpayKeyID = keyID
	s.touch()
}

// BeginPlacement sets the busy flag, rejecting concurrent submissions
func (s *Session) BeginPlacement() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return NewError(KindBusy, "an order is already being placed", nil)
	}
	if s.step != StepPayment {
		return NewError(KindInvalidTransition, "order can only be placed from the payment step", nil)
	}
	s.busy = true
	s.touch()
	return nil
}

// EndPlacement clears the busy flag
func (s *Session) EndPlacement() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	s.touch()
}

// Complete marks the order paid and moves the flow to Confirmation
func (s *Session) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderComplete = true
	s.step = StepConfirmation
	s.touch()
}

// Snapshot returns a copy of the session safe to serialize for responses
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SessionSnapshot{
		Step:             s.step.String(),
		Authenticated:    s.authenticated,
		Shipping:         s.shipping,
		PaymentMethod:    s.paymentMethod,
		OrderID:          s.orderID,
		PaymentReference: s.paymentReference,
		UPIURI:           s.upiURI,
		UPIQRCode:        s.upiQRCode,
		RazorpayOrderID:  s.razorpayOrderID,
		RazorpayKeyID:    s.razorpayKeyID,
		OrderComplete:    s.orderComplete,
	}
}

// SessionSnapshot is the response-facing view of a checkout session
type SessionSnapshot struct {
	Step             string       `json:"step"`
	Authenticated    bool         `json:"authenticated"`
	Shipping         ShippingForm `json:"shipping"`
	PaymentMethod    string       `json:"payment_method,omitempty"`
	OrderID          string       `json:"order_id,omitempty"`
	PaymentReference string       `json:"payment_reference,omitempty"`
	UPIURI           string       `json:"upi_uri,omitempty"`
	UPIQRCode        string       `json:"upi_qr_code,omitempty"`
	RazorpayOrderID  string       `json:"razorpay_order_id,omitempty"`
	RazorpayKeyID    string       `json:"razorpay_key_id,omitempty"`
	OrderComplete    bool         `json:"order_complete"`
}

// caller must hold s.mu
func (s *Session) touch() {
	s.lastActive = time.Now()
}

// idleSince reports whether the session has been inactive past the cutoff
func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive.Before(cutoff)
}
