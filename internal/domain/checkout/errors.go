// internal/domain/checkout/errors.go
package checkout

import (
	"errors"
	"fmt"
)

// ErrorKind classifies checkout failures so handlers can map them to the
// right response without string matching.
type ErrorKind string

const (
	KindValidation                ErrorKind = "validation"
	KindOrderCreationFailed       ErrorKind = "order_creation_failed"
	KindPaymentIntentFailed       ErrorKind = "payment_intent_failed"
	KindPaymentProcessingFailed   ErrorKind = "payment_processing_failed"
	KindPaymentVerificationFailed ErrorKind = "payment_verification_failed"
	KindInvalidTransition         ErrorKind = "invalid_transition"
	KindEmptyCart                 ErrorKind = "empty_cart"
	KindBusy                      ErrorKind = "busy"
)

// Error is a classified checkout failure. Message is safe to show to the
// shopper; Err carries the underlying cause for logs.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a classified checkout error
func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error, or an empty kind when the error
// is not a checkout error
func KindOf(err error) ErrorKind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}
