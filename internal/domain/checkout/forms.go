// internal/domain/checkout/forms.go
package checkout

import (
	"regexp"
	"strconv"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Payment method identifiers as the flow understands them
const (
	MethodCard     = "card"
	MethodUPIQR    = "upi-qr"
	MethodUPIID    = "upi-id"
	MethodRazorpay = "razorpay"
)

// IsValidPaymentMethod reports whether the method is one the flow supports
func IsValidPaymentMethod(method string) bool {
	switch method {
	case MethodCard, MethodUPIQR, MethodUPIID, MethodRazorpay:
		return true
	}
	return false
}

// ShippingForm carries the address fields collected at the Shipping step
type ShippingForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
}

// Validate checks all required fields and returns a field-to-message map,
// empty when the form is valid.
func (f ShippingForm) Validate() map[string]string {
	fieldErrors := make(map[string]string)

	if strings.TrimSpace(f.Name) == "" {
		fieldErrors["name"] = "Name is required"
	}
	if strings.TrimSpace(f.Email) == "" {
		fieldErrors["email"] = "Email is required"
	} else if !emailPattern.MatchString(f.Email) {
		fieldErrors["email"] = "Email is invalid"
	}
	if strings.TrimSpace(f.Address) == "" {
		fieldErrors["address"] = "Address is required"
	}
	if strings.TrimSpace(f.City) == "" {
		fieldErrors["city"] = "City is required"
	}
	if strings.TrimSpace(f.State) == "" {
		fieldErrors["state"] = "State is required"
	}
	if strings.TrimSpace(f.ZipCode) == "" {
		fieldErrors["zip_code"] = "ZIP code is required"
	}
	if strings.TrimSpace(f.Country) == "" {
		fieldErrors["country"] = "Country is required"
	}

	return fieldErrors
}

// CardDetails carries card fields collected at the Payment step. They are
// validated for shape only and forwarded to the payment processor; nothing
// here is stored.
type CardDetails struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

// Validate checks card field shapes and returns a field-to-message map
func (c CardDetails) Validate() map[string]string {
	fieldErrors := make(map[string]string)

	digits := strings.ReplaceAll(c.Number, " ", "")
	if len(digits) != 16 || !isDigits(digits) {
		fieldErrors["number"] = "Card number must be 16 digits"
	}
	if strings.TrimSpace(c.Name) == "" {
		fieldErrors["name"] = "Cardholder name is required"
	}
	if !isValidExpiry(c.Expiry) {
		fieldErrors["expiry"] = "Expiry must be in MM/YY format"
	}
	if len(c.CVV) != 3 || !isDigits(c.CVV) {
		fieldErrors["cvv"] = "CVV must be 3 digits"
	}

	return fieldErrors
}

// ValidateUPIID checks a shopper-entered UPI id for shape
func ValidateUPIID(upiID string) map[string]string {
	fieldErrors := make(map[string]string)
	if !strings.Contains(upiID, "@") || strings.TrimSpace(upiID) == "" {
		fieldErrors["upi_id"] = "Enter a valid UPI ID"
	}
	return fieldErrors
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isValidExpiry(expiry string) bool {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return false
	}
	if !isDigits(parts[0]) || !isDigits(parts[1]) {
		return false
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	return true
}
