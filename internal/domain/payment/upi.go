// internal/domain/payment/upi.go
package payment

import (
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/your-org/storefront-gateway/internal/config"
)

// UPIService builds UPI payment artifacts: transaction references, deep
// link URIs and QR image URLs. Amounts are converted from the store
// currency to INR at a configured rate before they enter the URI.
type UPIService struct {
	payeeID   string
	payeeName string
	inrRate   float64
}

// NewUPIService creates a UPI service from payments and pricing config
func NewUPIService(cfg *config.Config) *UPIService {
	return &UPIService{
		payeeID:   cfg.Payments.UPIPayeeID,
		payeeName: cfg.Payments.UPIPayeeName,
		inrRate:   cfg.Pricing.INRConversionRate,
	}
}

// NewReference generates a unique transaction reference for one payment
// attempt
func (s *UPIService) NewReference() string {
	id := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("ORDER-%d-%s", time.Now().UnixMilli(), id)
}

// AmountINR converts a store-currency amount to INR, rounded to two
// decimals
func (s *UPIService) AmountINR(amount float64) float64 {
	return math.Round(amount*s.inrRate*100) / 100
}

// BuildURI renders the upi://pay deep link for the given amount and
// transaction reference
func (s *UPIService) BuildURI(amountINR float64, reference string) string {
	params := url.Values{}
	params.Set("pa", s.payeeID)
	params.Set("pn", s.payeeName)
	params.Set("am", fmt.Sprintf("%.2f", amountINR))
	params.Set("cu", "INR")
	params.Set("tr", reference)
	return "upi://pay?" + params.Encode()
}

// QRImageURL returns a QR image URL encoding the UPI URI
func (s *UPIService) QRImageURL(upiURI string) string {
	return "https://api.qrserver.com/v1/create-qr-code/?size=220x220&data=" + url.QueryEscape(upiURI)
}

// Details assembles the full UPI payload for a payment of the given
// store-currency amount
func (s *UPIService) Details(amount float64, reference string) UPIDetails {
	amountINR := s.AmountINR(amount)
	uri := s.BuildURI(amountINR, reference)
	return UPIDetails{
		URI:        uri,
		QRImageURL: s.QRImageURL(uri),
		Reference:  reference,
		PayeeID:    s.payeeID,
		AmountINR:  amountINR,
	}
}
