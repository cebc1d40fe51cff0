// internal/domain/cart/errors.go
package cart

import "errors"

var (
	// ErrInsufficientStock is returned when a requested quantity exceeds
	// the locally known stock of the product
	ErrInsufficientStock = errors.New("not enough stock available")

	// ErrItemNotFound is returned when an operation targets a product id
	// that is not in the cart
	ErrItemNotFound = errors.New("product not found in cart")
)
