// internal/backend/cart.go
package backend

import (
	"context"
	"net/http"
)

// Remote cart endpoints. All of them require a bearer token; the gateway
// only calls them for authenticated sessions.

type cartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity,omitempty"`
}

// FetchCart retrieves the canonical remote cart. The ok flag is false when
// the response did not contain a well-formed item list.
func (c *Client) FetchCart(ctx context.Context, token string) ([]CartItem, bool, error) {
	body, err := c.do(ctx, http.MethodGet, "/cart", token, nil)
	if err != nil {
		return nil, false, err
	}
	if err := decodeEnvelope(body, nil); err != nil {
		return nil, false, err
	}

	items, ok := DecodeCartItems(body)
	return items, ok, nil
}

// AddCartItem mirrors a local add on the remote cart
func (c *Client) AddCartItem(ctx context.Context, token, productID string, quantity int) error {
	body, err := c.do(ctx, http.MethodPost, "/cart/add", token, cartItemRequest{
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		return err
	}
	return decodeEnvelope(body, nil)
}

// UpdateCartItem mirrors a local quantity change on the remote cart
func (c *Client) UpdateCartItem(ctx context.Context, token, productID string, quantity int) error {
	body, err := c.do(ctx, http.MethodPut, "/cart/update", token, cartItemRequest{
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		return err
	}
	return decodeEnvelope(body, nil)
}

// RemoveCartItem mirrors a local removal on the remote cart
func (c *Client) RemoveCartItem(ctx context.Context, token, productID string) error {
	body, err := c.do(ctx, http.MethodDelete, "/cart/remove", token, cartItemRequest{
		ProductID: productID,
	})
	if err != nil {
		return err
	}
	return decodeEnvelope(body, nil)
}

// ClearCart empties the remote cart
func (c *Client) ClearCart(ctx context.Context, token string) error {
	body, err := c.do(ctx, http.MethodDelete, "/cart/clear", token, nil)
	if err != nil {
		return err
	}
	return decodeEnvelope(body, nil)
}
