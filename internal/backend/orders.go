// internal/backend/orders.go
package backend

import (
	"context"
	"fmt"
	"net/http"
)

// CreateOrder creates an order record upstream from the finalized cart
func (c *Client) CreateOrder(ctx context.Context, token string, req CreateOrderRequest) (*Order, error) {
	body, err := c.do(ctx, http.MethodPost, "/orders", token, req)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Order *Order `json:"order"`
	}
	if err := decodeEnvelope(body, &resp); err != nil {
		return nil, err
	}
	if resp.Order == nil || resp.Order.ID == "" {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "backend did not return an order"}
	}

	return resp.Order, nil
}

// GetOrder retrieves a single order by id
func (c *Client) GetOrder(ctx context.Context, token, orderID string) (*Order, error) {
	body, err := c.do(ctx, http.MethodGet, "/orders/"+orderID, token, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Order *Order `json:"order"`
		Data  *Order `json:"data"`
	}
	if err := decodeEnvelope(body, &resp); err != nil {
		return nil, err
	}
	if resp.Order != nil {
		return resp.Order, nil
	}
	if resp.Data != nil {
		return resp.Data, nil
	}
	return nil, &APIError{StatusCode: http.StatusOK, Message: fmt.Sprintf("order %s not found in response", orderID)}
}

// ListMyOrders retrieves the authenticated user's order history
func (c *Client) ListMyOrders(ctx context.Context, token string) ([]Order, error) {
	body, err := c.do(ctx, http.MethodGet, "/orders/my-orders", token, nil)
	if err != nil {
		return nil, err
	}
	if err := decodeEnvelope(body, nil); err != nil {
		return nil, err
	}

	orders, ok := DecodeOrders(body)
	if !ok {
		return []Order{}, nil
	}
	return orders, nil
}

// ListAllOrders retrieves every order; requires an admin token upstream
func (c *Client) ListAllOrders(ctx context.Context, token string) ([]Order, error) {
	body, err := c.do(ctx, http.MethodGet, "/orders", token, nil)
	if err != nil {
		return nil, err
	}
	if err := decodeEnvelope(body, nil); err != nil {
		return nil, err
	}

	orders, ok := DecodeOrders(body)
	if !ok {
		return []Order{}, nil
	}
	return orders, nil
}

// UpdateOrderStatus updates an order's status; requires an admin token upstream
func (c *Client) UpdateOrderStatus(ctx context.Context, token, orderID, status string) (*Order, error) {
	body, err := c.do(ctx, http.MethodPut, "/orders/"+orderID+"/status", token, map[string]string{
		"status": status,
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Order *Order `json:"order"`
	}
	if err := decodeEnvelope(body, &resp); err != nil {
		return nil, err
	}
	return resp.Order, nil
}
