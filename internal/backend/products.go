// internal/backend/products.go
package backend

import (
	"context"
	"net/http"
	"net/url"
)

// ListProducts retrieves the catalog, optionally filtered. Query values are
// passed through to the backend untouched.
func (c *Client) ListProducts(ctx context.Context, query url.Values) ([]Product, error) {
	endpoint := "/products"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	body, err := c.do(ctx, http.MethodGet, endpoint, "", nil)
	if err != nil {
		return nil, err
	}
	if err := decodeEnvelope(body, nil); err != nil {
		return nil, err
	}

	products, ok := DecodeProducts(body)
	if !ok {
		return []Product{}, nil
	}
	return products, nil
}

// GetProduct retrieves a single product by id
func (c *Client) GetProduct(ctx context.Context, productID string) (*Product, error) {
	body, err := c.do(ctx, http.MethodGet, "/products/"+productID, "", nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Product *Product `json:"product"`
		Data    *Product `json:"data"`
	}
	if err := decodeEnvelope(body, &resp); err != nil {
		return nil, err
	}
	if resp.Product != nil {
		return resp.Product, nil
	}
	if resp.Data != nil {
		return resp.Data, nil
	}
	return nil, &APIError{StatusCode: http.StatusOK, Message: "product not found in response"}
}

// CreateProduct creates a catalog product; requires an admin token upstream
func (c *Client) CreateProduct(ctx context.Context, token string, product map[string]interface{}) (*Product, error) {
	body, err := c.do(ctx, http.MethodPost, "/products", token, product)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Product *Product `json:"product"`
	}
	if err := decodeEnvelope(body, &resp); err != nil {
		return nil, err
	}
	return resp.Product, nil
}

// UpdateProduct updates a catalog product; requires an admin token upstream
func (c *Client) UpdateProduct(ctx context.Context, token, productID string, product map[string]interface{}) (*Product, error) {
	body, err := c.do(ctx, http.MethodPut, "/products/"+productID, token, product)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Product *Product `json:"product"`
	}
	if err := decodeEnvelope(body, &resp); err != nil {
		return nil, err
	}
	return resp.Product, nil
}

// DeleteProduct removes a catalog product; requires an admin token upstream
func (c *Client) DeleteProduct(ctx context.Context, token, productID string) error {
	body, err := c.do(ctx, http.MethodDelete, "/products/"+productID, token, nil)
	if err != nil {
		return err
	}
	return decodeEnvelope(body, nil)
}
