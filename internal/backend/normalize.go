// internal/backend/normalize.go
package backend

import "encoding/json"

// The backend is loose about collection envelopes: a product list may arrive
// as {products: [...]}, {data: [...]}, or a bare array, and carts as
// {cart: {items: [...]}}, {items: [...]}, or a bare array. Shape guessing is
// confined to the decoders below; each yields a uniform slice plus an ok flag
// that is false when none of the known shapes matched. Callers treat a false
// flag as "no data", never as an empty collection.

// DecodeProducts normalizes a product-list response body
func DecodeProducts(body []byte) ([]Product, bool) {
	var keyed struct {
		Products []Product `json:"products"`
		Data     []Product `json:"data"`
	}
	if err := json.Unmarshal(body, &keyed); err == nil {
		if keyed.Products != nil {
			return keyed.Products, true
		}
		if keyed.Data != nil {
			return keyed.Data, true
		}
	}

	var bare []Product
	if err := json.Unmarshal(body, &bare); err == nil && bare != nil {
		return bare, true
	}

	return nil, false
}

// DecodeOrders normalizes an order-list response body
func DecodeOrders(body []byte) ([]Order, bool) {
	var keyed struct {
		Orders []Order `json:"orders"`
		Data   []Order `json:"data"`
	}
	if err := json.Unmarshal(body, &keyed); err == nil {
		if keyed.Orders != nil {
			return keyed.Orders, true
		}
		if keyed.Data != nil {
			return keyed.Data, true
		}
	}

	var bare []Order
	if err := json.Unmarshal(body, &bare); err == nil && bare != nil {
		return bare, true
	}

	return nil, false
}

// DecodeCartItems normalizes a cart response body to its item list. A well-
// formed item has at least a product with a non-empty id and a quantity of
// one or more; a response that matches no known shape, or whose items fail
// that check, yields ok=false so callers never wipe local state over it.
func DecodeCartItems(body []byte) ([]CartItem, bool) {
	var items []CartItem

	var nested struct {
		Cart *struct {
			Items []CartItem `json:"items"`
		} `json:"cart"`
		Items []CartItem `json:"items"`
	}
	if err := json.Unmarshal(body, &nested); err == nil {
		if nested.Cart != nil && nested.Cart.Items != nil {
			items = nested.Cart.Items
		} else if nested.Items != nil {
			items = nested.Items
		}
	}

	if items == nil {
		var bare []CartItem
		if err := json.Unmarshal(body, &bare); err == nil && bare != nil {
			items = bare
		}
	}

	if items == nil {
		return nil, false
	}

	for _, item := range items {
		if item.Product == nil || item.Product.ID == "" || item.Quantity < 1 {
			return nil, false
		}
	}

	return items, true
}
