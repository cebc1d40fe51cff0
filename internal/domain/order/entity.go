// internal/domain/order/entity.go
package order

import "github.com/your-org/storefront-gateway/internal/backend"

// Order status values as reported by the upstream backend
const (
	StatusPending    = "pending"
	StatusPaid       = "paid"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// Order is the gateway-side view of a placed order
type Order struct {
	ID              string          `json:"id"`
	Items           []Item          `json:"items"`
	Total           float64         `json:"total"`
	Status          string          `json:"status"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	CreatedAt       string          `json:"created_at,omitempty"`
}

// Item is one product line of an order
type Item struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// LineTotal returns the item price times its quantity
func (i Item) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// ShippingAddress is the address an order ships to
type ShippingAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
	Phone   string `json:"phone,omitempty"`
}

// FromBackend converts a wire order to the gateway view
func FromBackend(o *backend.Order) *Order {
	if o == nil {
		return nil
	}

	items := make([]Item, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, Item{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Price:       it.Price,
			Quantity:    it.Quantity,
		})
	}

	return &Order{
		ID:     o.ID,
		Items:  items,
		Total:  o.Total,
		Status: o.Status,
		ShippingAddress: ShippingAddress{
			Name:    o.ShippingAddress.Name,
			Address: o.ShippingAddress.Address,
			City:    o.ShippingAddress.City,
			State:   o.ShippingAddress.State,
			ZipCode: o.ShippingAddress.ZipCode,
			Country: o.ShippingAddress.Country,
			Phone:   o.ShippingAddress.Phone,
		},
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt,
	}
}

// FromBackendList converts a slice of wire orders
func FromBackendList(orders []backend.Order) []Order {
	out := make([]Order, 0, len(orders))
	for i := range orders {
		out = append(out, *FromBackend(&orders[i]))
	}
	return out
}
