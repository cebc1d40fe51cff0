// internal/backend/types.go
package backend

// Wire types for the upstream commerce backend API. These mirror the JSON
// the backend speaks; domain packages convert them at their own boundary
// rather than using them directly.

// Product represents a catalog product as returned by the backend
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Image         string   `json:"image,omitempty"`
	Category      string   `json:"category,omitempty"`
	Discount      float64  `json:"discount,omitempty"`
	Rating        float64  `json:"rating,omitempty"`
	Stock         int      `json:"stock"`
	Tags          []string `json:"tags,omitempty"`
	CreatedAt     string   `json:"createdAt,omitempty"`
	UpdatedAt     string   `json:"updatedAt,omitempty"`
}

// CartItem represents one entry of the remote cart
type CartItem struct {
	Product  *Product `json:"product,omitempty"`
	Quantity int      `json:"quantity"`
}

// ShippingAddress is the address payload sent with order creation
type ShippingAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
	Phone   string `json:"phone,omitempty"`
}

// OrderItemRef references a product line when creating an order
type OrderItemRef struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest is the body of POST /orders
type CreateOrderRequest struct {
	Items           []OrderItemRef  `json:"items"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
}

// OrderItem represents a line of an existing order
type OrderItem struct {
	ID          string  `json:"id,omitempty"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// Order represents a backend-owned order record
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId,omitempty"`
	Items           []OrderItem     `json:"items,omitempty"`
	Total           float64         `json:"total"`
	Status          string          `json:"status"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	CreatedAt       string          `json:"createdAt,omitempty"`
	UpdatedAt       string          `json:"updatedAt,omitempty"`
}

// Payment represents a backend payment record
type Payment struct {
	ID               string  `json:"id"`
	OrderID          string  `json:"orderId"`
	Amount           float64 `json:"amount"`
	Method           string  `json:"method"`
	Status           string  `json:"status"`
	PaymentReference string  `json:"paymentReference,omitempty"`
}

// UPIPayload carries UPI-specific data returned by intent creation
type UPIPayload struct {
	QRCode    string `json:"qrCode"`
	Reference string `json:"reference"`
	UPIID     string `json:"upiId"`
}

// RazorpayPayload carries a hosted-checkout session returned by intent
// creation when the backend delegates to the Razorpay widget
type RazorpayPayload struct {
	KeyID           string  `json:"keyId"`
	RazorpayOrderID string  `json:"razorpayOrderId"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
}

// User represents the authenticated backend user
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// AuthResponse is the result of login/register
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
