package dto

import "time"

// CreateOrderRequest is the checkout body.
type CreateOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// OrderSummary is the client-safe view of a freshly created order.
type OrderSummary struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// CreateOrderResponse wraps a created order.
type CreateOrderResponse struct {
	Success bool         `json:"success"`
	Order   OrderSummary `json:"order"`
}

// VerifyRequest carries the checkout callback fields.
type VerifyRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// VerifyResponse reports the settled order status.
type VerifyResponse struct {
	Success          bool   `json:"success"`
	OrderID          string `json:"order_id"`
	Status           string `json:"status"`
	AlreadyProcessed bool   `json:"already_processed"`
}

// WebhookResponse acknowledges a gateway webhook.
type WebhookResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse is returned by payment endpoints on failure.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// OrderResponse describes an order in the user's history.
type OrderResponse struct {
	ID         string     `json:"id"`
	Amount     int64      `json:"amount"`
	Currency   string     `json:"currency"`
	Receipt    string     `json:"receipt"`
	Status     string     `json:"status"`
	PaymentID  string     `json:"payment_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
}
