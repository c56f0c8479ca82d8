package model

// CreateOrderRequest is the checkout input of an authenticated user.
type CreateOrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

// VerifyRequest carries the gateway checkout callback fields.
type VerifyRequest struct {
	OrderID   string
	PaymentID string
	Signature string
}

// VerificationResult reports the order state after a verification attempt.
type VerificationResult struct {
	Order *PaymentOrder
	// AlreadyProcessed is set when the order was settled before this call.
	AlreadyProcessed bool
	// Ignored is set for webhook events that do not settle orders.
	Ignored bool
}
