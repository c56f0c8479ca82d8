package model

import "time"

// EventType names a payment order lifecycle event.
type EventType string

const (
	EventOrderCreated EventType = "payment.order.created"
	EventOrderPaid    EventType = "payment.order.paid"
	EventOrderFailed  EventType = "payment.order.failed"
)

// EventTypeFor maps a settled status to its event type.
func EventTypeFor(status OrderStatus) EventType {
	switch status {
	case OrderStatusPaid:
		return EventOrderPaid
	case OrderStatusFailed:
		return EventOrderFailed
	default:
		return EventOrderCreated
	}
}

// PaymentEvent is an outbox record waiting to be published.
type PaymentEvent struct {
	ID        string
	OrderID   string
	Type      EventType
	Payload   []byte
	CreatedAt time.Time
}

// EventPayload is the JSON body carried by every payment event.
type EventPayload struct {
	OrderID    string      `json:"order_id"`
	UserID     string      `json:"user_id"`
	Amount     int64       `json:"amount"`
	Currency   string      `json:"currency"`
	Receipt    string      `json:"receipt"`
	Status     OrderStatus `json:"status"`
	PaymentID  string      `json:"payment_id,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// NewEventPayload snapshots the order for publication.
func NewEventPayload(order PaymentOrder, at time.Time) EventPayload {
	return EventPayload{
		OrderID:    order.OrderID,
		UserID:     order.UserID,
		Amount:     order.Amount,
		Currency:   order.Currency,
		Receipt:    order.Receipt,
		Status:     order.Status,
		PaymentID:  order.PaymentID,
		OccurredAt: at,
	}
}
