package model

import (
	"strconv"
	"time"
)

// OrderStatus describes payment order lifecycle.
type OrderStatus string

const (
	OrderStatusCreated OrderStatus = "created"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"
)

// IsTerminal reports whether no further transition is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusPaid || s == OrderStatusFailed
}

const (
	// NoteCoins holds the purchased coin package size.
	NoteCoins = "coins"
	// NoteUserID is stamped by the server on every order.
	NoteUserID = "user_id"
)

// PaymentOrder is a gateway-issued order tracked locally until it is settled.
type PaymentOrder struct {
	OrderID            string
	UserID             string
	Amount             int64
	Currency           string
	Receipt            string
	Status             OrderStatus
	Notes              map[string]string
	PaymentID          string
	EntitlementPending bool
	CreatedAt          time.Time
	VerifiedAt         *time.Time
}

// Coins returns the coin quantity purchased with the order, or zero when absent or malformed.
func (o PaymentOrder) Coins() int64 {
	coins, ok := ParseCoins(o.Notes)
	if !ok {
		return 0
	}
	return coins
}

// ParseCoins reads the coins note. Absence is valid and yields zero.
func ParseCoins(notes map[string]string) (int64, bool) {
	raw, ok := notes[NoteCoins]
	if !ok {
		return 0, true
	}
	coins, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || coins <= 0 {
		return 0, false
	}
	return coins, true
}
