package model

import (
	"testing"
	"time"
)

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name     string
		got      OrderStatus
		value    string
		terminal bool
	}{
		{"created", OrderStatusCreated, "created", false},
		{"paid", OrderStatusPaid, "paid", true},
		{"failed", OrderStatusFailed, "failed", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
			if tc.got.IsTerminal() != tc.terminal {
				t.Fatalf("expected terminal=%v for %s", tc.terminal, tc.got)
			}
		})
	}
}

func TestParseCoins(t *testing.T) {
	cases := []struct {
		name  string
		notes map[string]string
		coins int64
		ok    bool
	}{
		{"absent", map[string]string{"email": "a@b.c"}, 0, true},
		{"nil notes", nil, 0, true},
		{"valid", map[string]string{NoteCoins: "100"}, 100, true},
		{"zero", map[string]string{NoteCoins: "0"}, 0, false},
		{"negative", map[string]string{NoteCoins: "-5"}, 0, false},
		{"not a number", map[string]string{NoteCoins: "ten"}, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			coins, ok := ParseCoins(tc.notes)
			if coins != tc.coins || ok != tc.ok {
				t.Fatalf("expected (%d,%v), got (%d,%v)", tc.coins, tc.ok, coins, ok)
			}
		})
	}

	order := PaymentOrder{Notes: map[string]string{NoteCoins: "bad"}}
	if order.Coins() != 0 {
		t.Fatalf("expected malformed coins to yield zero")
	}
}

func TestEventTypeFor(t *testing.T) {
	if EventTypeFor(OrderStatusPaid) != EventOrderPaid {
		t.Fatal("unexpected event for paid")
	}
	if EventTypeFor(OrderStatusFailed) != EventOrderFailed {
		t.Fatal("unexpected event for failed")
	}
	if EventTypeFor(OrderStatusCreated) != EventOrderCreated {
		t.Fatal("unexpected event for created")
	}
}

func TestNewEventPayload(t *testing.T) {
	at := time.Unix(100, 0)
	order := PaymentOrder{OrderID: "order_1", UserID: "u", Amount: 50000, Currency: "INR", Receipt: "r", Status: OrderStatusPaid, PaymentID: "pay_1"}
	payload := NewEventPayload(order, at)
	if payload.OrderID != "order_1" || payload.PaymentID != "pay_1" || payload.Status != OrderStatusPaid || !payload.OccurredAt.Equal(at) {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}
