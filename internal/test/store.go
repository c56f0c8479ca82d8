package test

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/devxkamlesh/dailyos-payments/internal/domain/errors"
	"github.com/devxkamlesh/dailyos-payments/internal/domain/model"
	"github.com/devxkamlesh/dailyos-payments/internal/domain/repository"
)

// PaymentStore keeps orders, balances and outbox events in memory. Status
// transitions are compare-and-swap operations under a single mutex, matching
// the conditional update the SQL store performs.
type PaymentStore struct {
	mu       sync.Mutex
	orders   map[string]*model.PaymentOrder
	inserted []string
	balances map[string]int64
	grants   map[string]int
	events   []model.PaymentEvent
	sent     map[string]bool
	grantErr error
	nextID   int
}

var (
	_ repository.PaymentOrderRepository = (*PaymentStore)(nil)
	_ repository.BalanceRepository      = (*PaymentStore)(nil)
	_ repository.EventRepository        = (*PaymentStore)(nil)
)

// NewPaymentStore returns an empty store.
func NewPaymentStore() *PaymentStore {
	return &PaymentStore{
		orders:   make(map[string]*model.PaymentOrder),
		balances: make(map[string]int64),
		grants:   make(map[string]int),
		sent:     make(map[string]bool),
	}
}

// Put seeds an order as-is.
func (s *PaymentStore) Put(order model.PaymentOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := cloneOrder(order)
	if _, ok := s.orders[order.OrderID]; !ok {
		s.inserted = append(s.inserted, order.OrderID)
	}
	s.orders[order.OrderID] = &stored
}

// Order returns a copy of the stored order.
func (s *PaymentStore) Order(orderID string) (model.PaymentOrder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return model.PaymentOrder{}, false
	}
	return cloneOrder(*o), true
}

// Balance returns the coins credited to the user.
func (s *PaymentStore) Balance(userID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[userID]
}

// Grants reports how many times the order's coins were credited.
func (s *PaymentStore) Grants(orderID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grants[orderID]
}

// SetGrantError makes every subsequent GrantEntitlement fail with err. Nil restores success.
func (s *PaymentStore) SetGrantError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grantErr = err
}

// Events returns every outbox event in insertion order.
func (s *PaymentStore) Events() []model.PaymentEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.PaymentEvent, len(s.events))
	copy(out, s.events)
	return out
}

// Unsent returns the number of events not yet dispatched.
func (s *PaymentStore) Unsent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.events {
		if !s.sent[e.ID] {
			n++
		}
	}
	return n
}

func (s *PaymentStore) CreateIfAbsent(_ context.Context, order *model.PaymentOrder) (*model.PaymentOrder, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.orders[order.OrderID]; ok {
		o := cloneOrder(*existing)
		return &o, false, nil
	}
	stored := cloneOrder(*order)
	stored.Status = model.OrderStatusCreated
	stored.PaymentID = ""
	stored.EntitlementPending = false
	stored.VerifiedAt = nil
	stored.CreatedAt = time.Now()
	s.orders[order.OrderID] = &stored
	s.inserted = append(s.inserted, order.OrderID)
	s.appendEventLocked(stored, stored.CreatedAt)

	o := cloneOrder(stored)
	return &o, true, nil
}

func (s *PaymentStore) Get(_ context.Context, orderID string) (*model.PaymentOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := cloneOrder(*o)
	return &out, nil
}

// ListByUser returns the user's orders newest first. Orders created within the
// same clock tick keep reverse insertion order.
func (s *PaymentStore) ListByUser(_ context.Context, userID string) ([]model.PaymentOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.PaymentOrder
	for i := len(s.inserted) - 1; i >= 0; i-- {
		if o := s.orders[s.inserted[i]]; o.UserID == userID {
			result = append(result, cloneOrder(*o))
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *PaymentStore) CompareAndSwapStatus(_ context.Context, orderID string, from, to model.OrderStatus, paymentID string) (*model.PaymentOrder, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok || o.Status != from {
		return nil, false, nil
	}
	now := time.Now()
	o.Status = to
	if paymentID != "" {
		o.PaymentID = paymentID
	}
	o.VerifiedAt = &now
	o.EntitlementPending = to == model.OrderStatusPaid
	s.appendEventLocked(*o, now)

	out := cloneOrder(*o)
	return &out, true, nil
}

func (s *PaymentStore) SelectPendingEntitlements(_ context.Context, limit int) ([]model.PaymentOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.PaymentOrder
	for _, o := range s.orders {
		if len(result) >= limit {
			break
		}
		if o.Status == model.OrderStatusPaid && o.EntitlementPending {
			result = append(result, cloneOrder(*o))
		}
	}
	return result, nil
}

func (s *PaymentStore) GetSummary(_ context.Context, userID string) (*model.BalanceSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &model.BalanceSummary{Coins: s.balances[userID]}, nil
}

func (s *PaymentStore) GrantEntitlement(_ context.Context, orderID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.grantErr != nil {
		return false, s.grantErr
	}
	o, ok := s.orders[orderID]
	if !ok || o.Status != model.OrderStatusPaid || !o.EntitlementPending {
		return false, nil
	}
	o.EntitlementPending = false
	s.balances[o.UserID] += o.Coins()
	s.grants[orderID]++
	return true, nil
}

func (s *PaymentStore) DispatchPending(ctx context.Context, limit int, publish func(context.Context, model.PaymentEvent) error) (int, error) {
	s.mu.Lock()
	var batch []model.PaymentEvent
	for _, e := range s.events {
		if len(batch) >= limit {
			break
		}
		if !s.sent[e.ID] {
			batch = append(batch, e)
		}
	}
	s.mu.Unlock()

	sent := 0
	for _, e := range batch {
		if err := publish(ctx, e); err != nil {
			return sent, fmt.Errorf("publish event %s: %w", e.ID, err)
		}
		s.mu.Lock()
		s.sent[e.ID] = true
		s.mu.Unlock()
		sent++
	}
	return sent, nil
}

func (s *PaymentStore) appendEventLocked(order model.PaymentOrder, at time.Time) {
	s.nextID++
	payload, _ := json.Marshal(model.NewEventPayload(order, at))
	s.events = append(s.events, model.PaymentEvent{
		ID:        fmt.Sprintf("ev-%d", s.nextID),
		OrderID:   order.OrderID,
		Type:      model.EventTypeFor(order.Status),
		Payload:   payload,
		CreatedAt: at,
	})
}

func cloneOrder(o model.PaymentOrder) model.PaymentOrder {
	if o.Notes != nil {
		notes := make(map[string]string, len(o.Notes))
		for k, v := range o.Notes {
			notes[k] = v
		}
		o.Notes = notes
	}
	if o.VerifiedAt != nil {
		at := *o.VerifiedAt
		o.VerifiedAt = &at
	}
	return o
}
