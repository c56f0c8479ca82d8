package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/devxkamlesh/dailyos-payments/internal/domain/model"
)

// PaymentFacadeStub provides controllable behaviour for payment endpoints.
type PaymentFacadeStub struct {
	CreateOrderFn func(context.Context, string, model.CreateOrderRequest) (*model.PaymentOrder, error)
	OrdersFn      func(context.Context, string) ([]model.PaymentOrder, error)
	VerifyFn      func(context.Context, string, model.VerifyRequest) (*model.VerificationResult, error)
	WebhookFn     func(context.Context, []byte, string) (*model.VerificationResult, error)
}

// CreateOrder delegates to provided function or echoes the request as a created order.
func (s PaymentFacadeStub) CreateOrder(ctx context.Context, userID string, req model.CreateOrderRequest) (*model.PaymentOrder, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, userID, req)
	}
	return &model.PaymentOrder{
		OrderID:  "order_stub",
		UserID:   userID,
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   model.OrderStatusCreated,
	}, nil
}

// Orders returns predefined orders for given user.
func (s PaymentFacadeStub) Orders(ctx context.Context, userID string) ([]model.PaymentOrder, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.PaymentOrder{{OrderID: "order_stub", UserID: userID, Status: model.OrderStatusCreated}}, nil
}

// VerifyPayment returns a paid order by default.
func (s PaymentFacadeStub) VerifyPayment(ctx context.Context, userID string, req model.VerifyRequest) (*model.VerificationResult, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, userID, req)
	}
	return &model.VerificationResult{Order: &model.PaymentOrder{OrderID: req.OrderID, Status: model.OrderStatusPaid}}, nil
}

// HandleWebhook acknowledges every webhook by default.
func (s PaymentFacadeStub) HandleWebhook(ctx context.Context, body []byte, signature string) (*model.VerificationResult, error) {
	if s.WebhookFn != nil {
		return s.WebhookFn(ctx, body, signature)
	}
	return &model.VerificationResult{Ignored: true}, nil
}

// BalanceFacadeStub simulates balance operations.
type BalanceFacadeStub struct {
	BalanceFn func(context.Context, string) (*model.BalanceSummary, error)
}

// Balance returns stored summary or default data.
func (s BalanceFacadeStub) Balance(ctx context.Context, userID string) (*model.BalanceSummary, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, userID)
	}
	return &model.BalanceSummary{Coins: 10}, nil
}

// WorkerFacadeStub mimics sweeper interactions with the payments facade.
type WorkerFacadeStub struct {
	Batches   [][]model.PaymentOrder
	PendingFn func(context.Context, int) ([]model.PaymentOrder, error)
	GrantFn   func(context.Context, model.PaymentOrder) error
	Granted   []string
	mu        sync.Mutex
	calls     int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// PendingEntitlements returns batches from configured queue.
func (s *WorkerFacadeStub) PendingEntitlements(ctx context.Context, limit int) ([]model.PaymentOrder, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.calls, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// GrantEntitlement records grant requests.
func (s *WorkerFacadeStub) GrantEntitlement(ctx context.Context, order model.PaymentOrder) error {
	if s.GrantFn != nil {
		return s.GrantFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Granted = append(s.Granted, order.OrderID)
	return nil
}
