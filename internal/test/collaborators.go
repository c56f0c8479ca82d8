package test

import (
	"context"
	"sync"

	"github.com/devxkamlesh/dailyos-payments/internal/domain/model"
)

// GatewayStub mints predictable gateway orders.
type GatewayStub struct {
	CreateFn func(context.Context, model.GatewayOrderRequest) (*model.GatewayOrder, error)
	Requests []model.GatewayOrderRequest
}

// CreateOrder records the request and returns order_<receipt> by default.
func (s *GatewayStub) CreateOrder(ctx context.Context, req model.GatewayOrderRequest) (*model.GatewayOrder, error) {
	s.Requests = append(s.Requests, req)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	return &model.GatewayOrder{
		ID:       "order_" + req.Receipt,
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
	}, nil
}

// VerifierStub accepts a fixed payment and webhook signature.
type VerifierStub struct {
	ValidSignature string
	WebhookSecret  string
}

// VerifyPayment accepts only ValidSignature.
func (v VerifierStub) VerifyPayment(orderID, paymentID, signature string) bool {
	return signature != "" && signature == v.ValidSignature
}

// VerifyWebhook accepts the webhook secret as the signature.
func (v VerifierStub) VerifyWebhook(body []byte, signature string) bool {
	return v.WebhookEnabled() && signature == v.WebhookSecret
}

// WebhookEnabled reports whether a webhook secret is configured.
func (v VerifierStub) WebhookEnabled() bool {
	return v.WebhookSecret != ""
}

// PublisherStub collects published events.
type PublisherStub struct {
	PublishFn func(context.Context, model.PaymentEvent) error
	CloseErr  error
	Closed    bool
	mu        sync.Mutex
	events    []model.PaymentEvent
}

// Publish stores the event unless an override is configured.
func (p *PublisherStub) Publish(ctx context.Context, event model.PaymentEvent) error {
	if p.PublishFn != nil {
		if err := p.PublishFn(ctx, event); err != nil {
			return err
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Published returns a snapshot of published events.
func (p *PublisherStub) Published() []model.PaymentEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.PaymentEvent, len(p.events))
	copy(out, p.events)
	return out
}

// Close marks the publisher closed.
func (p *PublisherStub) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Closed = true
	return p.CloseErr
}
