package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	domainErrors "github.com/devxkamlesh/dailyos-payments/internal/domain/errors"
	"github.com/devxkamlesh/dailyos-payments/internal/domain/model"
	"github.com/devxkamlesh/dailyos-payments/internal/domain/repository"
)

// SignatureVerifier authenticates gateway callbacks.
type SignatureVerifier interface {
	VerifyPayment(orderID, paymentID, signature string) bool
	VerifyWebhook(body []byte, signature string) bool
	WebhookEnabled() bool
}

// EntitlementGranter credits a freshly paid order.
type EntitlementGranter interface {
	Grant(ctx context.Context, order model.PaymentOrder) error
}

// Webhook events the gateway sends for an order. A failed attempt is not
// final: the payer may retry and the same order can still be captured.
const (
	WebhookPaymentCaptured = "payment.captured"
	WebhookOrderPaid       = "order.paid"
	WebhookPaymentFailed   = "payment.failed"
)

type webhookEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
		Order struct {
			Entity struct {
				ID string `json:"id"`
			} `json:"entity"`
		} `json:"order"`
	} `json:"payload"`
}

// VerificationUseCase settles orders from client callbacks and gateway webhooks.
// Both paths converge on the same compare-and-swap of the created status.
type VerificationUseCase struct {
	orders       repository.PaymentOrderRepository
	entitlements EntitlementGranter
	verifier     SignatureVerifier
	logger       *slog.Logger
}

// NewVerificationUseCase constructs VerificationUseCase.
func NewVerificationUseCase(orders repository.PaymentOrderRepository, entitlements EntitlementGranter, verifier SignatureVerifier, logger *slog.Logger) *VerificationUseCase {
	return &VerificationUseCase{orders: orders, entitlements: entitlements, verifier: verifier, logger: logger}
}

// Verify checks the checkout signature for an order owned by userID.
func (u *VerificationUseCase) Verify(ctx context.Context, userID string, req model.VerifyRequest) (*model.VerificationResult, error) {
	if userID == "" {
		return nil, domainErrors.ErrUnauthorized
	}
	req, err := normalizeVerifyRequest(req)
	if err != nil {
		return nil, err
	}

	order, err := u.orders.Get(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	if order.Status.IsTerminal() {
		return &model.VerificationResult{Order: order, AlreadyProcessed: true}, nil
	}

	if !u.verifier.VerifyPayment(req.OrderID, req.PaymentID, req.Signature) {
		u.logger.Warn("payment signature mismatch",
			slog.String("event", "signature_mismatch"),
			slog.String("source", "checkout"),
			slog.String("order_id", req.OrderID),
		)
		if _, _, err := u.orders.CompareAndSwapStatus(ctx, req.OrderID, model.OrderStatusCreated, model.OrderStatusFailed, req.PaymentID); err != nil {
			return nil, fmt.Errorf("mark order %s failed: %w", req.OrderID, err)
		}
		return nil, domainErrors.ErrSignatureMismatch
	}

	return u.settle(ctx, req.OrderID, req.PaymentID)
}

// HandleWebhook authenticates a raw gateway webhook body and applies the
// payment outcome it carries.
func (u *VerificationUseCase) HandleWebhook(ctx context.Context, body []byte, signature string) (*model.VerificationResult, error) {
	if !u.verifier.WebhookEnabled() {
		return nil, domainErrors.ErrUnauthorized
	}
	if strings.TrimSpace(signature) == "" || !u.verifier.VerifyWebhook(body, signature) {
		u.logger.Warn("webhook signature mismatch",
			slog.String("event", "signature_mismatch"),
			slog.String("source", "webhook"),
		)
		return nil, domainErrors.ErrSignatureMismatch
	}

	var envelope webhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decode webhook: %v", domainErrors.ErrInvalidRequest, err)
	}

	switch envelope.Event {
	case WebhookPaymentCaptured, WebhookOrderPaid, WebhookPaymentFailed:
	default:
		u.logger.Debug("webhook event ignored", slog.String("webhook_event", envelope.Event))
		return &model.VerificationResult{Ignored: true}, nil
	}

	orderID := envelope.Payload.Payment.Entity.OrderID
	if orderID == "" {
		orderID = envelope.Payload.Order.Entity.ID
	}
	if orderID == "" {
		return nil, domainErrors.ErrInvalidRequest
	}

	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if envelope.Event == WebhookPaymentFailed {
		u.logger.Info("payment attempt failed",
			slog.String("order_id", orderID),
			slog.String("payment_id", envelope.Payload.Payment.Entity.ID),
			slog.String("status", string(order.Status)),
		)
		return &model.VerificationResult{Order: order, Ignored: true}, nil
	}
	if order.Status.IsTerminal() {
		return &model.VerificationResult{Order: order, AlreadyProcessed: true}, nil
	}

	return u.settle(ctx, orderID, envelope.Payload.Payment.Entity.ID)
}

// settle moves a created order to paid. Only the caller that wins the swap
// triggers the entitlement grant.
func (u *VerificationUseCase) settle(ctx context.Context, orderID, paymentID string) (*model.VerificationResult, error) {
	updated, swapped, err := u.orders.CompareAndSwapStatus(ctx, orderID, model.OrderStatusCreated, model.OrderStatusPaid, paymentID)
	if err != nil {
		return nil, fmt.Errorf("mark order %s paid: %w", orderID, err)
	}
	if !swapped {
		current, err := u.orders.Get(ctx, orderID)
		if err != nil {
			return nil, err
		}
		return &model.VerificationResult{Order: current, AlreadyProcessed: true}, nil
	}

	u.logger.Info("payment order settled",
		slog.String("order_id", orderID),
		slog.String("status", string(model.OrderStatusPaid)),
		slog.String("payment_id", paymentID),
	)

	if err := u.entitlements.Grant(ctx, *updated); err != nil {
		if !errors.Is(err, domainErrors.ErrEntitlementPending) {
			err = fmt.Errorf("%w: %w", domainErrors.ErrEntitlementPending, err)
		}
		u.logger.Error("entitlement deferred",
			slog.String("event", "entitlement_pending"),
			slog.String("order_id", orderID),
			slog.Any("error", err),
		)
		return &model.VerificationResult{Order: updated}, nil
	}
	updated.EntitlementPending = false
	return &model.VerificationResult{Order: updated}, nil
}
