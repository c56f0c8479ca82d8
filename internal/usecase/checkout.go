package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainErrors "github.com/devxkamlesh/dailyos-payments/internal/domain/errors"
	"github.com/devxkamlesh/dailyos-payments/internal/domain/model"
	"github.com/devxkamlesh/dailyos-payments/internal/domain/repository"
)

// OrderGateway mints orders on the payment gateway.
type OrderGateway interface {
	CreateOrder(ctx context.Context, req model.GatewayOrderRequest) (*model.GatewayOrder, error)
}

// CheckoutUseCase creates gateway orders and records them locally.
type CheckoutUseCase struct {
	orders  repository.PaymentOrderRepository
	gateway OrderGateway
	logger  *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(orders repository.PaymentOrderRepository, gateway OrderGateway, logger *slog.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{orders: orders, gateway: gateway, logger: logger}
}

// CreateOrder validates the request, mints a gateway order and persists it
// in created state before returning.
func (u *CheckoutUseCase) CreateOrder(ctx context.Context, userID string, req model.CreateOrderRequest) (*model.PaymentOrder, error) {
	if userID == "" {
		return nil, domainErrors.ErrUnauthorized
	}

	req, err := normalizeCreateOrder(req)
	if err != nil {
		return nil, err
	}
	req.Notes[model.NoteUserID] = userID

	gwOrder, err := u.gateway.CreateOrder(ctx, model.GatewayOrderRequest{
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Notes:    req.Notes,
	})
	if err != nil {
		if !errors.Is(err, domainErrors.ErrGateway) {
			err = &domainErrors.GatewayError{Description: "order creation failed", Err: err}
		}
		u.logger.Warn("gateway rejected order", slog.String("user_id", userID), slog.String("receipt", req.Receipt), slog.Any("error", err))
		return nil, err
	}

	order, _, err := u.orders.CreateIfAbsent(ctx, &model.PaymentOrder{
		OrderID:  gwOrder.ID,
		UserID:   userID,
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   model.OrderStatusCreated,
		Notes:    req.Notes,
	})
	if err != nil {
		u.logger.Error("failed to persist gateway order",
			slog.String("order_id", gwOrder.ID),
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("persist order %s: %w", gwOrder.ID, err)
	}

	u.logger.Info("payment order created",
		slog.String("order_id", order.OrderID),
		slog.String("user_id", userID),
		slog.Int64("amount", order.Amount),
		slog.String("currency", order.Currency),
	)
	return order, nil
}

// ListOrders returns user orders, newest first.
func (u *CheckoutUseCase) ListOrders(ctx context.Context, userID string) ([]model.PaymentOrder, error) {
	return u.orders.ListByUser(ctx, userID)
}
