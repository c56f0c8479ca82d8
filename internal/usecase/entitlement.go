package usecase

import (
	"context"
	"fmt"
	"log/slog"

	domainErrors "github.com/devxkamlesh/dailyos-payments/internal/domain/errors"
	"github.com/devxkamlesh/dailyos-payments/internal/domain/model"
	"github.com/devxkamlesh/dailyos-payments/internal/domain/repository"
)

// EntitlementUseCase credits purchased coins for paid orders.
type EntitlementUseCase struct {
	balances repository.BalanceRepository
	orders   repository.PaymentOrderRepository
	logger   *slog.Logger
}

// NewEntitlementUseCase constructs EntitlementUseCase.
func NewEntitlementUseCase(balances repository.BalanceRepository, orders repository.PaymentOrderRepository, logger *slog.Logger) *EntitlementUseCase {
	return &EntitlementUseCase{balances: balances, orders: orders, logger: logger}
}

// Grant credits the order's coins once. A failure leaves the order pending
// for the sweeper and is reported as ErrEntitlementPending.
func (u *EntitlementUseCase) Grant(ctx context.Context, order model.PaymentOrder) error {
	granted, err := u.balances.GrantEntitlement(ctx, order.OrderID)
	if err != nil {
		return fmt.Errorf("%w: order %s: %w", domainErrors.ErrEntitlementPending, order.OrderID, err)
	}
	if !granted {
		u.logger.Debug("entitlement already granted", slog.String("order_id", order.OrderID))
		return nil
	}
	u.logger.Info("entitlement granted",
		slog.String("order_id", order.OrderID),
		slog.String("user_id", order.UserID),
		slog.Int64("coins", order.Coins()),
	)
	return nil
}

// SweepPending returns paid orders whose entitlement has not been granted yet.
func (u *EntitlementUseCase) SweepPending(ctx context.Context, limit int) ([]model.PaymentOrder, error) {
	return u.orders.SelectPendingEntitlements(ctx, limit)
}
