package repository

import (
	"context"

	"github.com/devxkamlesh/dailyos-payments/internal/domain/model"
)

// PaymentOrderRepository is the order record store.
type PaymentOrderRepository interface {
	// CreateIfAbsent stores order in created state. When the order id is
	// already known the stored record is returned with created=false.
	CreateIfAbsent(ctx context.Context, order *model.PaymentOrder) (*model.PaymentOrder, bool, error)
	Get(ctx context.Context, orderID string) (*model.PaymentOrder, error)
	ListByUser(ctx context.Context, userID string) ([]model.PaymentOrder, error)
	// CompareAndSwapStatus moves the order from one status to another in a
	// single conditional write. swapped is false when the order was not in from.
	CompareAndSwapStatus(ctx context.Context, orderID string, from, to model.OrderStatus, paymentID string) (*model.PaymentOrder, bool, error)
	SelectPendingEntitlements(ctx context.Context, limit int) ([]model.PaymentOrder, error)
}
