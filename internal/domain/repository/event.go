package repository

import (
	"context"

	"github.com/devxkamlesh/dailyos-payments/internal/domain/model"
)

// EventRepository exposes the payment event outbox.
type EventRepository interface {
	// DispatchPending hands unsent events to publish in creation order and
	// marks each one sent after publish succeeds. It stops at the first failure.
	DispatchPending(ctx context.Context, limit int, publish func(context.Context, model.PaymentEvent) error) (int, error)
}
