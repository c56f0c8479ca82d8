package repository

import (
	"context"

	"github.com/devxkamlesh/dailyos-payments/internal/domain/model"
)

// BalanceRepository manages user coin balances.
type BalanceRepository interface {
	GetSummary(ctx context.Context, userID string) (*model.BalanceSummary, error)
	// GrantEntitlement credits the coins of a paid order whose entitlement is
	// still pending and clears the flag. granted is false when nothing was pending.
	GrantEntitlement(ctx context.Context, orderID string) (bool, error)
}
