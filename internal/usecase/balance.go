package usecase

import (
	"context"

	"github.com/devxkamlesh/dailyos-payments/internal/domain/model"
	"github.com/devxkamlesh/dailyos-payments/internal/domain/repository"
)

// BalanceUseCase exposes coin balances.
type BalanceUseCase struct {
	balances repository.BalanceRepository
}

// NewBalanceUseCase constructs BalanceUseCase.
func NewBalanceUseCase(b repository.BalanceRepository) *BalanceUseCase {
	return &BalanceUseCase{balances: b}
}

// Summary returns the user's coin balance.
func (u *BalanceUseCase) Summary(ctx context.Context, userID string) (*model.BalanceSummary, error) {
	return u.balances.GetSummary(ctx, userID)
}
