package app

import (
	"context"
	"errors"

	domainErrors "github.com/devxkamlesh/dailyos-payments/internal/domain/errors"
	"github.com/devxkamlesh/dailyos-payments/internal/domain/model"
	"github.com/devxkamlesh/dailyos-payments/internal/usecase"
)

// PaymentsFacade joins the use cases behind a single API for the HTTP layer and workers.
type PaymentsFacade struct {
	auth         *usecase.AuthUseCase
	checkout     *usecase.CheckoutUseCase
	verification *usecase.VerificationUseCase
	entitlements *usecase.EntitlementUseCase
	balance      *usecase.BalanceUseCase
}

func NewPaymentsFacade(
	auth *usecase.AuthUseCase,
	checkout *usecase.CheckoutUseCase,
	verification *usecase.VerificationUseCase,
	entitlements *usecase.EntitlementUseCase,
	balance *usecase.BalanceUseCase,
) *PaymentsFacade {
	return &PaymentsFacade{
		auth:         auth,
		checkout:     checkout,
		verification: verification,
		entitlements: entitlements,
		balance:      balance,
	}
}

func (f *PaymentsFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *PaymentsFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *PaymentsFacade) ParseToken(token string) (string, error) {
	return f.auth.ParseToken(token)
}

func (f *PaymentsFacade) CreateOrder(ctx context.Context, userID string, req model.CreateOrderRequest) (*model.PaymentOrder, error) {
	return f.checkout.CreateOrder(ctx, userID, req)
}

func (f *PaymentsFacade) Orders(ctx context.Context, userID string) ([]model.PaymentOrder, error) {
	return f.checkout.ListOrders(ctx, userID)
}

func (f *PaymentsFacade) VerifyPayment(ctx context.Context, userID string, req model.VerifyRequest) (*model.VerificationResult, error) {
	return f.verification.Verify(ctx, userID, req)
}

func (f *PaymentsFacade) HandleWebhook(ctx context.Context, body []byte, signature string) (*model.VerificationResult, error) {
	return f.verification.HandleWebhook(ctx, body, signature)
}

func (f *PaymentsFacade) Balance(ctx context.Context, userID string) (*model.BalanceSummary, error) {
	summary, err := f.balance.Summary(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return &model.BalanceSummary{}, nil
		}
		return nil, err
	}
	return summary, nil
}

func (f *PaymentsFacade) PendingEntitlements(ctx context.Context, limit int) ([]model.PaymentOrder, error) {
	return f.entitlements.SweepPending(ctx, limit)
}

func (f *PaymentsFacade) GrantEntitlement(ctx context.Context, order model.PaymentOrder) error {
	return f.entitlements.Grant(ctx, order)
}
