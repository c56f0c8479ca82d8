package handlers

import (
	"context"

	"github.com/devxkamlesh/dailyos-payments/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (string, error)
}

// PaymentFacade encapsulates checkout and verification operations exposed via HTTP.
type PaymentFacade interface {
	CreateOrder(ctx context.Context, userID string, req model.CreateOrderRequest) (*model.PaymentOrder, error)
	Orders(ctx context.Context, userID string) ([]model.PaymentOrder, error)
	VerifyPayment(ctx context.Context, userID string, req model.VerifyRequest) (*model.VerificationResult, error)
	HandleWebhook(ctx context.Context, body []byte, signature string) (*model.VerificationResult, error)
}

// BalanceFacade provides balance related operations.
type BalanceFacade interface {
	Balance(ctx context.Context, userID string) (*model.BalanceSummary, error)
}

// PaymentsFacade aggregates the full set of operations used across handlers.
type PaymentsFacade interface {
	AuthFacade
	PaymentFacade
	BalanceFacade
}
