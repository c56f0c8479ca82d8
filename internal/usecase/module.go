package usecase

import "go.uber.org/fx"

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(
		NewAuthUseCase,
		NewCheckoutUseCase,
		NewEntitlementUseCase,
		NewVerificationUseCase,
		NewBalanceUseCase,
	),
	fx.Provide(func(u *EntitlementUseCase) EntitlementGranter { return u }),
)
