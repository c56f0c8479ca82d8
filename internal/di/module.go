package di

import (
	"github.com/devxkamlesh/dailyos-payments/internal/adapter/events"
	"github.com/devxkamlesh/dailyos-payments/internal/adapter/gateway"
	"github.com/devxkamlesh/dailyos-payments/internal/app"
	"github.com/devxkamlesh/dailyos-payments/internal/config"
	"github.com/devxkamlesh/dailyos-payments/internal/logger"
	"github.com/devxkamlesh/dailyos-payments/internal/pkg/auth"
	"github.com/devxkamlesh/dailyos-payments/internal/pkg/signature"
	"github.com/devxkamlesh/dailyos-payments/internal/server/http/handlers"
	"github.com/devxkamlesh/dailyos-payments/internal/server/http/router"
	"github.com/devxkamlesh/dailyos-payments/internal/storage/postgres"
	"github.com/devxkamlesh/dailyos-payments/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		signature.Module,
		postgres.Module,
		gateway.Module,
		events.Module,
		usecase.Module,
		fx.Provide(
			func(client gateway.Client) usecase.OrderGateway { return client },
			func(v *signature.Verifier) usecase.SignatureVerifier { return v },
			func(f *app.PaymentsFacade) handlers.PaymentsFacade { return f },
			func(s *postgres.Storage) handlers.HealthChecker { return s },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
