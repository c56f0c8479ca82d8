package gateway

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/devxkamlesh/dailyos-payments/internal/config"
)

// Module exposes the gateway client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewRestClient(Options{
		BaseURL:   p.Config.GatewayBaseURL,
		KeyID:     p.Config.GatewayKeyID,
		KeySecret: p.Config.GatewayKeySecret,
		Timeout:   p.Config.GatewayTimeout,
	}, p.Logger)
}
