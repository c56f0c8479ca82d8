package signature

import (
	"go.uber.org/fx"

	"github.com/devxkamlesh/dailyos-payments/internal/config"
)

// Module provides the signature verifier.
var Module = fx.Options(
	fx.Provide(newVerifier),
)

func newVerifier(cfg *config.Config) *Verifier {
	return NewVerifier(cfg.GatewayKeySecret, cfg.WebhookSecret)
}
