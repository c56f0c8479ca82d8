package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/devxkamlesh/dailyos-payments/internal/config"
)

// Module provides the event publisher and closes it on shutdown.
var Module = fx.Options(
	fx.Provide(newPublisher),
	fx.Invoke(registerLifecycle),
)

type publisherParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newPublisher(p publisherParams) Publisher {
	if len(p.Config.KafkaBrokers) == 0 {
		p.Logger.Info("no kafka brokers configured, payment events go to the log")
		return NewLogPublisher(p.Logger)
	}
	return NewKafkaPublisher(p.Config.KafkaBrokers, p.Config.KafkaTopic, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, publisher Publisher, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := publisher.Close(); err != nil {
				logger.Error("failed to close event publisher", slog.Any("error", err))
				return err
			}
			return nil
		},
	})
}
