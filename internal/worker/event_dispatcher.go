package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/devxkamlesh/dailyos-payments/internal/domain/model"
)

// EventOutbox hands unsent payment events to a publish callback.
type EventOutbox interface {
	DispatchPending(ctx context.Context, limit int, publish func(context.Context, model.PaymentEvent) error) (int, error)
}

// EventPublisher delivers a single event to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, event model.PaymentEvent) error
}

// EventDispatcher drains the payment event outbox on a fixed interval.
type EventDispatcher struct {
	outbox    EventOutbox
	publisher EventPublisher
	interval  time.Duration
	batchSize int
	logger    *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewEventDispatcher constructs EventDispatcher.
func NewEventDispatcher(outbox EventOutbox, publisher EventPublisher, interval time.Duration, batchSize int, logger *slog.Logger) *EventDispatcher {
	if interval <= 0 {
		interval = time.Second
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &EventDispatcher{
		outbox:    outbox,
		publisher: publisher,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Start launches the dispatch loop.
func (d *EventDispatcher) Start(_ context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	d.wg.Add(1)
	go d.loop(runCtx)
}

// Stop cancels the loop and waits for the current batch.
func (d *EventDispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *EventDispatcher) loop(ctx context.Context) {
	defer d.wg.Done()
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.DispatchOnce(ctx)
		}
	}
}

// DispatchOnce publishes batches until the outbox is drained or a publish fails.
// It returns the number of events marked sent.
func (d *EventDispatcher) DispatchOnce(ctx context.Context) int {
	total := 0
	for ctx.Err() == nil {
		sent, err := d.outbox.DispatchPending(ctx, d.batchSize, d.publisher.Publish)
		total += sent
		if err != nil {
			d.logger.Warn("payment event dispatch failed",
				slog.Int("sent", sent),
				slog.String("error", err.Error()),
			)
			break
		}
		if sent < d.batchSize {
			break
		}
	}
	if total > 0 {
		d.logger.Debug("payment events dispatched", slog.Int("count", total))
	}
	return total
}
