package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/devxkamlesh/dailyos-payments/internal/domain/model"
)

// EntitlementFacade exposes the subset of application functionality required by the sweeper.
type EntitlementFacade interface {
	PendingEntitlements(ctx context.Context, limit int) ([]model.PaymentOrder, error)
	GrantEntitlement(ctx context.Context, order model.PaymentOrder) error
}

// EntitlementSweeper retries deferred coin credits for paid orders concurrently.
type EntitlementSweeper struct {
	facade        EntitlementFacade
	sweepInterval time.Duration
	batchSize     int
	workers       int
	logger        *slog.Logger

	jobs     chan model.PaymentOrder
	inflight map[string]struct{}
	flightMu sync.Mutex
	wg       sync.WaitGroup
	cancel   context.CancelFunc
	mu       sync.Mutex
}

// NewEntitlementSweeper constructs the sweeper worker pool.
func NewEntitlementSweeper(facade EntitlementFacade, sweepInterval time.Duration, batchSize, workers int, logger *slog.Logger) *EntitlementSweeper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if sweepInterval <= 0 {
		sweepInterval = time.Second
	}
	return &EntitlementSweeper{
		facade:        facade,
		sweepInterval: sweepInterval,
		batchSize:     batchSize,
		workers:       workers,
		logger:        logger,
		jobs:          make(chan model.PaymentOrder, batchSize*workers),
		inflight:      make(map[string]struct{}),
	}
}

// Start launches background sweeping. The pool runs until Stop, independent
// of ctx, which only scopes the start itself.
func (s *EntitlementSweeper) Start(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx)
}

// Stop cancels the pool and waits for in-flight grants to return.
func (s *EntitlementSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *EntitlementSweeper) dispatch(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *EntitlementSweeper) sweep(ctx context.Context) {
	orders, err := s.facade.PendingEntitlements(ctx, s.batchSize)
	if err != nil {
		s.logger.Error("fetch pending entitlements failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		if !s.claim(order.OrderID) {
			continue
		}
		select {
		case <-ctx.Done():
			s.release(order.OrderID)
			return
		case s.jobs <- order:
		}
	}
}

func (s *EntitlementSweeper) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order := <-s.jobs:
			s.handle(ctx, order)
			s.release(order.OrderID)
		}
	}
}

func (s *EntitlementSweeper) handle(ctx context.Context, order model.PaymentOrder) {
	if err := s.facade.GrantEntitlement(ctx, order); err != nil {
		s.logger.Warn("entitlement retry failed",
			slog.String("event", "entitlement_pending"),
			slog.String("order_id", order.OrderID),
			slog.String("error", err.Error()),
		)
	}
}

// claim marks the order queued so overlapping sweeps do not enqueue it twice.
func (s *EntitlementSweeper) claim(orderID string) bool {
	s.flightMu.Lock()
	defer s.flightMu.Unlock()
	if _, ok := s.inflight[orderID]; ok {
		return false
	}
	s.inflight[orderID] = struct{}{}
	return true
}

func (s *EntitlementSweeper) release(orderID string) {
	s.flightMu.Lock()
	delete(s.inflight, orderID)
	s.flightMu.Unlock()
}
