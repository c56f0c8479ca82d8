package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/devxkamlesh/dailyos-payments/internal/domain/model"
)

type eventRepository struct {
	storage *Storage
}

func (r *eventRepository) DispatchPending(ctx context.Context, limit int, publish func(context.Context, model.PaymentEvent) error) (int, error) {
	const selectQuery = `SELECT id, order_id, event_type, payload, created_at
                         FROM payment_events
                         WHERE sent_at IS NULL
                         ORDER BY created_at
                         LIMIT $1
                         FOR UPDATE SKIP LOCKED`
	const markQuery = `UPDATE payment_events SET sent_at=NOW() WHERE id=$1`

	var (
		sent       int
		publishErr error
	)
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}

		var batch []model.PaymentEvent
		for rows.Next() {
			var e model.PaymentEvent
			if err := rows.Scan(&e.ID, &e.OrderID, &e.Type, &e.Payload, &e.CreatedAt); err != nil {
				rows.Close()
				return err
			}
			batch = append(batch, e)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for _, e := range batch {
			if err := publish(ctx, e); err != nil {
				publishErr = fmt.Errorf("publish event %s: %w", e.ID, err)
				break
			}
			if _, err := tx.Exec(ctx, markQuery, e.ID); err != nil {
				return err
			}
			sent++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return sent, publishErr
}
