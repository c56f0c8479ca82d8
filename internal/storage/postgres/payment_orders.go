package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/devxkamlesh/dailyos-payments/internal/domain/errors"
	"github.com/devxkamlesh/dailyos-payments/internal/domain/model"
)

const orderColumns = `order_id, user_id, amount, currency, receipt, notes, status,
    COALESCE(payment_id, ''), entitlement_pending, created_at, verified_at`

type paymentOrderRepository struct {
	storage *Storage
}

type rowScanner interface {
	Scan(dest ...any) error
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func scanOrder(row rowScanner) (*model.PaymentOrder, error) {
	var (
		o     model.PaymentOrder
		notes []byte
	)
	err := row.Scan(&o.OrderID, &o.UserID, &o.Amount, &o.Currency, &o.Receipt, &notes, &o.Status,
		&o.PaymentID, &o.EntitlementPending, &o.CreatedAt, &o.VerifiedAt)
	if err != nil {
		return nil, err
	}
	if len(notes) > 0 {
		if err := json.Unmarshal(notes, &o.Notes); err != nil {
			return nil, fmt.Errorf("decode notes of %s: %w", o.OrderID, err)
		}
	}
	return &o, nil
}

func getOrder(ctx context.Context, q rowQuerier, orderID string) (*model.PaymentOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM payment_orders WHERE order_id=$1`
	order, err := scanOrder(q.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// insertEvent appends the order's current state to the outbox.
func insertEvent(ctx context.Context, tx pgx.Tx, order model.PaymentOrder, at time.Time) error {
	payload, err := json.Marshal(model.NewEventPayload(order, at))
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	const query = `INSERT INTO payment_events (id, order_id, event_type, payload) VALUES ($1, $2, $3, $4)`
	if _, err := tx.Exec(ctx, query, uuid.NewString(), order.OrderID, model.EventTypeFor(order.Status), payload); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *paymentOrderRepository) CreateIfAbsent(ctx context.Context, order *model.PaymentOrder) (*model.PaymentOrder, bool, error) {
	notes := order.Notes
	if notes == nil {
		notes = map[string]string{}
	}
	rawNotes, err := json.Marshal(notes)
	if err != nil {
		return nil, false, fmt.Errorf("encode notes: %w", err)
	}

	const insertQuery = `INSERT INTO payment_orders (order_id, user_id, amount, currency, receipt, notes, status)
                         VALUES ($1, $2, $3, $4, $5, $6, $7)
                         ON CONFLICT (order_id) DO NOTHING
                         RETURNING created_at`

	var (
		stored  *model.PaymentOrder
		created bool
	)
	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var createdAt time.Time
		err := tx.QueryRow(ctx, insertQuery, order.OrderID, order.UserID, order.Amount, order.Currency,
			order.Receipt, rawNotes, model.OrderStatusCreated).Scan(&createdAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				existing, err := getOrder(ctx, tx, order.OrderID)
				if err != nil {
					return err
				}
				stored = existing
				return nil
			}
			return err
		}

		stored = &model.PaymentOrder{
			OrderID:   order.OrderID,
			UserID:    order.UserID,
			Amount:    order.Amount,
			Currency:  order.Currency,
			Receipt:   order.Receipt,
			Status:    model.OrderStatusCreated,
			Notes:     notes,
			CreatedAt: createdAt,
		}
		created = true
		return insertEvent(ctx, tx, *stored, createdAt)
	})
	if err != nil {
		return nil, false, err
	}
	return stored, created, nil
}

func (r *paymentOrderRepository) Get(ctx context.Context, orderID string) (*model.PaymentOrder, error) {
	return getOrder(ctx, r.storage.pool, orderID)
}

func (r *paymentOrderRepository) ListByUser(ctx context.Context, userID string) ([]model.PaymentOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM payment_orders WHERE user_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *paymentOrderRepository) CompareAndSwapStatus(ctx context.Context, orderID string, from, to model.OrderStatus, paymentID string) (*model.PaymentOrder, bool, error) {
	query := `UPDATE payment_orders
              SET status=$3, payment_id=COALESCE(NULLIF($4, ''), payment_id), verified_at=NOW(), entitlement_pending=$5
              WHERE order_id=$1 AND status=$2
              RETURNING ` + orderColumns

	var updated *model.PaymentOrder
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := scanOrder(tx.QueryRow(ctx, query, orderID, from, to, paymentID, to == model.OrderStatusPaid))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}
		updated = order

		at := time.Now()
		if order.VerifiedAt != nil {
			at = *order.VerifiedAt
		}
		return insertEvent(ctx, tx, *order, at)
	})
	if err != nil {
		return nil, false, err
	}
	return updated, updated != nil, nil
}

func (r *paymentOrderRepository) SelectPendingEntitlements(ctx context.Context, limit int) ([]model.PaymentOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM payment_orders
              WHERE status='paid' AND entitlement_pending
              ORDER BY verified_at
              LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *paymentOrderRepository) list(ctx context.Context, query string, arg any) ([]model.PaymentOrder, error) {
	rows, err := r.storage.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PaymentOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
