package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/devxkamlesh/dailyos-payments/internal/domain/model"
)

type balanceRepository struct {
	storage *Storage
}

func (r *balanceRepository) GetSummary(ctx context.Context, userID string) (*model.BalanceSummary, error) {
	const query = `SELECT coins FROM balances WHERE user_id=$1`
	var summary model.BalanceSummary
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&summary.Coins)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &model.BalanceSummary{}, nil
		}
		return nil, err
	}
	return &summary, nil
}

func (r *balanceRepository) GrantEntitlement(ctx context.Context, orderID string) (bool, error) {
	const claimQuery = `UPDATE payment_orders
                        SET entitlement_pending=FALSE, entitled_at=NOW()
                        WHERE order_id=$1 AND status='paid' AND entitlement_pending
                        RETURNING user_id, notes`
	const creditQuery = `INSERT INTO balances (user_id, coins)
                         VALUES ($1, $2)
                         ON CONFLICT (user_id) DO UPDATE SET coins = balances.coins + EXCLUDED.coins`

	var granted bool
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var (
			userID   string
			rawNotes []byte
		)
		if err := tx.QueryRow(ctx, claimQuery, orderID).Scan(&userID, &rawNotes); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}

		var notes map[string]string
		if len(rawNotes) > 0 {
			if err := json.Unmarshal(rawNotes, &notes); err != nil {
				return fmt.Errorf("decode notes of %s: %w", orderID, err)
			}
		}
		order := model.PaymentOrder{OrderID: orderID, UserID: userID, Notes: notes}
		if coins := order.Coins(); coins > 0 {
			if _, err := tx.Exec(ctx, creditQuery, userID, coins); err != nil {
				return err
			}
		}
		granted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return granted, nil
}
