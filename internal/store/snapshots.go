package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tezexpress/courier-manager/internal/dependency"
	"github.com/tezexpress/courier-manager/internal/entity"
)

type snapshotStore struct {
	*MYSQLStore
}

// Snapshots returns an object implementing the Snapshots interface
func (ms *MYSQLStore) Snapshots() dependency.Snapshots {
	return &snapshotStore{
		MYSQLStore: ms,
	}
}

// ListByRange returns snapshots whose updated_at (fallback created_at) falls
// in [from, to). courierId == 0 returns all couriers; otherwise rows matching
// either the current or the original courier are returned, so a reassigned
// order's history is not cut in half by the filter.
func (ms *MYSQLStore) ListByRange(ctx context.Context, from, to time.Time, courierId int) ([]entity.OrderSnapshot, error) {
	query := `
	SELECT id, uuid, order_number, courier_id, original_courier_id, status,
		payment_method, fee_total, created_at, updated_at
	FROM order_snapshot
	WHERE COALESCE(updated_at, created_at) >= :from
	AND COALESCE(updated_at, created_at) < :to`
	params := map[string]any{"from": from, "to": to}
	if courierId != 0 {
		query += ` AND (courier_id = :courierId OR original_courier_id = :courierId)`
		params["courierId"] = courierId
	}
	query += ` ORDER BY COALESCE(updated_at, created_at) ASC, id ASC`

	snapshots, err := QueryListNamed[entity.OrderSnapshot](ctx, ms.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots by range: %w", err)
	}
	return snapshots, nil
}

// ListByOrderNumbers returns every snapshot of the given logical orders
// regardless of date.
func (ms *MYSQLStore) ListByOrderNumbers(ctx context.Context, orderNumbers []string) ([]entity.OrderSnapshot, error) {
	if len(orderNumbers) == 0 {
		return nil, nil
	}
	query := `
	SELECT id, uuid, order_number, courier_id, original_courier_id, status,
		payment_method, fee_total, created_at, updated_at
	FROM order_snapshot
	WHERE order_number IN (:orderNumbers)
	ORDER BY COALESCE(updated_at, created_at) ASC, id ASC`

	snapshots, err := QueryListNamed[entity.OrderSnapshot](ctx, ms.DB(), query, map[string]any{
		"orderNumbers": orderNumbers,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots by order numbers: %w", err)
	}
	return snapshots, nil
}

// AddSnapshot appends one snapshot row. The commerce sync calls this on every
// order status change instead of rewriting the order in place.
func (ms *MYSQLStore) AddSnapshot(ctx context.Context, snap *entity.OrderSnapshot) (int, error) {
	if snap.Status == "" || !entity.ValidDeliveryStatusNames[snap.Status] {
		return 0, fmt.Errorf("invalid snapshot status %q", snap.Status)
	}
	if snap.UUID == "" {
		snap.UUID = uuid.New().String()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = ms.Now()
	}

	query := `
	INSERT INTO order_snapshot
		(uuid, order_number, courier_id, original_courier_id, status,
		payment_method, fee_total, created_at, updated_at)
	VALUES (:uuid, :orderNumber, :courierId, :originalCourierId, :status,
		:paymentMethod, :feeTotal, :createdAt, :updatedAt)`

	id, err := ExecNamedLastId(ctx, ms.DB(), query, map[string]any{
		"uuid":              snap.UUID,
		"orderNumber":       snap.OrderNumber,
		"courierId":         snap.CourierID,
		"originalCourierId": snap.OriginalCourierID,
		"status":            snap.Status,
		"paymentMethod":     snap.PaymentMethod,
		"feeTotal":          snap.FeeTotal,
		"createdAt":         snap.CreatedAt,
		"updatedAt":         snap.UpdatedAt,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add snapshot: %w", err)
	}
	snap.ID = id
	return id, nil
}

// BulkAddSnapshots inserts a sync batch in one statement.
func (ms *MYSQLStore) BulkAddSnapshots(ctx context.Context, snaps []entity.OrderSnapshot) error {
	if len(snaps) == 0 {
		return nil
	}
	rows := make([]map[string]any, 0, len(snaps))
	for i := range snaps {
		s := &snaps[i]
		if s.Status == "" || !entity.ValidDeliveryStatusNames[s.Status] {
			return fmt.Errorf("invalid snapshot status %q", s.Status)
		}
		if s.UUID == "" {
			s.UUID = uuid.New().String()
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = ms.Now()
		}
		rows = append(rows, map[string]any{
			"uuid":                s.UUID,
			"order_number":        s.OrderNumber,
			"courier_id":          s.CourierID,
			"original_courier_id": s.OriginalCourierID,
			"status":              s.Status,
			"payment_method":      s.PaymentMethod,
			"fee_total":           s.FeeTotal,
			"created_at":          s.CreatedAt,
			"updated_at":          s.UpdatedAt,
		})
	}
	if err := BulkInsert(ctx, ms.DB(), "order_snapshot", rows); err != nil {
		return fmt.Errorf("failed to bulk add snapshots: %w", err)
	}
	return nil
}
