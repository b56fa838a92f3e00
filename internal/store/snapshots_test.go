package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tezexpress/courier-manager/internal/entity"
)

func testSnapshot(order string, courier int, status entity.DeliveryStatusName, at time.Time) entity.OrderSnapshot {
	s := entity.OrderSnapshot{
		Status:    status,
		FeeTotal:  decimal.NewFromInt(100),
		CreatedAt: at,
		UpdatedAt: sql.NullTime{Time: at, Valid: true},
	}
	if order != "" {
		s.OrderNumber = sql.NullString{String: order, Valid: true}
	}
	if courier != 0 {
		s.CourierID = sql.NullInt32{Int32: int32(courier), Valid: true}
	}
	return s
}

func TestSnapshots_AddAndListByRange(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ss := db.Snapshots()

	ctx := context.Background()
	base := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	in := testSnapshot("ORD-1", 1, entity.Assigned, base)
	id, err := ss.AddSnapshot(ctx, &in)
	assert.NoError(t, err)
	assert.NotZero(t, id)
	assert.NotEmpty(t, in.UUID)

	later := testSnapshot("ORD-1", 1, entity.Delivered, base.Add(time.Hour))
	_, err = ss.AddSnapshot(ctx, &later)
	assert.NoError(t, err)

	outside := testSnapshot("ORD-2", 1, entity.Delivered, base.AddDate(0, -2, 0))
	_, err = ss.AddSnapshot(ctx, &outside)
	assert.NoError(t, err)

	rows, err := ss.ListByRange(ctx, base.AddDate(0, 0, -1), base.AddDate(0, 0, 1), 0)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	// ascending by timestamp
	assert.Equal(t, entity.Assigned, rows[0].Status)
	assert.Equal(t, entity.Delivered, rows[1].Status)
}

func TestSnapshots_AddRejectsUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ss := db.Snapshots()

	bad := testSnapshot("ORD-1", 1, "teleported", time.Now())
	_, err := ss.AddSnapshot(context.Background(), &bad)
	assert.Error(t, err)
}

func TestSnapshots_ListByRangeCourierFilterMatchesOriginal(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ss := db.Snapshots()

	ctx := context.Background()
	base := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	// order started with courier 7, currently held by courier 9
	reassigned := testSnapshot("ORD-1", 9, entity.Delivered, base)
	reassigned.OriginalCourierID = sql.NullInt32{Int32: 7, Valid: true}
	_, err := ss.AddSnapshot(ctx, &reassigned)
	assert.NoError(t, err)

	other := testSnapshot("ORD-2", 2, entity.Delivered, base)
	_, err = ss.AddSnapshot(ctx, &other)
	assert.NoError(t, err)

	from, to := base.AddDate(0, 0, -1), base.AddDate(0, 0, 1)

	rows, err := ss.ListByRange(ctx, from, to, 7)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = ss.ListByRange(ctx, from, to, 9)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = ss.ListByRange(ctx, from, to, 3)
	assert.NoError(t, err)
	assert.Len(t, rows, 0)
}

func TestSnapshots_ListByOrderNumbers(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ss := db.Snapshots()

	ctx := context.Background()
	base := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	snaps := []entity.OrderSnapshot{
		testSnapshot("ORD-1", 1, entity.Returned, base.AddDate(0, -2, 0)),
		testSnapshot("ORD-1", 1, entity.Delivered, base),
		testSnapshot("ORD-2", 1, entity.Delivered, base),
	}
	err := ss.BulkAddSnapshots(ctx, snaps)
	assert.NoError(t, err)

	rows, err := ss.ListByOrderNumbers(ctx, []string{"ORD-1"})
	assert.NoError(t, err)
	// both rows come back, even the one far outside any report window
	assert.Len(t, rows, 2)
	assert.Equal(t, entity.Returned, rows[0].Status)

	rows, err = ss.ListByOrderNumbers(ctx, nil)
	assert.NoError(t, err)
	assert.Len(t, rows, 0)
}
