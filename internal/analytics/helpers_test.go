package analytics

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tezexpress/courier-manager/internal/entity"
)

var testBase = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

var testPeriod = entity.TimeRange{
	From: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	To:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
}

type snapOpt func(*entity.OrderSnapshot)

func withFee(fee float64) snapOpt {
	return func(s *entity.OrderSnapshot) {
		s.FeeTotal = decimal.NewFromFloat(fee)
	}
}

func withOriginalCourier(id int) snapOpt {
	return func(s *entity.OrderSnapshot) {
		s.OriginalCourierID = sql.NullInt32{Int32: int32(id), Valid: true}
	}
}

func withPayment(pm entity.PaymentMethodName) snapOpt {
	return func(s *entity.OrderSnapshot) {
		s.PaymentMethod = pm
	}
}

func withCreatedAt(t time.Time) snapOpt {
	return func(s *entity.OrderSnapshot) {
		s.CreatedAt = t
	}
}

func withNoTimestamps() snapOpt {
	return func(s *entity.OrderSnapshot) {
		s.CreatedAt = time.Time{}
		s.UpdatedAt = sql.NullTime{}
	}
}

var snapSeq int

func snap(order string, courier int, status entity.DeliveryStatusName, at time.Time, opts ...snapOpt) entity.OrderSnapshot {
	snapSeq++
	s := entity.OrderSnapshot{
		ID:        snapSeq,
		Status:    status,
		CreatedAt: at,
		UpdatedAt: sql.NullTime{Time: at, Valid: true},
		FeeTotal:  decimal.NewFromInt(100),
	}
	if order != "" {
		s.OrderNumber = sql.NullString{String: order, Valid: true}
	}
	if courier != 0 {
		s.CourierID = sql.NullInt32{Int32: int32(courier), Valid: true}
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func mustGroup(snaps ...entity.OrderSnapshot) map[string]entity.OrderGroup {
	groups, err := GroupSnapshots(snaps)
	if err != nil {
		panic(err)
	}
	return groups
}
