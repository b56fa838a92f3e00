package entity

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryStatusName is the custom type to enforce enum-like behavior
type DeliveryStatusName string

func (dsn *DeliveryStatusName) String() string {
	return string(*dsn)
}

const (
	Pending    DeliveryStatusName = "pending"
	Assigned   DeliveryStatusName = "assigned"
	Delivered  DeliveryStatusName = "delivered"
	Canceled   DeliveryStatusName = "canceled"
	Partial    DeliveryStatusName = "partial"
	Returned   DeliveryStatusName = "return"
	HandToHand DeliveryStatusName = "hand_to_hand"
	Card       DeliveryStatusName = "card"
)

// ValidDeliveryStatusNames is a set of valid delivery status names
var ValidDeliveryStatusNames = map[DeliveryStatusName]bool{
	Pending:    true,
	Assigned:   true,
	Delivered:  true,
	Canceled:   true,
	Partial:    true,
	Returned:   true,
	HandToHand: true,
	Card:       true,
}

// PaymentMethodName is the custom type to enforce enum-like behavior
type PaymentMethodName string

func (pmn *PaymentMethodName) String() string {
	return string(*pmn)
}

const (
	Cash         PaymentMethodName = "cash"
	CardPayment  PaymentMethodName = "card"
	BankTransfer PaymentMethodName = "transfer"
)

// OrderSnapshot represents one row of the order_snapshot table: the state of a
// logical order at the moment it was written by the commerce sync. The sync
// appends a new row on every status change instead of rewriting the order in
// place, so the full history of an order is the set of rows sharing its
// order_number.
type OrderSnapshot struct {
	ID                int                `db:"id"`
	UUID              string             `db:"uuid"`
	OrderNumber       sql.NullString     `db:"order_number"`
	CourierID         sql.NullInt32      `db:"courier_id"`
	OriginalCourierID sql.NullInt32      `db:"original_courier_id"`
	Status            DeliveryStatusName `db:"status" valid:"required"`
	PaymentMethod     PaymentMethodName  `db:"payment_method"`
	FeeTotal          decimal.Decimal    `db:"fee_total"`
	CreatedAt         time.Time          `db:"created_at"`
	UpdatedAt         sql.NullTime       `db:"updated_at"`
}

// LogicalID returns the stable key shared by every snapshot of the same
// real-world order. Rows without an order number fall back to their own id and
// form singleton groups.
func (s *OrderSnapshot) LogicalID() string {
	if s.OrderNumber.Valid && s.OrderNumber.String != "" {
		return s.OrderNumber.String
	}
	return "row-" + strconv.Itoa(s.ID)
}

// OrderedAt is the authoritative ordering key: updated_at falling back to
// created_at. ok is false when neither is set; such rows are unorderable and
// sort last within their group.
func (s *OrderSnapshot) OrderedAt() (t time.Time, ok bool) {
	if s.UpdatedAt.Valid {
		return s.UpdatedAt.Time, true
	}
	if !s.CreatedAt.IsZero() {
		return s.CreatedAt, true
	}
	return time.Time{}, false
}

func (s *OrderSnapshot) FeeTotalDecimal() decimal.Decimal {
	return s.FeeTotal.Round(2)
}
