package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type TimeRange struct {
	From time.Time
	To   time.Time
}

// OrderGroup is the reconstructed history of one logical order: all of its
// snapshots sorted ascending by updated_at (fallback created_at). Derived, not
// persisted; it lives for one analytics computation.
type OrderGroup struct {
	LogicalID string
	Snapshots []OrderSnapshot
}

func (g *OrderGroup) First() *OrderSnapshot {
	if len(g.Snapshots) == 0 {
		return nil
	}
	return &g.Snapshots[0]
}

func (g *OrderGroup) Final() *OrderSnapshot {
	if len(g.Snapshots) == 0 {
		return nil
	}
	return &g.Snapshots[len(g.Snapshots)-1]
}

// LifecycleCourierID credits the order to the courier that owned it when the
// return happened: the first snapshot's original courier, falling back to its
// current courier. History survives a mid-flight reassignment this way.
func (g *OrderGroup) LifecycleCourierID() int {
	f := g.First()
	if f == nil {
		return 0
	}
	if f.OriginalCourierID.Valid {
		return int(f.OriginalCourierID.Int32)
	}
	if f.CourierID.Valid {
		return int(f.CourierID.Int32)
	}
	return 0
}

// CurrentCourierID credits live totals to whoever holds the order now: the
// final snapshot's courier, falling back to the original one.
func (g *OrderGroup) CurrentCourierID() int {
	f := g.Final()
	if f == nil {
		return 0
	}
	if f.CourierID.Valid {
		return int(f.CourierID.Int32)
	}
	if f.OriginalCourierID.Valid {
		return int(f.OriginalCourierID.Int32)
	}
	return 0
}

// WasReturned reports whether any snapshot of the order carried the return status.
func (g *OrderGroup) WasReturned() bool {
	for i := range g.Snapshots {
		if g.Snapshots[i].Status == Returned {
			return true
		}
	}
	return false
}

// LifecycleOutcome classifies what eventually happened to a returned order.
type LifecycleOutcome string

func (lo *LifecycleOutcome) String() string {
	return string(*lo)
}

const (
	OutcomeRecoveredDelivered LifecycleOutcome = "recovered-delivered"
	OutcomeRecoveredPartial   LifecycleOutcome = "recovered-partial"
	OutcomeLostCanceled       LifecycleOutcome = "lost-canceled"
	OutcomeStillReturned      LifecycleOutcome = "still-returned"
	OutcomeOther              LifecycleOutcome = "other"
)

// LifecycleRecord is derived per order group.
type LifecycleRecord struct {
	LogicalID    string
	CourierID    int
	WasReturned  bool
	FinalStatus  DeliveryStatusName
	Outcome      LifecycleOutcome
	OutcomeLabel string // literal final status when Outcome is OutcomeOther
}

// LifecycleStats counts return recoveries and losses for one courier or the
// whole cohort.
type LifecycleStats struct {
	TotalReturned         int
	ReturnedThenDelivered int
	ReturnedThenCanceled  int
	ReturnedThenPartial   int
	StillReturned         int
}

// StatusTransition is one mined (from, to) pair with its share of orders in scope.
type StatusTransition struct {
	From       DeliveryStatusName
	To         DeliveryStatusName
	Count      int
	Percentage float64
}

// CourierPerformance aggregates one courier over a date range. Rank is
// assigned only after every courier in the cohort is scored.
type CourierPerformance struct {
	CourierID   int
	CourierName string

	TotalOrders      int
	DeliveredOrders  int
	CanceledOrders   int
	PartialOrders    int
	ReturnedOrders   int
	HandToHandOrders int
	SuccessfulOrders int

	TotalRevenue     decimal.Decimal
	DeliveredRevenue decimal.Decimal

	CompletionRate   float64
	CancellationRate float64
	ReturnRate       float64

	Lifecycle LifecycleStats

	Score float64
	Rank  int
}

// DistributionBucket is one slice of a status or payment-method breakdown.
// Buckets with zero count are omitted from reports.
type DistributionBucket struct {
	Label      string
	Count      int
	Percentage float64
	Revenue    decimal.Decimal
}

type DailyPoint struct {
	Date    time.Time
	Count   int
	Revenue decimal.Decimal
}

type HourlyPoint struct {
	Hour  int
	Count int
}

type WeeklyPoint struct {
	WeekStart time.Time
	Count     int
	Revenue   decimal.Decimal
}

// AnalyticsData bundles everything the analytics screen renders for one
// courier, or for the whole cohort when CourierID is zero.
type AnalyticsData struct {
	Period    TimeRange
	CourierID int

	Performance CourierPerformance

	OrdersByDay  []DailyPoint
	OrdersByHour []HourlyPoint
	WeeklyTrend  []WeeklyPoint

	StatusDistribution  []DistributionBucket
	PaymentDistribution []DistributionBucket

	Transitions []StatusTransition
}

// StatusChange is one step of a returned order's drill-down history.
type StatusChange struct {
	Status DeliveryStatusName
	At     time.Time
}

// ReturnedOrderDetail carries the full status history of one order that was
// ever returned.
type ReturnedOrderDetail struct {
	LogicalID     string
	CourierID     int
	FinalStatus   DeliveryStatusName
	Outcome       LifecycleOutcome
	FeeTotal      decimal.Decimal
	StatusHistory []StatusChange
}
