package analytics

import (
	"github.com/shopspring/decimal"
	"github.com/tezexpress/courier-manager/internal/entity"
)

// Scoring policy. The weights and the revenue cap are fixed business rules:
// a courier earning revenueNormalizer currency units or more in the window
// gets the maximal revenue contribution.
const (
	completionWeight   = 0.4
	revenueWeight      = 0.3
	cancellationWeight = 0.2
	returnWeight       = 0.1

	revenueNormalizer = 10000.0
	revenueTermCap    = 100.0
)

// Score converts one courier's aggregated metrics into a single comparable
// number in [0, 100].
func Score(p *entity.CourierPerformance) float64 {
	revenueTerm := revenueFloat(p.TotalRevenue) / revenueNormalizer * 100
	if revenueTerm > revenueTermCap {
		revenueTerm = revenueTermCap
	}
	return p.CompletionRate*completionWeight +
		revenueTerm*revenueWeight +
		(100-p.CancellationRate)*cancellationWeight +
		(100-p.ReturnRate)*returnWeight
}

func revenueFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
