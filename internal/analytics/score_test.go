package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tezexpress/courier-manager/internal/entity"
)

func TestScorePerfectCourier(t *testing.T) {
	p := entity.CourierPerformance{
		CompletionRate:   100,
		CancellationRate: 0,
		ReturnRate:       0,
		TotalRevenue:     decimal.NewFromInt(25000),
	}
	// revenue term caps at 100, so a perfect courier scores exactly 100
	assert.InDelta(t, 100.0, Score(&p), 0.0001)
}

func TestScoreRevenueBelowCap(t *testing.T) {
	p := entity.CourierPerformance{
		CompletionRate:   100,
		CancellationRate: 0,
		ReturnRate:       0,
		TotalRevenue:     decimal.NewFromInt(5000),
	}
	// 100*0.4 + 50*0.3 + 100*0.2 + 100*0.1
	assert.InDelta(t, 85.0, Score(&p), 0.0001)
}

func TestScoreWeightsEachComponent(t *testing.T) {
	p := entity.CourierPerformance{
		CompletionRate:   50,
		CancellationRate: 20,
		ReturnRate:       10,
		TotalRevenue:     decimal.NewFromInt(10000),
	}
	// 50*0.4 + 100*0.3 + 80*0.2 + 90*0.1
	assert.InDelta(t, 75.0, Score(&p), 0.0001)
}

func TestScoreZeroActivity(t *testing.T) {
	p := entity.CourierPerformance{TotalRevenue: decimal.Zero}
	// no completions, no revenue; only the penalty-free terms remain
	assert.InDelta(t, 30.0, Score(&p), 0.0001)
}

func TestScoreStaysInBounds(t *testing.T) {
	cases := []entity.CourierPerformance{
		{CompletionRate: 100, TotalRevenue: decimal.NewFromInt(1000000)},
		{CancellationRate: 100, ReturnRate: 100, TotalRevenue: decimal.Zero},
		{CompletionRate: 33.3, CancellationRate: 33.3, ReturnRate: 33.3, TotalRevenue: decimal.NewFromInt(3333)},
	}
	for i := range cases {
		s := Score(&cases[i])
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 100.0)
	}
}
