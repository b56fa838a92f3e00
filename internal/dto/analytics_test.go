package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tezexpress/courier-manager/internal/entity"
)

func TestConvertEntityPerformanceRoundsRevenue(t *testing.T) {
	p := entity.CourierPerformance{
		CourierID:        3,
		CourierName:      "Dana",
		TotalOrders:      10,
		TotalRevenue:     decimal.NewFromFloat(1234.5678),
		DeliveredRevenue: decimal.NewFromFloat(1000.004),
		Score:            87.25,
		Rank:             2,
	}

	out := ConvertEntityPerformance(&p)

	assert.Equal(t, 3, out.CourierID)
	assert.Equal(t, "1234.57", out.TotalRevenue.String())
	assert.Equal(t, "1000", out.DeliveredRevenue.String())
	assert.Equal(t, 2, out.Rank)
}

func TestConvertEntityAnalyticsData(t *testing.T) {
	data := &entity.AnalyticsData{
		Period: entity.TimeRange{
			From: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		CourierID: 5,
		OrdersByDay: []entity.DailyPoint{
			{Date: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), Count: 2, Revenue: decimal.NewFromInt(200)},
		},
		OrdersByHour: []entity.HourlyPoint{{Hour: 9, Count: 2}},
		StatusDistribution: []entity.DistributionBucket{
			{Label: "delivered", Count: 2, Percentage: 100, Revenue: decimal.NewFromInt(200)},
		},
		Transitions: []entity.StatusTransition{
			{From: entity.Assigned, To: entity.Delivered, Count: 2, Percentage: 100},
		},
	}

	out := ConvertEntityAnalyticsData(data)

	assert.Equal(t, "2024-05-01", out.From)
	assert.Equal(t, "2024-06-01", out.To)
	assert.Equal(t, 5, out.CourierID)
	require.Len(t, out.OrdersByDay, 1)
	assert.Equal(t, "2024-05-03", out.OrdersByDay[0].Date)
	require.Len(t, out.Transitions, 1)
	assert.Equal(t, "assigned", out.Transitions[0].From)
	assert.Equal(t, "delivered", out.Transitions[0].To)
	require.Len(t, out.StatusDistribution, 1)
	assert.Equal(t, "delivered", out.StatusDistribution[0].Label)
}

func TestConvertEntityReturnedDetails(t *testing.T) {
	at := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	details := []entity.ReturnedOrderDetail{
		{
			LogicalID:   "R1",
			CourierID:   7,
			FinalStatus: entity.Delivered,
			Outcome:     entity.OutcomeRecoveredDelivered,
			FeeTotal:    decimal.NewFromFloat(99.999),
			StatusHistory: []entity.StatusChange{
				{Status: entity.Returned, At: at},
				{Status: entity.Delivered, At: at.Add(time.Hour)},
			},
		},
	}

	out := ConvertEntityReturnedDetails(details)

	require.Len(t, out, 1)
	assert.Equal(t, "R1", out[0].LogicalID)
	assert.Equal(t, "recovered-delivered", out[0].Outcome)
	assert.Equal(t, "100", out[0].FeeTotal.String())
	require.Len(t, out[0].StatusHistory, 2)
	assert.Equal(t, "return", out[0].StatusHistory[0].Status)
}
