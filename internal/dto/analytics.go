package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tezexpress/courier-manager/internal/entity"
)

type CourierPerformance struct {
	CourierID   int    `json:"courierId"`
	CourierName string `json:"courierName"`

	TotalOrders      int `json:"totalOrders"`
	DeliveredOrders  int `json:"deliveredOrders"`
	CanceledOrders   int `json:"canceledOrders"`
	PartialOrders    int `json:"partialOrders"`
	ReturnedOrders   int `json:"returnedOrders"`
	HandToHandOrders int `json:"handToHandOrders"`
	SuccessfulOrders int `json:"successfulOrders"`

	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	DeliveredRevenue decimal.Decimal `json:"deliveredRevenue"`

	CompletionRate   float64 `json:"completionRate"`
	CancellationRate float64 `json:"cancellationRate"`
	ReturnRate       float64 `json:"returnRate"`

	Lifecycle LifecycleStats `json:"lifecycle"`

	Score float64 `json:"score"`
	Rank  int     `json:"rank,omitempty"`
}

type LifecycleStats struct {
	TotalReturned         int `json:"totalReturned"`
	ReturnedThenDelivered int `json:"returnedThenDelivered"`
	ReturnedThenCanceled  int `json:"returnedThenCanceled"`
	ReturnedThenPartial   int `json:"returnedThenPartial"`
	StillReturned         int `json:"stillReturned"`
}

type StatusTransition struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type DistributionBucket struct {
	Label      string          `json:"label"`
	Count      int             `json:"count"`
	Percentage float64         `json:"percentage"`
	Revenue    decimal.Decimal `json:"revenue"`
}

type DailyPoint struct {
	Date    string          `json:"date"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

type HourlyPoint struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

type WeeklyPoint struct {
	WeekStart string          `json:"weekStart"`
	Count     int             `json:"count"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type AnalyticsData struct {
	From      string `json:"from"`
	To        string `json:"to"`
	CourierID int    `json:"courierId,omitempty"`

	Performance CourierPerformance `json:"performance"`

	OrdersByDay  []DailyPoint  `json:"ordersByDay"`
	OrdersByHour []HourlyPoint `json:"ordersByHour"`
	WeeklyTrend  []WeeklyPoint `json:"weeklyTrend"`

	StatusDistribution  []DistributionBucket `json:"statusDistribution"`
	PaymentDistribution []DistributionBucket `json:"paymentDistribution"`

	Transitions []StatusTransition `json:"transitions"`
}

type StatusChange struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

type ReturnedOrderDetail struct {
	LogicalID     string          `json:"logicalId"`
	CourierID     int             `json:"courierId"`
	FinalStatus   string          `json:"finalStatus"`
	Outcome       string          `json:"outcome"`
	FeeTotal      decimal.Decimal `json:"feeTotal"`
	StatusHistory []StatusChange  `json:"statusHistory"`
}

const dateLayout = "2006-01-02"

func ConvertEntityPerformance(p *entity.CourierPerformance) CourierPerformance {
	return CourierPerformance{
		CourierID:        p.CourierID,
		CourierName:      p.CourierName,
		TotalOrders:      p.TotalOrders,
		DeliveredOrders:  p.DeliveredOrders,
		CanceledOrders:   p.CanceledOrders,
		PartialOrders:    p.PartialOrders,
		ReturnedOrders:   p.ReturnedOrders,
		HandToHandOrders: p.HandToHandOrders,
		SuccessfulOrders: p.SuccessfulOrders,
		TotalRevenue:     p.TotalRevenue.Round(2),
		DeliveredRevenue: p.DeliveredRevenue.Round(2),
		CompletionRate:   p.CompletionRate,
		CancellationRate: p.CancellationRate,
		ReturnRate:       p.ReturnRate,
		Lifecycle: LifecycleStats{
			TotalReturned:         p.Lifecycle.TotalReturned,
			ReturnedThenDelivered: p.Lifecycle.ReturnedThenDelivered,
			ReturnedThenCanceled:  p.Lifecycle.ReturnedThenCanceled,
			ReturnedThenPartial:   p.Lifecycle.ReturnedThenPartial,
			StillReturned:         p.Lifecycle.StillReturned,
		},
		Score: p.Score,
		Rank:  p.Rank,
	}
}

func ConvertEntityRanking(cohort []entity.CourierPerformance) []CourierPerformance {
	out := make([]CourierPerformance, 0, len(cohort))
	for i := range cohort {
		out = append(out, ConvertEntityPerformance(&cohort[i]))
	}
	return out
}

func ConvertEntityAnalyticsData(data *entity.AnalyticsData) *AnalyticsData {
	out := &AnalyticsData{
		From:        data.Period.From.Format(dateLayout),
		To:          data.Period.To.Format(dateLayout),
		CourierID:   data.CourierID,
		Performance: ConvertEntityPerformance(&data.Performance),
	}
	for _, p := range data.OrdersByDay {
		out.OrdersByDay = append(out.OrdersByDay, DailyPoint{
			Date:    p.Date.Format(dateLayout),
			Count:   p.Count,
			Revenue: p.Revenue.Round(2),
		})
	}
	for _, p := range data.OrdersByHour {
		out.OrdersByHour = append(out.OrdersByHour, HourlyPoint{Hour: p.Hour, Count: p.Count})
	}
	for _, p := range data.WeeklyTrend {
		out.WeeklyTrend = append(out.WeeklyTrend, WeeklyPoint{
			WeekStart: p.WeekStart.Format(dateLayout),
			Count:     p.Count,
			Revenue:   p.Revenue.Round(2),
		})
	}
	out.StatusDistribution = convertBuckets(data.StatusDistribution)
	out.PaymentDistribution = convertBuckets(data.PaymentDistribution)
	out.Transitions = ConvertEntityTransitions(data.Transitions)
	return out
}

func ConvertEntityTransitions(transitions []entity.StatusTransition) []StatusTransition {
	out := make([]StatusTransition, 0, len(transitions))
	for _, t := range transitions {
		out = append(out, StatusTransition{
			From:       t.From.String(),
			To:         t.To.String(),
			Count:      t.Count,
			Percentage: t.Percentage,
		})
	}
	return out
}

func convertBuckets(buckets []entity.DistributionBucket) []DistributionBucket {
	out := make([]DistributionBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, DistributionBucket{
			Label:      b.Label,
			Count:      b.Count,
			Percentage: b.Percentage,
			Revenue:    b.Revenue.Round(2),
		})
	}
	return out
}

func ConvertEntityReturnedDetails(details []entity.ReturnedOrderDetail) []ReturnedOrderDetail {
	out := make([]ReturnedOrderDetail, 0, len(details))
	for _, d := range details {
		detail := ReturnedOrderDetail{
			LogicalID:   d.LogicalID,
			CourierID:   d.CourierID,
			FinalStatus: d.FinalStatus.String(),
			Outcome:     d.Outcome.String(),
			FeeTotal:    d.FeeTotal.Round(2),
		}
		for _, sc := range d.StatusHistory {
			detail.StatusHistory = append(detail.StatusHistory, StatusChange{
				Status: sc.Status.String(),
				At:     sc.At,
			})
		}
		out = append(out, detail)
	}
	return out
}
