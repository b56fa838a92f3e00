package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tezexpress/courier-manager/internal/entity"
)

// weeklyTrendBuckets is the number of trailing weeks shown on the trend chart.
const weeklyTrendBuckets = 8

// IncludeInRange decides whether a logical order belongs to a date-filtered
// report. Returned orders are deliberately retained across the window boundary
// so their eventual recovery or loss stays visible:
//   - any snapshot updated within [from, to), or
//   - the order was ever returned and had any activity in range, or
//   - the return itself happened in range.
func IncludeInRange(g *entity.OrderGroup, period entity.TimeRange) bool {
	wasReturned := g.WasReturned()
	for i := range g.Snapshots {
		s := &g.Snapshots[i]
		if at, ok := s.OrderedAt(); ok && inRange(at, period) {
			return true
		}
		if wasReturned && !s.CreatedAt.IsZero() && inRange(s.CreatedAt, period) {
			return true
		}
		if s.Status == entity.Returned {
			if at, ok := s.OrderedAt(); ok && inRange(at, period) {
				return true
			}
		}
	}
	return false
}

func inRange(t time.Time, period entity.TimeRange) bool {
	return !t.Before(period.From) && t.Before(period.To)
}

// FilterGroups keeps only the groups included in the period per the inclusion
// rule. Once a group is included all of its snapshots stay in the working set,
// so lifecycle classification sees the full history.
func FilterGroups(groups map[string]entity.OrderGroup, period entity.TimeRange) map[string]entity.OrderGroup {
	included := make(map[string]entity.OrderGroup, len(groups))
	for key, g := range groups {
		if IncludeInRange(&g, period) {
			included[key] = g
		}
	}
	return included
}

// Aggregation is the full fold of one courier's (or the whole cohort's) order
// groups: counts, revenue, rates, time-bucketed breakdowns and distributions.
type Aggregation struct {
	Performance entity.CourierPerformance

	OrdersByDay  []entity.DailyPoint
	OrdersByHour []entity.HourlyPoint
	WeeklyTrend  []entity.WeeklyPoint

	StatusDistribution  []entity.DistributionBucket
	PaymentDistribution []entity.DistributionBucket
}

// Aggregate folds the given order groups into performance metrics. courierId
// selects the groups currently attributed to that courier; zero keeps every
// group. A logical order counts once, by its final snapshot: the source models
// order history as one row rewritten in place, so the final snapshot carries
// the order's current fee and status. now anchors the trailing weekly trend.
func Aggregate(groups map[string]entity.OrderGroup, records []entity.LifecycleRecord, courierId int, now time.Time) Aggregation {
	agg := Aggregation{}
	perf := &agg.Performance
	perf.CourierID = courierId
	perf.TotalRevenue = decimal.Zero
	perf.DeliveredRevenue = decimal.Zero

	statusCounts := make(map[entity.DeliveryStatusName]int)
	statusRevenue := make(map[entity.DeliveryStatusName]decimal.Decimal)
	paymentCounts := make(map[string]int)
	paymentRevenue := make(map[string]decimal.Decimal)
	daily := make(map[string]*entity.DailyPoint)
	hourly := make([]int, 24)

	weekly := make([]entity.WeeklyPoint, weeklyTrendBuckets)
	for i := 0; i < weeklyTrendBuckets; i++ {
		end := now.AddDate(0, 0, -7*(weeklyTrendBuckets-1-i))
		weekly[i] = entity.WeeklyPoint{
			WeekStart: end.AddDate(0, 0, -7),
			Revenue:   decimal.Zero,
		}
	}

	for _, g := range groups {
		if courierId != 0 && g.CurrentCourierID() != courierId {
			continue
		}
		final := g.Final()
		if final == nil {
			continue
		}
		fee := final.FeeTotalDecimal()

		perf.TotalOrders++
		perf.TotalRevenue = perf.TotalRevenue.Add(fee)
		statusCounts[final.Status]++
		statusRevenue[final.Status] = statusRevenue[final.Status].Add(fee)

		if final.Status == entity.Delivered || final.Status == entity.Partial {
			perf.DeliveredRevenue = perf.DeliveredRevenue.Add(fee)
		}
		if g.WasReturned() {
			perf.ReturnedOrders++
		}

		pm := final.PaymentMethod.String()
		if pm == "" {
			pm = "unknown"
		}
		paymentCounts[pm]++
		paymentRevenue[pm] = paymentRevenue[pm].Add(fee)

		// time buckets key on the order's creation, not its last update
		created := g.First().CreatedAt
		if !created.IsZero() {
			day := created.Format("2006-01-02")
			dp, ok := daily[day]
			if !ok {
				dp = &entity.DailyPoint{
					Date:    created.Truncate(24 * time.Hour),
					Revenue: decimal.Zero,
				}
				daily[day] = dp
			}
			dp.Count++
			dp.Revenue = dp.Revenue.Add(fee)

			hourly[created.Hour()]++

			for i := range weekly {
				start := weekly[i].WeekStart
				if !created.Before(start) && created.Before(start.AddDate(0, 0, 7)) {
					weekly[i].Count++
					weekly[i].Revenue = weekly[i].Revenue.Add(fee)
					break
				}
			}
		}
	}

	perf.DeliveredOrders = statusCounts[entity.Delivered]
	perf.CanceledOrders = statusCounts[entity.Canceled]
	perf.PartialOrders = statusCounts[entity.Partial]
	perf.HandToHandOrders = statusCounts[entity.HandToHand]
	// partial deliveries count as successful
	perf.SuccessfulOrders = perf.DeliveredOrders + perf.PartialOrders

	if perf.TotalOrders > 0 {
		total := float64(perf.TotalOrders)
		perf.CompletionRate = float64(perf.SuccessfulOrders) / total * 100
		perf.CancellationRate = float64(perf.CanceledOrders) / total * 100
		perf.ReturnRate = float64(perf.ReturnedOrders) / total * 100
	}

	perf.Lifecycle = LifecycleStatsFor(records, courierId)

	for day := range daily {
		agg.OrdersByDay = append(agg.OrdersByDay, *daily[day])
	}
	sort.Slice(agg.OrdersByDay, func(i, j int) bool {
		return agg.OrdersByDay[i].Date.Before(agg.OrdersByDay[j].Date)
	})

	agg.OrdersByHour = make([]entity.HourlyPoint, 24)
	for h := 0; h < 24; h++ {
		agg.OrdersByHour[h] = entity.HourlyPoint{Hour: h, Count: hourly[h]}
	}

	agg.WeeklyTrend = weekly

	agg.StatusDistribution = distribution(statusCountsAsStrings(statusCounts), statusRevenueAsStrings(statusRevenue), perf.TotalOrders)
	agg.PaymentDistribution = distribution(paymentCounts, paymentRevenue, perf.TotalOrders)

	return agg
}

// distribution turns count/revenue maps into sorted buckets, omitting any
// bucket with zero count.
func distribution(counts map[string]int, revenue map[string]decimal.Decimal, total int) []entity.DistributionBucket {
	buckets := make([]entity.DistributionBucket, 0, len(counts))
	for label, count := range counts {
		if count == 0 {
			continue
		}
		b := entity.DistributionBucket{
			Label:   label,
			Count:   count,
			Revenue: revenue[label],
		}
		if total > 0 {
			b.Percentage = float64(count) / float64(total) * 100
		}
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Label < buckets[j].Label
	})
	return buckets
}

func statusCountsAsStrings(counts map[entity.DeliveryStatusName]int) map[string]int {
	out := make(map[string]int, len(counts))
	for k, v := range counts {
		out[k.String()] = v
	}
	return out
}

func statusRevenueAsStrings(revenue map[entity.DeliveryStatusName]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(revenue))
	for k, v := range revenue {
		out[k.String()] = v
	}
	return out
}
