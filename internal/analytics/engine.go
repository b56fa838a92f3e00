package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tezexpress/courier-manager/internal/cache"
	"github.com/tezexpress/courier-manager/internal/dependency"
	"github.com/tezexpress/courier-manager/internal/entity"
)

// Config tunes the engine's non-policy knobs. Scoring weights are fixed
// business rules and deliberately not configurable.
type Config struct {
	ReportCacheTTL time.Duration `mapstructure:"report_cache_ttl"`
}

// Engine reconstructs order histories from snapshot rows and turns them into
// courier performance reports. Every invocation reads a frozen input set and
// returns fresh objects, so computations are idempotent and safe to run
// concurrently.
type Engine struct {
	rep     dependency.Repository
	reports *cache.Reports
	now     func() time.Time
}

func New(rep dependency.Repository, cfg Config) *Engine {
	return &Engine{
		rep:     rep,
		reports: cache.NewReports(cfg.ReportCacheTTL),
		now:     time.Now,
	}
}

// workingSet fetches the range superset, groups it, applies the inclusion
// rule and pulls the full history of every included logical order so that
// lifecycle classification never sees a truncated group.
func (e *Engine) workingSet(ctx context.Context, period entity.TimeRange, courierId int) (map[string]entity.OrderGroup, error) {
	snapshots, err := e.rep.Snapshots().ListByRange(ctx, period.From, period.To, courierId)
	if err != nil {
		return nil, fmt.Errorf("list snapshots by range: %w", err)
	}
	groups, err := GroupSnapshots(snapshots)
	if err != nil {
		return nil, err
	}
	included := FilterGroups(groups, period)

	var orderNumbers []string
	for key, g := range included {
		if f := g.First(); f != nil && f.OrderNumber.Valid && f.OrderNumber.String != "" {
			orderNumbers = append(orderNumbers, key)
		}
	}
	if len(orderNumbers) == 0 {
		return included, nil
	}

	full, err := e.rep.Snapshots().ListByOrderNumbers(ctx, orderNumbers)
	if err != nil {
		return nil, fmt.Errorf("list snapshots by order numbers: %w", err)
	}
	fullGroups, err := GroupSnapshots(full)
	if err != nil {
		return nil, err
	}
	for key, g := range fullGroups {
		if _, ok := included[key]; ok {
			included[key] = g
		}
	}
	return included, nil
}

func lifecycleRecords(groups map[string]entity.OrderGroup) []entity.LifecycleRecord {
	records := make([]entity.LifecycleRecord, 0, len(groups))
	for _, g := range groups {
		records = append(records, AnalyzeLifecycle(&g))
	}
	return records
}

// CohortRanking scores every courier with role "courier" over the period and
// returns them ranked. Grouping and lifecycle classification run once over
// the shared working set before any per-courier aggregation, so the original
// and current courier of a reassigned order see the same group.
func (e *Engine) CohortRanking(ctx context.Context, period entity.TimeRange) ([]entity.CourierPerformance, error) {
	couriers, err := e.rep.Couriers().ListByRole(ctx, entity.RoleCourier)
	if err != nil {
		return nil, fmt.Errorf("list couriers: %w", err)
	}

	groups, err := e.workingSet(ctx, period, 0)
	if err != nil {
		return nil, err
	}
	records := lifecycleRecords(groups)
	now := e.now()

	// per-courier folds are independent of each other
	cohort := make([]entity.CourierPerformance, len(couriers))
	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)
	for i, c := range couriers {
		i, c := i, c
		g.Go(func() error {
			agg := Aggregate(groups, records, c.ID, now)
			perf := agg.Performance
			perf.CourierName = c.Name
			perf.Score = Score(&perf)
			mu.Lock()
			cohort[i] = perf
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Rank(cohort), nil
}

// CourierReport builds the analytics bundle for one courier; courierId == 0
// yields the global view. Reports are memoized per (period, courier).
func (e *Engine) CourierReport(ctx context.Context, period entity.TimeRange, courierId int) (*entity.AnalyticsData, error) {
	key := cache.Key(period, courierId)
	if data, ok := e.reports.Get(key); ok {
		return data, nil
	}

	var courierName string
	if courierId != 0 {
		c, err := e.rep.Couriers().GetCourierById(ctx, courierId)
		if err != nil {
			return nil, fmt.Errorf("get courier %d: %w", courierId, err)
		}
		courierName = c.Name
	}

	groups, err := e.workingSet(ctx, period, courierId)
	if err != nil {
		return nil, err
	}
	records := lifecycleRecords(groups)

	agg := Aggregate(groups, records, courierId, e.now())
	agg.Performance.CourierName = courierName
	agg.Performance.Score = Score(&agg.Performance)

	data := &entity.AnalyticsData{
		Period:              period,
		CourierID:           courierId,
		Performance:         agg.Performance,
		OrdersByDay:         agg.OrdersByDay,
		OrdersByHour:        agg.OrdersByHour,
		WeeklyTrend:         agg.WeeklyTrend,
		StatusDistribution:  agg.StatusDistribution,
		PaymentDistribution: agg.PaymentDistribution,
		Transitions:         MineTransitions(groups, len(groups)),
	}
	e.reports.Set(key, data)
	return data, nil
}

// ReturnedOrderDetails lists every order in scope that was ever returned with
// its full status history for drill-down display.
func (e *Engine) ReturnedOrderDetails(ctx context.Context, period entity.TimeRange, courierId int) ([]entity.ReturnedOrderDetail, error) {
	groups, err := e.workingSet(ctx, period, courierId)
	if err != nil {
		return nil, err
	}
	details := ReturnedDetails(groups)
	if courierId == 0 {
		return details, nil
	}
	filtered := details[:0]
	for _, d := range details {
		if d.CourierID == courierId {
			filtered = append(filtered, d)
		}
	}
	return filtered, nil
}

// InvalidateReports drops memoized reports. The snapshot sync calls this
// after every write batch.
func (e *Engine) InvalidateReports() {
	e.reports.Invalidate()
}
