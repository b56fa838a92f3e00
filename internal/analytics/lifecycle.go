package analytics

import (
	"sort"

	"github.com/tezexpress/courier-manager/internal/entity"
)

// AnalyzeLifecycle derives the lifecycle record of one order group: whether it
// was ever returned, its final status and, for returned orders, the eventual
// outcome. Pure function of the group.
func AnalyzeLifecycle(g *entity.OrderGroup) entity.LifecycleRecord {
	rec := entity.LifecycleRecord{
		LogicalID:   g.LogicalID,
		CourierID:   g.LifecycleCourierID(),
		WasReturned: g.WasReturned(),
	}
	final := g.Final()
	if final == nil {
		return rec
	}
	rec.FinalStatus = final.Status

	if !rec.WasReturned {
		return rec
	}
	switch final.Status {
	case entity.Delivered:
		rec.Outcome = entity.OutcomeRecoveredDelivered
	case entity.Canceled:
		rec.Outcome = entity.OutcomeLostCanceled
	case entity.Partial:
		rec.Outcome = entity.OutcomeRecoveredPartial
	case entity.Returned:
		rec.Outcome = entity.OutcomeStillReturned
	default:
		rec.Outcome = entity.OutcomeOther
		rec.OutcomeLabel = final.Status.String()
	}
	return rec
}

// LifecycleStatsFor folds lifecycle records into per-outcome counts. Records
// are skipped when courierId is non-zero and the record is credited elsewhere.
func LifecycleStatsFor(records []entity.LifecycleRecord, courierId int) entity.LifecycleStats {
	var stats entity.LifecycleStats
	for _, rec := range records {
		if !rec.WasReturned {
			continue
		}
		if courierId != 0 && rec.CourierID != courierId {
			continue
		}
		stats.TotalReturned++
		switch rec.Outcome {
		case entity.OutcomeRecoveredDelivered:
			stats.ReturnedThenDelivered++
		case entity.OutcomeLostCanceled:
			stats.ReturnedThenCanceled++
		case entity.OutcomeRecoveredPartial:
			stats.ReturnedThenPartial++
		case entity.OutcomeStillReturned:
			stats.StillReturned++
		}
	}
	return stats
}

// MineTransitions walks consecutive snapshot pairs of every group with at
// least two snapshots and counts each (from, to) pair whose statuses differ.
// Self-transitions carry no information and are skipped. Percentage is the
// count relative to totalOrders, the number of logical orders in scope. The
// result is sorted descending by count, ties by from/to for a stable listing.
func MineTransitions(groups map[string]entity.OrderGroup, totalOrders int) []entity.StatusTransition {
	type pair struct {
		from entity.DeliveryStatusName
		to   entity.DeliveryStatusName
	}
	counts := make(map[pair]int)
	for _, g := range groups {
		for i := 1; i < len(g.Snapshots); i++ {
			from := g.Snapshots[i-1].Status
			to := g.Snapshots[i].Status
			if from == to {
				continue
			}
			counts[pair{from: from, to: to}]++
		}
	}

	transitions := make([]entity.StatusTransition, 0, len(counts))
	for p, c := range counts {
		t := entity.StatusTransition{From: p.from, To: p.to, Count: c}
		if totalOrders > 0 {
			t.Percentage = float64(c) / float64(totalOrders) * 100
		}
		transitions = append(transitions, t)
	}
	sort.Slice(transitions, func(i, j int) bool {
		if transitions[i].Count != transitions[j].Count {
			return transitions[i].Count > transitions[j].Count
		}
		if transitions[i].From != transitions[j].From {
			return transitions[i].From < transitions[j].From
		}
		return transitions[i].To < transitions[j].To
	})
	return transitions
}

// ReturnedDetails flattens every group that was ever returned into a drill-
// down record carrying its full status history, sorted by logical id.
func ReturnedDetails(groups map[string]entity.OrderGroup) []entity.ReturnedOrderDetail {
	var details []entity.ReturnedOrderDetail
	for _, g := range groups {
		if !g.WasReturned() {
			continue
		}
		rec := AnalyzeLifecycle(&g)
		detail := entity.ReturnedOrderDetail{
			LogicalID:   g.LogicalID,
			CourierID:   rec.CourierID,
			FinalStatus: rec.FinalStatus,
			Outcome:     rec.Outcome,
		}
		if final := g.Final(); final != nil {
			detail.FeeTotal = final.FeeTotalDecimal()
		}
		for _, s := range g.Snapshots {
			at, _ := s.OrderedAt()
			detail.StatusHistory = append(detail.StatusHistory, entity.StatusChange{
				Status: s.Status,
				At:     at,
			})
		}
		details = append(details, detail)
	}
	sort.Slice(details, func(i, j int) bool {
		return details[i].LogicalID < details[j].LogicalID
	})
	return details
}
