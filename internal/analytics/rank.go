package analytics

import (
	"sort"

	"github.com/tezexpress/courier-manager/internal/entity"
)

// Rank sorts the cohort descending by score and assigns rank = index + 1.
// Equal scores break on total orders descending, then courier id ascending,
// so the ordering is deterministic across runs.
func Rank(cohort []entity.CourierPerformance) []entity.CourierPerformance {
	ranked := make([]entity.CourierPerformance, len(cohort))
	copy(ranked, cohort)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].TotalOrders != ranked[j].TotalOrders {
			return ranked[i].TotalOrders > ranked[j].TotalOrders
		}
		return ranked[i].CourierID < ranked[j].CourierID
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
