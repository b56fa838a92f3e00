package analytics

import (
	"sort"

	"github.com/tezexpress/courier-manager/internal/entity"
)

// GroupSnapshots partitions an unordered snapshot collection into per-logical-
// order histories sorted ascending by updated_at (fallback created_at). No
// snapshot is dropped: rows without an order number key on their own id and
// form singleton groups. Snapshots with equal timestamps, and unorderable
// snapshots placed last, keep their relative input order.
func GroupSnapshots(snapshots []entity.OrderSnapshot) (map[string]entity.OrderGroup, error) {
	if err := validateSnapshots(snapshots); err != nil {
		return nil, err
	}

	groups := make(map[string]entity.OrderGroup)
	for _, s := range snapshots {
		key := s.LogicalID()
		g := groups[key]
		g.LogicalID = key
		g.Snapshots = append(g.Snapshots, s)
		groups[key] = g
	}

	for key, g := range groups {
		sort.SliceStable(g.Snapshots, func(i, j int) bool {
			ti, iOk := g.Snapshots[i].OrderedAt()
			tj, jOk := g.Snapshots[j].OrderedAt()
			if !iOk || !jOk {
				// unorderable rows sort after everything else
				return iOk && !jOk
			}
			return ti.Before(tj)
		})
		groups[key] = g
	}
	return groups, nil
}

func validateSnapshots(snapshots []entity.OrderSnapshot) error {
	for i := range snapshots {
		s := &snapshots[i]
		if s.Status == "" {
			return &ComputationError{RowID: s.ID, Reason: "missing status"}
		}
		if !entity.ValidDeliveryStatusNames[s.Status] {
			return &ComputationError{RowID: s.ID, Reason: "unknown status " + s.Status.String()}
		}
	}
	return nil
}
