package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tezexpress/courier-manager/internal/entity"
)

func TestRankSortsByScoreDescending(t *testing.T) {
	cohort := []entity.CourierPerformance{
		{CourierID: 1, Score: 70.5},
		{CourierID: 2, Score: 92.1},
		{CourierID: 3, Score: 85.0},
	}

	ranked := Rank(cohort)

	require.Len(t, ranked, 3)
	assert.Equal(t, []int{2, 3, 1}, []int{ranked[0].CourierID, ranked[1].CourierID, ranked[2].CourierID})
	for i, p := range ranked {
		assert.Equal(t, i+1, p.Rank)
	}
}

func TestRankTieBreaksOnOrdersThenId(t *testing.T) {
	cohort := []entity.CourierPerformance{
		{CourierID: 5, Score: 80.0, TotalOrders: 10},
		{CourierID: 3, Score: 80.0, TotalOrders: 25},
		{CourierID: 4, Score: 80.0, TotalOrders: 10},
	}

	ranked := Rank(cohort)

	// equal scores get adjacent distinct ranks: more orders first, then lower id
	assert.Equal(t, 3, ranked[0].CourierID)
	assert.Equal(t, 4, ranked[1].CourierID)
	assert.Equal(t, 5, ranked[2].CourierID)
	assert.Equal(t, []int{1, 2, 3}, []int{ranked[0].Rank, ranked[1].Rank, ranked[2].Rank})
}

func TestRankDoesNotMutateInput(t *testing.T) {
	cohort := []entity.CourierPerformance{
		{CourierID: 1, Score: 10},
		{CourierID: 2, Score: 90},
	}

	_ = Rank(cohort)

	assert.Equal(t, 1, cohort[0].CourierID)
	assert.Zero(t, cohort[0].Rank)
}

func TestRankEmptyCohort(t *testing.T) {
	assert.Empty(t, Rank(nil))
}
