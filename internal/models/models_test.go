package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByBatchKeepsFirstSeenOrder(t *testing.T) {
	blocks := []Block{
		{ID: 1, BatchID: "b", CourtName: "Platz 1"},
		{ID: 2, BatchID: "a", CourtName: "Platz 2"},
		{ID: 3, BatchID: "b", CourtName: "Platz 3"},
		{ID: 4, BatchID: "b", CourtName: "Platz 1"},
	}
	batches := GroupByBatch(blocks)
	require.Len(t, batches, 2)
	assert.Equal(t, "b", batches[0].ID)
	assert.Len(t, batches[0].Blocks, 3)
	assert.Equal(t, []string{"Platz 1", "Platz 3"}, batches[0].CourtNames())
	assert.Equal(t, "a", batches[1].ID)
}

func TestSelectionHelpers(t *testing.T) {
	sel := Selection{{ID: 1, BatchID: "x"}, {ID: 2, BatchID: "y"}, {ID: 3, BatchID: "x"}}
	assert.Equal(t, []int{1, 2, 3}, sel.BlockIDs())
	assert.Equal(t, []string{"x", "y"}, sel.BatchIDs())
	assert.Equal(t, map[string]int{"x": 2, "y": 1}, sel.CountByBatch())
}

func TestActiveReasons(t *testing.T) {
	reasons := []Reason{{ID: 1, Name: "Turnier", IsActive: true}, {ID: 2, Name: "Alt"}}
	assert.Equal(t, []Reason{{ID: 1, Name: "Turnier", IsActive: true}}, ActiveReasons(reasons))
}

func TestSortBlocks(t *testing.T) {
	blocks := []Block{
		{ID: 1, Date: "2026-10-19", StartTime: "08:00", CourtID: 1},
		{ID: 2, Date: "2026-10-18", StartTime: "10:00", CourtID: 2},
		{ID: 3, Date: "2026-10-18", StartTime: "10:00", CourtID: 1},
	}
	SortBlocks(blocks)
	assert.Equal(t, 3, blocks[0].ID)
	assert.Equal(t, 2, blocks[1].ID)
	assert.Equal(t, 1, blocks[2].ID)
}
