package typerighter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplacementMapAroundInsertion(t *testing.T) {
	// Insert 3 bytes at position 5.
	ins := Replacement{From: 5, To: 5, Length: 3}

	assert.Equal(t, 2, ins.Map(2, BiasStart), "positions before the edit do not move")
	assert.Equal(t, 10, ins.Map(7, BiasStart), "positions after the edit shift by the delta")
	assert.Equal(t, 5, ins.Map(5, BiasStart), "boundary with start bias stays before the content")
	assert.Equal(t, 8, ins.Map(5, BiasEnd), "boundary with end bias moves past the content")
}

func TestReplacementMapAroundDeletion(t *testing.T) {
	// Delete [5, 10).
	del := Replacement{From: 5, To: 10, Length: 0}

	assert.Equal(t, 4, del.Map(4, BiasStart))
	assert.Equal(t, 5, del.Map(7, BiasStart), "interior positions collapse to the deletion point")
	assert.Equal(t, 5, del.Map(7, BiasEnd))
	assert.Equal(t, 7, del.Map(12, BiasEnd))
}

func TestMapRangeGrowsOverInsertion(t *testing.T) {
	// A range around the insertion point grows to cover the new content.
	ops := []EditOp{Replacement{From: 5, To: 5, Length: 4}}
	assert.Equal(t, Range{3, 12}, MapRange(Range{3, 8}, ops))
}

func TestMapRangeCollapsesWhenDeleted(t *testing.T) {
	// A range fully contained in a deleted span maps to an empty range at
	// the deletion point.
	ops := []EditOp{Replacement{From: 2, To: 20, Length: 0}}
	mapped := MapRange(Range{5, 10}, ops)
	assert.Equal(t, Range{2, 2}, mapped)
	assert.True(t, mapped.Empty())
}

func TestMapRangeThroughTransactionsSelectsByID(t *testing.T) {
	history := []Transaction{
		{ID: 9, Ops: []EditOp{Replacement{From: 0, To: 0, Length: 100}}},
		{ID: 11, Ops: []EditOp{Replacement{From: 0, To: 0, Length: 2}}},
	}
	// Only transactions newer than the snapshot count; the id-9 insertion
	// predates it and must not shift the range.
	mapped := MapRangeThroughTransactions([]Range{{5, 8}}, 10, history)
	assert.Equal(t, []Range{{7, 10}}, mapped)
}

func TestMapRangeThroughTransactionsEmptyHistory(t *testing.T) {
	mapped := MapRangeThroughTransactions([]Range{{5, 10}}, 10, nil)
	assert.Equal(t, []Range{{5, 10}}, mapped)
}

func TestMappingAssociativity(t *testing.T) {
	// Mapping through a concatenated history equals mapping through its
	// parts in order.
	first := []Transaction{
		{ID: 1, Ops: []EditOp{Replacement{From: 2, To: 2, Length: 3}}},
		{ID: 2, Ops: []EditOp{Replacement{From: 10, To: 14, Length: 1}}},
	}
	second := []Transaction{
		{ID: 3, Ops: []EditOp{Replacement{From: 0, To: 1, Length: 0}}},
		{ID: 4, Ops: []EditOp{Replacement{From: 6, To: 6, Length: 5}}},
	}
	ranges := []Range{{0, 4}, {5, 9}, {12, 18}, {3, 3}}

	whole := MapRangeThroughTransactions(ranges, 0, append(append([]Transaction(nil), first...), second...))
	sequential := MapRangeThroughTransactions(MapRangeThroughTransactions(ranges, 0, first), 0, second)
	require.Equal(t, whole, sequential)
}

func TestStaleResponseScenario(t *testing.T) {
	// A response computed against the id-10 snapshot arrives after three
	// further edits (ids 11..13) inserted 5 bytes at position 2. Its
	// range must land 5 bytes further right on the live document.
	history := []Transaction{
		{ID: 11, Ops: []EditOp{Replacement{From: 2, To: 2, Length: 2}}},
		{ID: 12, Ops: []EditOp{Replacement{From: 2, To: 2, Length: 2}}},
		{ID: 13, Ops: []EditOp{Replacement{From: 2, To: 2, Length: 1}}},
	}
	mapped := MapRangeThroughTransactions([]Range{{8, 12}}, 10, history)
	assert.Equal(t, []Range{{13, 17}}, mapped)
}
