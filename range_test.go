package typerighter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeRangesOverlapping(t *testing.T) {
	merged := MergeRanges([]Range{{5, 10}, {8, 15}, {20, 25}})
	assert.Equal(t, []Range{{5, 15}, {20, 25}}, merged)
}

func TestMergeRangesAdjacent(t *testing.T) {
	// Abutting ranges collapse into one.
	merged := MergeRanges([]Range{{0, 5}, {5, 9}})
	assert.Equal(t, []Range{{0, 9}}, merged)
}

func TestMergeRangesUnsortedInput(t *testing.T) {
	merged := MergeRanges([]Range{{20, 30}, {0, 4}, {25, 40}, {2, 6}})
	assert.Equal(t, []Range{{0, 6}, {20, 40}}, merged)
}

func TestMergeRangesEmptyInput(t *testing.T) {
	assert.Nil(t, MergeRanges(nil))
	assert.Nil(t, MergeRanges([]Range{}))
}

func TestMergeRangesPointRanges(t *testing.T) {
	// A deletion leaves an empty point range; it survives merging and is
	// absorbed by a covering range.
	merged := MergeRanges([]Range{{7, 7}})
	assert.Equal(t, []Range{{7, 7}}, merged)

	merged = MergeRanges([]Range{{5, 10}, {7, 7}})
	assert.Equal(t, []Range{{5, 10}}, merged)
}

func TestMergeRangesIdempotent(t *testing.T) {
	inputs := [][]Range{
		{{3, 9}, {1, 4}, {9, 9}, {15, 20}},
		{{0, 1}, {1, 2}, {2, 3}},
		{{10, 20}},
	}
	for _, in := range inputs {
		once := MergeRanges(in)
		twice := MergeRanges(once)
		require.Equal(t, once, twice, "merge must be idempotent for %v", in)
	}
}

func TestMergeRangesSortedDisjoint(t *testing.T) {
	merged := MergeRanges([]Range{{40, 50}, {0, 10}, {5, 12}, {30, 41}, {60, 60}})
	for i := 1; i < len(merged); i++ {
		assert.Greater(t, merged[i].From, merged[i-1].To,
			"output must be sorted and disjoint, got %v", merged)
	}
}

func TestRangePredicates(t *testing.T) {
	r := Range{5, 10}
	assert.True(t, r.Contains(5))
	assert.False(t, r.Contains(10))
	assert.True(t, r.Overlaps(Range{9, 20}))
	assert.False(t, r.Overlaps(Range{10, 20}))
	assert.True(t, r.Touches(Range{10, 20}))
	assert.False(t, r.Touches(Range{11, 20}))
	assert.True(t, Range{3, 3}.Empty())
	assert.Equal(t, 5, r.Size())
}
