package typerighter

import "sort"

// Range is a half-open [From, To) span of byte offsets into the document,
// 0-indexed at the document start. From <= To always holds for valid ranges.
type Range struct {
	From int
	To   int
}

// Empty reports whether the range covers no text.
func (r Range) Empty() bool {
	return r.From >= r.To
}

// Size returns the number of bytes the range covers.
func (r Range) Size() int {
	if r.Empty() {
		return 0
	}
	return r.To - r.From
}

// Contains reports whether pos falls inside the range.
func (r Range) Contains(pos int) bool {
	return pos >= r.From && pos < r.To
}

// Overlaps reports whether the two ranges share at least one position.
func (r Range) Overlaps(other Range) bool {
	return r.From < other.To && other.From < r.To
}

// Touches reports whether the two ranges overlap or abut.
func (r Range) Touches(other Range) bool {
	return r.From <= other.To && other.From <= r.To
}

// MergeRanges collapses overlapping and abutting ranges into a minimal
// sorted set of disjoint ranges. The input is not modified. The operation
// is idempotent: merging an already-merged set returns an equal set.
func MergeRanges(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}

	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].From != sorted[j].From {
			return sorted[i].From < sorted[j].From
		}
		return sorted[i].To < sorted[j].To
	})

	merged := []Range{sorted[0]}
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if r.From <= last.To {
			if r.To > last.To {
				last.To = r.To
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// filterEmpty drops ranges that no longer cover any text, e.g. after the
// text they annotated was deleted.
func filterEmpty(ranges []Range) []Range {
	out := ranges[:0:0]
	for _, r := range ranges {
		if !r.Empty() {
			out = append(out, r)
		}
	}
	return out
}
