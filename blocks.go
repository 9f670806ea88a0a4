package typerighter

// ExpandToBlocks grows each range outward to the block-level units it
// touches, so validation always operates on whole semantic units and
// responses can be merged back at block granularity. An empty range (for
// example the collapse point of a deletion) selects the block containing
// it. The result is merged into a minimal disjoint set.
func ExpandToBlocks(ranges []Range, doc Document) []Range {
	if len(ranges) == 0 {
		return nil
	}
	var blocks []Range
	doc.EachBlock(func(b Range) bool {
		for _, r := range ranges {
			if b.Touches(r) {
				blocks = append(blocks, b)
				break
			}
		}
		return true
	})
	return MergeRanges(blocks)
}
