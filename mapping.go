package typerighter

// Bias resolves ties when a mapped position falls exactly on an edit
// boundary: toward the start of any inserted content, or past its end.
type Bias int

const (
	// BiasStart resolves a boundary position to the start of inserted content.
	BiasStart Bias = -1

	// BiasEnd resolves a boundary position past the end of inserted content.
	BiasEnd Bias = 1
)

// EditOp is one atomic transformation of the document. It must expose a
// deterministic position-mapping function so positions recorded before the
// edit can be carried forward through it.
type EditOp interface {
	// Map returns the position pos occupies after the edit.
	Map(pos int, bias Bias) int
}

// Replacement is the canonical edit operation: the span [From, To) is
// replaced by new content of Length bytes. An insertion has From == To,
// a deletion has Length == 0.
type Replacement struct {
	From   int
	To     int
	Length int
}

// Map carries pos through the replacement. Positions on or inside the
// replaced span resolve to its start or its new end depending on bias;
// positions past it shift by the length delta.
func (e Replacement) Map(pos int, bias Bias) int {
	switch {
	case pos < e.From:
		return pos
	case pos > e.To:
		return pos + e.Length - (e.To - e.From)
	default:
		if bias == BiasEnd {
			return e.From + e.Length
		}
		return e.From
	}
}

// Transaction is an ordered batch of edit operations applied atomically to
// one document version. IDs increase monotonically across a session.
type Transaction struct {
	ID  int64
	Ops []EditOp
}

// MapPos carries a single position through the transaction's operations.
func (tr Transaction) MapPos(pos int, bias Bias) int {
	for _, op := range tr.Ops {
		pos = op.Map(pos, bias)
	}
	return pos
}

// MapRange carries a range through an ordered list of edit operations.
// From is mapped with BiasStart and To with BiasEnd, so a range around an
// insertion point grows to cover the inserted content. A range whose text
// was entirely deleted collapses to an empty range at the deletion point;
// callers for whom empty ranges are meaningless must filter them.
func MapRange(r Range, ops []EditOp) Range {
	for _, op := range ops {
		r = Range{From: op.Map(r.From, BiasStart), To: op.Map(r.To, BiasEnd)}
	}
	return r
}

// MapRanges maps every range through the same operations. Empty results
// are retained; see MapRange.
func MapRanges(ranges []Range, ops []EditOp) []Range {
	out := make([]Range, len(ranges))
	for i, r := range ranges {
		out[i] = MapRange(r, ops)
	}
	return out
}

// MapRangeThroughTransactions carries ranges through every transaction in
// history with an ID greater than sinceID. History must be ordered by
// increasing ID, which is how the plugin state accrues it. Mapping through
// a concatenated history equals mapping through its parts in order.
func MapRangeThroughTransactions(ranges []Range, sinceID int64, history []Transaction) []Range {
	out := make([]Range, len(ranges))
	copy(out, ranges)
	for _, tr := range history {
		if tr.ID <= sinceID {
			continue
		}
		for i, r := range out {
			out[i] = MapRange(r, tr.Ops)
		}
	}
	return out
}
