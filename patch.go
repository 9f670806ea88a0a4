package typerighter

import (
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// MarksResolver produces the marks an inserted fragment should carry. It
// is evaluated against the live document at the moment the patch is
// applied, never at patch-creation time: earlier patches in the same
// batch shift the positions the mark lookup depends on.
type MarksResolver func(doc Document) []Mark

// Patch is one step of a suggested-replacement application: either a
// deletion or an insertion. Patch positions are expressed against the
// document state produced by all earlier patches in the same batch, so a
// batch must be applied in the order it was produced.
type Patch interface {
	// Span returns the range the patch addresses.
	Span() Range

	isPatch()
}

// DeletePatch removes the text at [From, To).
type DeletePatch struct {
	From int
	To   int

	// Text is the text expected at [From, To) when the patch applies.
	// Application verifies it before mutating anything.
	Text string
}

// Span returns the deleted range.
func (p DeletePatch) Span() Range { return Range{From: p.From, To: p.To} }

func (DeletePatch) isPatch() {}

// InsertPatch inserts Text at From (From == To). Marks resolves the
// formatting the inserted text inherits, lazily at apply time.
type InsertPatch struct {
	From  int
	To    int
	Text  string
	Marks MarksResolver
}

// Span returns the insertion point as an empty range.
func (p InsertPatch) Span() Range { return Range{From: p.From, To: p.To} }

func (InsertPatch) isPatch() {}

// GetReplacementFragments computes the minimal ordered patch list that
// turns current into replacement, with positions offset by baseFrom (the
// absolute position of current in the document). Applying the patches in
// order to current always reproduces replacement exactly.
//
// Mark inheritance: an insertion contiguous with the previous insertion
// is an expansion of existing text and inherits the marks of the byte
// immediately before the insertion point; an insertion that replaces
// removed content inherits the marks spanning the full removed range,
// read before that removal takes effect. Both are resolved lazily; see
// MarksResolver.
func GetReplacementFragments(current, replacement string, baseFrom int) []Patch {
	differ := diffmatchpatch.New()
	diffs := differ.DiffMain(current, replacement, false)

	var patches []Patch
	pos := baseFrom
	for _, d := range diffs {
		n := len(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			pos += n

		case diffmatchpatch.DiffDelete:
			patches = append(patches, DeletePatch{From: pos, To: pos + n, Text: d.Text})
			// The deleted text no longer advances the cursor: once the
			// patch applies, following text sits at pos again.

		case diffmatchpatch.DiffInsert:
			from := pos
			patches = append(patches, InsertPatch{
				From:  from,
				To:    from,
				Text:  d.Text,
				Marks: resolverFor(patches, from),
			})
			pos += n
		}
	}
	return patches
}

// resolverFor picks the mark-inheritance policy for an insertion at from,
// given the patches emitted so far.
func resolverFor(emitted []Patch, from int) MarksResolver {
	if len(emitted) > 0 {
		if prev, ok := emitted[len(emitted)-1].(InsertPatch); ok && prev.To == from {
			// Expansion of a prior insertion: take the formatting of the
			// byte just before the insertion point.
			return func(doc Document) []Mark {
				if from == 0 {
					return nil
				}
				return doc.MarksBetween(from-1, from)
			}
		}
		if prev, ok := emitted[len(emitted)-1].(DeletePatch); ok && prev.From == from {
			// Replacement of removed content: take the marks spanning the
			// whole removed range. Valid only while that text is still
			// present, which patch application guarantees by resolving
			// marks before the paired deletion mutates the document.
			removed := prev.To - prev.From
			return func(doc Document) []Mark {
				return doc.MarksBetween(from, from+removed)
			}
		}
	}
	return func(doc Document) []Mark {
		if from == 0 {
			return nil
		}
		return doc.MarksBetween(from-1, from)
	}
}

// ApplyPatches applies a patch batch to doc in production order. Before
// mutating anything it replays the batch against a text snapshot and
// verifies every deletion matches its expected pre-state; on any mismatch
// the whole batch is rejected with ErrPatchMismatch and the document is
// untouched. It returns the edit operations performed, in order.
func ApplyPatches(doc EditableDocument, patches []Patch) ([]EditOp, error) {
	snapshot, err := doc.TextBetween(0, doc.Len())
	if err != nil {
		return nil, err
	}
	if err := simulatePatches(snapshot, patches); err != nil {
		return nil, err
	}

	var ops []EditOp
	for i := 0; i < len(patches); i++ {
		switch p := patches[i].(type) {
		case DeletePatch:
			// A deletion immediately followed by its replacement insert is
			// applied as one replace, so the insert's mark resolver still
			// sees the text it replaces.
			if i+1 < len(patches) {
				if ins, ok := patches[i+1].(InsertPatch); ok && ins.From == p.From {
					op, err := doc.Replace(p.From, p.To, ins.Text, resolveMarks(ins, doc))
					if err != nil {
						return ops, err
					}
					ops = append(ops, op)
					i++
					continue
				}
			}
			op, err := doc.Replace(p.From, p.To, "", nil)
			if err != nil {
				return ops, err
			}
			ops = append(ops, op)

		case InsertPatch:
			op, err := doc.Replace(p.From, p.From, p.Text, resolveMarks(p, doc))
			if err != nil {
				return ops, err
			}
			ops = append(ops, op)
		}
	}
	return ops, nil
}

func resolveMarks(p InsertPatch, doc Document) []Mark {
	if p.Marks == nil {
		return nil
	}
	return p.Marks(doc)
}

// simulatePatches replays the batch against text and verifies deletions.
func simulatePatches(text string, patches []Patch) error {
	for _, patch := range patches {
		switch p := patch.(type) {
		case DeletePatch:
			if p.From < 0 || p.To > len(text) || p.From > p.To {
				return fmt.Errorf("delete %d..%d of %d: %w", p.From, p.To, len(text), ErrOutOfBounds)
			}
			if text[p.From:p.To] != p.Text {
				return fmt.Errorf("delete %d..%d expected %q, document has %q: %w",
					p.From, p.To, p.Text, text[p.From:p.To], ErrPatchMismatch)
			}
			text = text[:p.From] + text[p.To:]
		case InsertPatch:
			if p.From < 0 || p.From > len(text) {
				return fmt.Errorf("insert at %d of %d: %w", p.From, len(text), ErrOutOfBounds)
			}
			text = text[:p.From] + p.Text + text[p.From:]
		}
	}
	return nil
}
