package typerighter

import (
	"fmt"
	"strings"
)

// markSpan attaches a mark to an absolute range of the document.
type markSpan struct {
	rng  Range
	mark Mark
}

// MemDoc is an in-memory implementation of EditableDocument: plain text
// whose newline-separated lines are the block-level units, plus mark
// spans that slide through edits the same way annotations do. It stands
// in for the editor runtime in tests and in the demo command.
type MemDoc struct {
	text  string
	marks []markSpan
}

// NewMemDoc creates a document holding the given text with no marks.
func NewMemDoc(text string) *MemDoc {
	return &MemDoc{text: text}
}

// Len returns the document length in bytes.
func (d *MemDoc) Len() int {
	return len(d.text)
}

// Text returns the full document text.
func (d *MemDoc) Text() string {
	return d.text
}

// TextBetween returns the text of [from, to).
func (d *MemDoc) TextBetween(from, to int) (string, error) {
	if from > to {
		return "", fmt.Errorf("text between %d and %d: %w", from, to, ErrInvalidRange)
	}
	if from < 0 || to > len(d.text) {
		return "", fmt.Errorf("text between %d and %d of %d: %w", from, to, len(d.text), ErrOutOfBounds)
	}
	return d.text[from:to], nil
}

// EachBlock enumerates the newline-separated lines as block units. The
// separating newlines belong to no block. An empty document has a single
// empty block at position 0.
func (d *MemDoc) EachBlock(fn func(block Range) bool) {
	start := 0
	for {
		i := strings.IndexByte(d.text[start:], '\n')
		if i < 0 {
			fn(Range{From: start, To: len(d.text)})
			return
		}
		if !fn(Range{From: start, To: start + i}) {
			return
		}
		start += i + 1
	}
}

// MarksBetween returns the marks covering every byte of [from, to). For
// an empty span it returns the marks present at the position.
func (d *MemDoc) MarksBetween(from, to int) []Mark {
	probe := Range{From: from, To: to}
	if probe.Empty() {
		probe = Range{From: from, To: from + 1}
	}
	var out []Mark
	for _, s := range d.marks {
		if s.rng.From <= probe.From && s.rng.To >= probe.To {
			out = append(out, s.mark)
		}
	}
	return out
}

// Replace substitutes [from, to) with text carrying the given marks and
// returns the corresponding edit operation. Existing mark spans slide
// through the edit; spans whose text is deleted collapse and are dropped.
func (d *MemDoc) Replace(from, to int, text string, marks []Mark) (EditOp, error) {
	if from > to {
		return nil, fmt.Errorf("replace %d..%d: %w", from, to, ErrInvalidRange)
	}
	if from < 0 || to > len(d.text) {
		return nil, fmt.Errorf("replace %d..%d of %d: %w", from, to, len(d.text), ErrOutOfBounds)
	}

	op := Replacement{From: from, To: to, Length: len(text)}
	d.text = d.text[:from] + text + d.text[to:]

	kept := d.marks[:0]
	for _, s := range d.marks {
		s.rng = MapRange(s.rng, []EditOp{op})
		if !s.rng.Empty() {
			kept = append(kept, s)
		}
	}
	d.marks = kept

	for _, m := range marks {
		if len(text) > 0 {
			d.marks = append(d.marks, markSpan{rng: Range{From: from, To: from + len(text)}, mark: m})
		}
	}
	return op, nil
}
