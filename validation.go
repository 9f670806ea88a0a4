package typerighter

import "fmt"

// ValidationInput is a snapshot of a block of text and its range at the
// moment a request is dispatched. The snapshot stays fixed while the
// document keeps changing underneath it.
type ValidationInput struct {
	ID   string
	Text string
	Span Range
}

// ValidationOutput is one validated finding. Its ID embeds the
// originating input's ID plus the finding's offset within that input, so
// it stays stable while the range is re-mapped through later edits. Text
// is the exact text the finding was computed against; the merge policy
// uses it to drop findings whose anchor text was edited away.
type ValidationOutput struct {
	ID          string
	Category    string
	Annotation  string
	Span        Range
	Text        string
	Suggestions []string
}

// OutputID derives a validation output ID from its input and the
// finding's start offset within the snapshot.
func OutputID(inputID string, offset int) string {
	return fmt.Sprintf("%s--%d", inputID, offset)
}

// InFlight describes the single outstanding validation request: the
// inputs it carries and the transaction ID of the document version they
// were snapshotted from. Ranges in the eventual response are expressed
// against that version and must be mapped through every transaction
// applied since.
type InFlight struct {
	ID      string
	Inputs  []ValidationInput
	SinceID int64
}

// InputSpans returns the ranges of the in-flight inputs.
func (f *InFlight) InputSpans() []Range {
	spans := make([]Range, len(f.Inputs))
	for i, in := range f.Inputs {
		spans[i] = in.Span
	}
	return spans
}
