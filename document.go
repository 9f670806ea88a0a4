package typerighter

// Mark is a piece of formatting attached to a span of text, such as
// emphasis or a link. Marks are compared by type and attributes.
type Mark struct {
	Type  string
	Attrs map[string]string
}

// Equal reports whether two marks have the same type and attributes.
func (m Mark) Equal(other Mark) bool {
	if m.Type != other.Type || len(m.Attrs) != len(other.Attrs) {
		return false
	}
	for k, v := range m.Attrs {
		if other.Attrs[k] != v {
			return false
		}
	}
	return true
}

// Document is the read-only view of the editor document the core needs:
// text extraction, block enumeration and mark queries. The editor runtime
// supplies the real implementation; MemDoc is an in-memory one.
type Document interface {
	// Len returns the document length in bytes.
	Len() int

	// TextBetween returns the text of the half-open span [from, to).
	TextBetween(from, to int) (string, error)

	// EachBlock calls fn for every block-level unit in document order with
	// its absolute range. Enumeration stops when fn returns false.
	EachBlock(fn func(block Range) bool)

	// MarksBetween returns the marks present on every byte of [from, to).
	MarksBetween(from, to int) []Mark
}

// EditableDocument is a Document that also accepts text replacement. The
// returned edit operation carries positions recorded before the edit
// forward through it.
type EditableDocument interface {
	Document

	// Replace substitutes [from, to) with text carrying the given marks.
	Replace(from, to int, text string, marks []Mark) (EditOp, error)
}
