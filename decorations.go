package typerighter

import "sync"

// DecorationKind distinguishes the visual markers the lifecycle manages.
type DecorationKind int

const (
	// DecorationDirty marks a range edited since the last validation.
	// Only rendered in debug mode.
	DecorationDirty DecorationKind = iota

	// DecorationInFlight marks a range currently being validated.
	DecorationInFlight

	// DecorationResult marks a validated finding.
	DecorationResult
)

// String returns a human-readable name for the kind.
func (k DecorationKind) String() string {
	switch k {
	case DecorationDirty:
		return "dirty"
	case DecorationInFlight:
		return "inflight"
	case DecorationResult:
		return "result"
	default:
		return "unknown"
	}
}

// Decoration is a visual marker attached to a live document range. Result
// decorations carry the id of the validation output they render.
type Decoration struct {
	ID   string
	Kind DecorationKind
	Span Range
}

// DecorationStore is the decoration collection the editor runtime exposes.
// The reducer adds and removes markers through it; the store is expected
// to keep marker positions in step with the document.
type DecorationStore interface {
	// Add attaches decorations to the document.
	Add(decos ...Decoration)

	// Remove detaches every decoration equal to one of the given values.
	Remove(decos ...Decoration)

	// Find returns the decorations overlapping [from, to) that satisfy
	// pred. A nil pred matches everything.
	Find(from, to int, pred func(Decoration) bool) []Decoration
}

// MemDecorationStore is an in-memory DecorationStore whose decorations
// slide through edit operations. Safe for concurrent use.
type MemDecorationStore struct {
	mu    sync.RWMutex
	decos []Decoration
}

// NewMemDecorationStore creates an empty store.
func NewMemDecorationStore() *MemDecorationStore {
	return &MemDecorationStore{}
}

// Add attaches decorations.
func (s *MemDecorationStore) Add(decos ...Decoration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decos = append(s.decos, decos...)
}

// Remove detaches every decoration equal to one of the given values.
func (s *MemDecorationStore) Remove(decos ...Decoration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.decos[:0]
	for _, d := range s.decos {
		remove := false
		for _, victim := range decos {
			if d.ID == victim.ID && d.Kind == victim.Kind && d.Span == victim.Span {
				remove = true
				break
			}
		}
		if !remove {
			kept = append(kept, d)
		}
	}
	s.decos = kept
}

// Find returns the decorations touching [from, to) that satisfy pred.
func (s *MemDecorationStore) Find(from, to int, pred func(Decoration) bool) []Decoration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	probe := Range{From: from, To: to}
	var out []Decoration
	for _, d := range s.decos {
		if !d.Span.Touches(probe) {
			continue
		}
		if pred == nil || pred(d) {
			out = append(out, d)
		}
	}
	return out
}

// All returns a copy of every decoration in the store.
func (s *MemDecorationStore) All() []Decoration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Decoration, len(s.decos))
	copy(out, s.decos)
	return out
}

// MapThrough slides every decoration through the edit operations.
// Decorations whose text was entirely deleted are dropped.
func (s *MemDecorationStore) MapThrough(ops []EditOp) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.decos[:0]
	for _, d := range s.decos {
		d.Span = MapRange(d.Span, ops)
		if !d.Span.Empty() {
			kept = append(kept, d)
		}
	}
	s.decos = kept
}
