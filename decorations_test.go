package typerighter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecorationStoreAddRemoveFind(t *testing.T) {
	store := NewMemDecorationStore()
	a := Decoration{ID: "a", Kind: DecorationResult, Span: Range{0, 5}}
	b := Decoration{ID: "b", Kind: DecorationInFlight, Span: Range{10, 20}}
	store.Add(a, b)

	found := store.Find(0, 30, nil)
	assert.Len(t, found, 2)

	found = store.Find(0, 30, func(d Decoration) bool { return d.Kind == DecorationResult })
	require.Len(t, found, 1)
	assert.Equal(t, "a", found[0].ID)

	// Find is bounded by the probe range.
	found = store.Find(6, 9, nil)
	assert.Empty(t, found)

	store.Remove(a)
	assert.Len(t, store.All(), 1)
	assert.Equal(t, "b", store.All()[0].ID)
}

func TestDecorationsSlideOnInsert(t *testing.T) {
	// Decorations before the insert point do not move; decorations after
	// it slide right by the inserted length.
	store := NewMemDecorationStore()
	store.Add(
		Decoration{ID: "before", Kind: DecorationResult, Span: Range{0, 3}},
		Decoration{ID: "after", Kind: DecorationResult, Span: Range{8, 12}},
	)

	store.MapThrough([]EditOp{Replacement{From: 5, To: 5, Length: 4}})

	byID := map[string]Range{}
	for _, d := range store.All() {
		byID[d.ID] = d.Span
	}
	assert.Equal(t, Range{0, 3}, byID["before"])
	assert.Equal(t, Range{12, 16}, byID["after"])
}

func TestDecorationsDroppedOnDelete(t *testing.T) {
	store := NewMemDecorationStore()
	store.Add(Decoration{ID: "doomed", Kind: DecorationResult, Span: Range{5, 9}})

	store.MapThrough([]EditOp{Replacement{From: 2, To: 12, Length: 0}})
	assert.Empty(t, store.All(), "a decoration whose text was deleted disappears")
}
