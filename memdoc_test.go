package typerighter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemDocTextBetween(t *testing.T) {
	doc := NewMemDoc("hello world")

	text, err := doc.TextBetween(6, 11)
	require.NoError(t, err)
	assert.Equal(t, "world", text)

	_, err = doc.TextBetween(4, 2)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = doc.TextBetween(0, 100)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestMemDocBlocks(t *testing.T) {
	// Lines are the block units; the separating newlines belong to none.
	doc := NewMemDoc("first\nsecond\n\nfourth")

	var blocks []Range
	doc.EachBlock(func(b Range) bool {
		blocks = append(blocks, b)
		return true
	})
	assert.Equal(t, []Range{{0, 5}, {6, 12}, {13, 13}, {14, 20}}, blocks)
}

func TestMemDocBlocksEmptyDocument(t *testing.T) {
	doc := NewMemDoc("")
	var blocks []Range
	doc.EachBlock(func(b Range) bool {
		blocks = append(blocks, b)
		return true
	})
	assert.Equal(t, []Range{{0, 0}}, blocks)
}

func TestMemDocReplaceSlidesMarks(t *testing.T) {
	doc := NewMemDoc("the cat sat")
	_, err := doc.Replace(4, 7, "cat", []Mark{{Type: "strong"}})
	require.NoError(t, err)

	// Insert before the marked span: the span slides right.
	_, err = doc.Replace(0, 0, ">> ", nil)
	require.NoError(t, err)
	assert.Equal(t, ">> the cat sat", doc.Text())
	assert.Equal(t, []Mark{{Type: "strong"}}, doc.MarksBetween(7, 10))

	// Delete the marked text: the span collapses and is dropped.
	_, err = doc.Replace(7, 10, "", nil)
	require.NoError(t, err)
	assert.Empty(t, doc.MarksBetween(6, 7))
}

func TestMemDocMarksBetweenRequiresFullCoverage(t *testing.T) {
	doc := NewMemDoc("abcdef")
	_, err := doc.Replace(0, 3, "abc", []Mark{{Type: "em"}})
	require.NoError(t, err)

	assert.Equal(t, []Mark{{Type: "em"}}, doc.MarksBetween(0, 3))
	assert.Empty(t, doc.MarksBetween(0, 5), "marks must span the whole probe range")
}

func TestExpandToBlocks(t *testing.T) {
	doc := NewMemDoc("aaaa bbbb\ncccc dddd\neeee ffff")
	// Blocks: {0,9} {10,19} {20,29}

	// A range inside one block expands to the whole block.
	assert.Equal(t, []Range{{0, 9}}, ExpandToBlocks([]Range{{2, 6}}, doc))

	// A range spanning two blocks selects both; the newline between them
	// stays excluded, so they do not merge into one.
	assert.Equal(t, []Range{{0, 9}, {10, 19}}, ExpandToBlocks([]Range{{7, 14}}, doc))

	// An empty deletion point still selects its enclosing block.
	assert.Equal(t, []Range{{10, 19}}, ExpandToBlocks([]Range{{15, 15}}, doc))

	// No input, no blocks.
	assert.Nil(t, ExpandToBlocks(nil, doc))
}

func TestExpandToBlocksAtNewline(t *testing.T) {
	doc := NewMemDoc("aaaa\nbbbb")
	// A point exactly on the newline abuts the block that ends there.
	expanded := ExpandToBlocks([]Range{{4, 4}}, doc)
	assert.Equal(t, []Range{{0, 4}}, expanded)

	// A range covering the newline selects both neighbouring blocks.
	expanded = ExpandToBlocks([]Range{{4, 5}}, doc)
	assert.Equal(t, []Range{{0, 4}, {5, 9}}, expanded)
}
