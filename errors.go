// Package typerighter keeps validation annotations (spelling, grammar and
// style findings) correctly positioned over a document that is edited
// concurrently with asynchronous validation requests. Validation results
// computed against a stale snapshot of the text are re-mapped through the
// edits that happened while the request was in flight, so an annotation
// never lands on the wrong span of text.
package typerighter

import "errors"

// Position errors
var (
	// ErrInvalidRange indicates a range with to < from or negative offsets.
	ErrInvalidRange = errors.New("invalid range")

	// ErrOutOfBounds indicates a position outside the document.
	ErrOutOfBounds = errors.New("position out of bounds")
)

// Patch errors
var (
	// ErrPatchMismatch indicates that the document text no longer matches
	// the text a patch batch was computed against. The batch is not applied.
	ErrPatchMismatch = errors.New("document text does not match patch pre-state")
)

// Lifecycle errors
var (
	// ErrRequestInFlight indicates a request start was attempted while a
	// previous request is still outstanding.
	ErrRequestInFlight = errors.New("validation request already in flight")

	// ErrNoDirtyRanges indicates a request start with nothing to validate.
	ErrNoDirtyRanges = errors.New("no dirty ranges to validate")

	// ErrValidationNotFound indicates the given validation output ID is
	// not in the current set.
	ErrValidationNotFound = errors.New("validation not found")

	// ErrNoSuchSuggestion indicates a suggestion index outside the
	// finding's suggestion list.
	ErrNoSuchSuggestion = errors.New("no such suggestion")
)

// Service errors
var (
	// ErrServiceStatus indicates the validation service answered with a
	// non-200 status.
	ErrServiceStatus = errors.New("validation service returned non-200 status")
)
