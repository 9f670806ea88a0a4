package typerighter

import (
	"time"

	"github.com/google/uuid"
)

// Phase is the lifecycle phase the plugin state is in. It is derived from
// the state shape rather than stored.
type Phase int

const (
	// PhaseIdle means nothing is dirty and nothing is outstanding.
	PhaseIdle Phase = iota

	// PhaseDirty means edited ranges are waiting to be validated.
	PhaseDirty

	// PhasePending means dirty ranges are queued for block expansion.
	PhasePending

	// PhaseInFlight means a validation request is outstanding.
	PhaseInFlight
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDirty:
		return "dirty"
	case PhasePending:
		return "pending"
	case PhaseInFlight:
		return "inflight"
	default:
		return "unknown"
	}
}

// PluginState is the whole state of one validation session. It is updated
// only through Reduce, which returns a new value per transition; the
// state machine never mutates in place.
type PluginState struct {
	// Debug renders dirty-range markers so the accrual is visible.
	Debug bool

	// Throttle durations; the controller in throttle.go manages Current.
	ThrottleInitial time.Duration
	ThrottleCurrent time.Duration
	ThrottleMax     time.Duration

	// DirtyRanges is the merged set of spans edited since they were last
	// handed to a request. Always sorted and disjoint.
	DirtyRanges []Range

	// CurrentValidations are the live findings, kept mapped to the
	// current document version.
	CurrentValidations []ValidationOutput

	// RequestPending records that dirty ranges are queued for expansion.
	RequestPending bool

	// Validation is the single outstanding request, or nil. The scheduler
	// must check it before issuing a new request start.
	Validation *InFlight

	// History holds every transaction applied since Validation was
	// created, in increasing ID order. It is pruned only when that
	// specific request resolves, because mapping the response depends on
	// replaying exactly this slice.
	History []Transaction

	// LastTransactionID is the ID of the latest transaction seen.
	LastTransactionID int64

	// HoverID is the ID of the validation output under the pointer, with
	// its measured geometry, or zero values when nothing is hovered.
	HoverID   string
	HoverInfo *HoverGeometry

	// Error is the last request failure, surfaced as state rather than
	// propagated up the call stack. Cleared on the next success.
	Error string
}

// NewPluginState creates a session state with the given throttle window.
func NewPluginState(initial, max time.Duration) PluginState {
	return PluginState{
		ThrottleInitial: initial,
		ThrottleCurrent: initial,
		ThrottleMax:     max,
	}
}

// Phase derives the lifecycle phase from the state shape.
func (s PluginState) Phase() Phase {
	switch {
	case s.Validation != nil:
		return PhaseInFlight
	case s.RequestPending:
		return PhasePending
	case len(s.DirtyRanges) > 0:
		return PhaseDirty
	default:
		return PhaseIdle
	}
}

// FindValidation returns the current validation output with the given ID.
func (s PluginState) FindValidation(id string) (ValidationOutput, bool) {
	for _, v := range s.CurrentValidations {
		if v.ID == id {
			return v, true
		}
	}
	return ValidationOutput{}, false
}

// ValidationsAt returns the current validation outputs covering pos.
func (s PluginState) ValidationsAt(pos int) []ValidationOutput {
	var out []ValidationOutput
	for _, v := range s.CurrentValidations {
		if v.Span.Contains(pos) {
			out = append(out, v)
		}
	}
	return out
}

// Action is one lifecycle event. The set of variants is closed; Reduce
// handles each exhaustively.
type Action interface {
	isAction()
}

// ActionTransaction reports a local edit: the applied transaction plus
// the freshly dirtied ranges, expressed against the post-edit document.
type ActionTransaction struct {
	Tr    Transaction
	Dirty []Range
}

func (ActionTransaction) isAction() {}

// ActionRequestPending marks that dirty ranges are queued for expansion.
type ActionRequestPending struct{}

func (ActionRequestPending) isAction() {}

// ActionRequestStart snapshots the dirty ranges into a request: expands
// them to block boundaries, captures their text, and records the
// in-flight descriptor. The scheduler must not issue it while a request
// is outstanding.
type ActionRequestStart struct{}

func (ActionRequestStart) isAction() {}

// ActionRequestSuccess delivers the response for the in-flight request.
// Output spans are expressed against the snapshot document version.
type ActionRequestSuccess struct {
	ID      string
	Outputs []ValidationOutput
}

func (ActionRequestSuccess) isAction() {}

// ActionRequestError reports that the in-flight request failed.
type ActionRequestError struct {
	ID      string
	Message string
}

func (ActionRequestError) isAction() {}

// ActionSelectHover records which validation output the pointer is over.
type ActionSelectHover struct {
	ID       string
	Geometry *HoverGeometry
}

func (ActionSelectHover) isAction() {}

// Reduce applies one action to the state and returns the next state. It
// never mutates its input; slices are copied before modification.
// Decoration changes are pushed to store as a side channel the editor
// renders. All transitions are synchronous; the only suspending work
// (the network request) happens outside and re-enters through
// ActionRequestSuccess or ActionRequestError.
func Reduce(state PluginState, action Action, doc Document, store DecorationStore) PluginState {
	switch a := action.(type) {
	case ActionTransaction:
		return reduceTransaction(state, a, doc, store)
	case ActionRequestPending:
		state.RequestPending = true
		return state
	case ActionRequestStart:
		return reduceRequestStart(state, doc, store)
	case ActionRequestSuccess:
		return reduceRequestSuccess(state, a, doc, store)
	case ActionRequestError:
		return reduceRequestError(state, a, doc, store)
	case ActionSelectHover:
		state.HoverID = a.ID
		state.HoverInfo = a.Geometry
		return state
	default:
		return state
	}
}

// reduceTransaction accrues a local edit: history grows while a request
// is outstanding, existing dirty ranges and findings slide through the
// edit, and the new dirty ranges merge in.
func reduceTransaction(state PluginState, a ActionTransaction, doc Document, store DecorationStore) PluginState {
	state.LastTransactionID = a.Tr.ID

	if state.Validation != nil {
		history := make([]Transaction, len(state.History), len(state.History)+1)
		copy(history, state.History)
		state.History = append(history, a.Tr)
	}

	// Empty dirty ranges are kept: a deletion leaves a meaningful point
	// that still selects its enclosing block for revalidation.
	mapped := MapRanges(state.DirtyRanges, a.Tr.Ops)
	state.DirtyRanges = MergeRanges(append(mapped, a.Dirty...))

	var kept []ValidationOutput
	for _, v := range state.CurrentValidations {
		v.Span = MapRange(v.Span, a.Tr.Ops)
		if !v.Span.Empty() {
			kept = append(kept, v)
		}
	}
	state.CurrentValidations = kept

	if state.Debug {
		replaceDecorations(store, doc, DecorationDirty, dirtyDecorations(state.DirtyRanges))
	}
	return state
}

// reduceRequestStart turns the accrued dirty ranges into an in-flight
// request stamped with the current transaction ID.
func reduceRequestStart(state PluginState, doc Document, store DecorationStore) PluginState {
	state.RequestPending = false
	if len(state.DirtyRanges) == 0 {
		return state
	}

	expanded := ExpandToBlocks(state.DirtyRanges, doc)
	inputs := make([]ValidationInput, 0, len(expanded))
	decos := make([]Decoration, 0, len(expanded))
	for _, r := range expanded {
		text, err := doc.TextBetween(r.From, r.To)
		if err != nil {
			continue
		}
		in := ValidationInput{ID: uuid.NewString(), Text: text, Span: r}
		inputs = append(inputs, in)
		decos = append(decos, Decoration{ID: in.ID, Kind: DecorationInFlight, Span: r})
	}

	state.Validation = &InFlight{
		ID:      uuid.NewString(),
		Inputs:  inputs,
		SinceID: state.LastTransactionID,
	}
	state.DirtyRanges = nil
	state.History = nil

	replaceDecorations(store, doc, DecorationDirty, nil)
	replaceDecorations(store, doc, DecorationInFlight, decos)
	return state
}

// reduceRequestSuccess maps each output through the history accrued while
// the request was in flight, drops outputs whose anchor text was edited
// away, supersedes findings overlapping the validated ranges, and clears
// the in-flight descriptor.
func reduceRequestSuccess(state PluginState, a ActionRequestSuccess, doc Document, store DecorationStore) PluginState {
	inflight := state.Validation
	if inflight == nil || inflight.ID != a.ID {
		return state
	}

	validated := filterEmpty(MapRangeThroughTransactions(inflight.InputSpans(), inflight.SinceID, state.History))

	var merged []ValidationOutput
	for _, v := range state.CurrentValidations {
		superseded := false
		for _, r := range validated {
			if v.Span.Overlaps(r) {
				superseded = true
				break
			}
		}
		if !superseded {
			merged = append(merged, v)
		}
	}

	ops := historyOps(inflight.SinceID, state.History)
	for _, out := range a.Outputs {
		out.Span = MapRange(out.Span, ops)
		if out.Span.Empty() {
			continue
		}
		if live, err := doc.TextBetween(out.Span.From, out.Span.To); err != nil || live != out.Text {
			continue
		}
		merged = append(merged, out)
	}

	state.CurrentValidations = merged
	state.Validation = nil
	state.History = nil
	state.Error = ""

	replaceDecorations(store, doc, DecorationInFlight, nil)
	replaceDecorations(store, doc, DecorationResult, resultDecorations(merged))
	return state
}

// reduceRequestError maps the failed inputs' ranges forward exactly as a
// success would and returns them to the dirty set, so no edited region is
// silently dropped after a transient failure.
func reduceRequestError(state PluginState, a ActionRequestError, doc Document, store DecorationStore) PluginState {
	inflight := state.Validation
	if inflight == nil || inflight.ID != a.ID {
		state.Error = a.Message
		return state
	}

	mapped := filterEmpty(MapRangeThroughTransactions(inflight.InputSpans(), inflight.SinceID, state.History))
	state.DirtyRanges = MergeRanges(append(append([]Range(nil), state.DirtyRanges...), mapped...))
	state.Validation = nil
	state.History = nil
	state.Error = a.Message

	replaceDecorations(store, doc, DecorationInFlight, nil)
	if state.Debug {
		replaceDecorations(store, doc, DecorationDirty, dirtyDecorations(state.DirtyRanges))
	}
	return state
}

// historyOps flattens the operations of every transaction newer than
// sinceID, in order.
func historyOps(sinceID int64, history []Transaction) []EditOp {
	var ops []EditOp
	for _, tr := range history {
		if tr.ID <= sinceID {
			continue
		}
		ops = append(ops, tr.Ops...)
	}
	return ops
}

func dirtyDecorations(ranges []Range) []Decoration {
	decos := make([]Decoration, 0, len(ranges))
	for _, r := range ranges {
		decos = append(decos, Decoration{Kind: DecorationDirty, Span: r})
	}
	return decos
}

func resultDecorations(outputs []ValidationOutput) []Decoration {
	decos := make([]Decoration, 0, len(outputs))
	for _, v := range outputs {
		decos = append(decos, Decoration{ID: v.ID, Kind: DecorationResult, Span: v.Span})
	}
	return decos
}

// replaceDecorations swaps every decoration of one kind for the given
// replacement set.
func replaceDecorations(store DecorationStore, doc Document, kind DecorationKind, decos []Decoration) {
	old := store.Find(0, doc.Len(), func(d Decoration) bool { return d.Kind == kind })
	if len(old) > 0 {
		store.Remove(old...)
	}
	if len(decos) > 0 {
		store.Add(decos...)
	}
}

// DirtyRangesFromOps derives the dirtied ranges of a transaction whose
// operations are Replacement values: each replaced span becomes dirty in
// post-transaction coordinates.
func DirtyRangesFromOps(ops []EditOp) []Range {
	var dirty []Range
	for i, op := range ops {
		rep, ok := op.(Replacement)
		if !ok {
			continue
		}
		r := Range{From: rep.From, To: rep.From + rep.Length}
		r = MapRange(r, ops[i+1:])
		dirty = append(dirty, r)
	}
	return dirty
}
