package typerighter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// decorationMapper is implemented by stores whose decorations need to be
// slid through edits explicitly, like MemDecorationStore. Editor-backed
// stores usually map their own positions.
type decorationMapper interface {
	MapThrough(ops []EditOp)
}

// SchedulerOptions configures a Scheduler. The zero value is usable.
type SchedulerOptions struct {
	// ThrottleInitial and ThrottleMax bound the debounce window.
	// Defaults: 500ms and 16s.
	ThrottleInitial time.Duration
	ThrottleMax     time.Duration

	// Debug renders dirty-range decorations.
	Debug bool

	// Logger receives lifecycle events; defaults to slog.Default.
	Logger *slog.Logger
}

// Scheduler drives the validation lifecycle around the reducer: it
// debounces dispatch behind the throttle window, enforces the
// single-in-flight invariant, runs the network request out of band, and
// feeds its resolution back through the reducer. All state transitions
// happen under one mutex, so the reducer sees a linear event order.
type Scheduler struct {
	mu       sync.Mutex
	state    PluginState
	doc      EditableDocument
	store    DecorationStore
	checker  Checker
	throttle *Throttle
	logger   *slog.Logger

	timer    *time.Timer
	nextTrID int64

	ctx    context.Context
	cancel context.CancelFunc
}

// NewScheduler creates a scheduler for one editing session.
func NewScheduler(doc EditableDocument, store DecorationStore, checker Checker, opts SchedulerOptions) *Scheduler {
	throttle := NewThrottle(opts.ThrottleInitial, opts.ThrottleMax)
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	state := NewPluginState(throttle.Delay(), opts.ThrottleMax)
	state.Debug = opts.Debug
	state.ThrottleMax = throttle.max

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		state:    state,
		doc:      doc,
		store:    store,
		checker:  checker,
		throttle: throttle,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// State returns a snapshot of the current plugin state.
func (s *Scheduler) State() PluginState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Replace performs a local edit: it mutates the document, slides the
// decorations, accrues the dirtied range and re-arms the debounce timer.
// Rapid edits keep pushing dispatch back; only a quiet period of the
// throttle's current length triggers it.
func (s *Scheduler) Replace(from, to int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	op, err := s.doc.Replace(from, to, text, nil)
	if err != nil {
		return err
	}
	s.nextTrID++
	tr := Transaction{ID: s.nextTrID, Ops: []EditOp{op}}
	s.applyLocked(tr, DirtyRangesFromOps(tr.Ops))
	return nil
}

// MarkDirty queues a range for validation without an accompanying edit,
// for example to validate a freshly opened document.
func (s *Scheduler) MarkDirty(ranges ...Range) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTrID++
	s.applyLocked(Transaction{ID: s.nextTrID}, ranges)
}

// applyLocked dispatches a transaction through the reducer and re-arms
// the debounce timer when something is dirty. Callers hold s.mu.
func (s *Scheduler) applyLocked(tr Transaction, dirty []Range) {
	if mapper, ok := s.store.(decorationMapper); ok && len(tr.Ops) > 0 {
		mapper.MapThrough(tr.Ops)
	}
	s.state = Reduce(s.state, ActionTransaction{Tr: tr, Dirty: dirty}, s.doc, s.store)
	if len(s.state.DirtyRanges) > 0 {
		s.state = Reduce(s.state, ActionRequestPending{}, s.doc, s.store)
		s.armTimerLocked()
	}
}

// armTimerLocked (re)starts the debounce timer at the throttle's current
// delay. Callers hold s.mu.
func (s *Scheduler) armTimerLocked() {
	delay := s.throttle.Delay()
	s.state.ThrottleCurrent = delay
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(delay, s.dispatchDue)
}

// dispatchDue fires when the quiet period elapses. It starts a request
// unless one is already outstanding; in that case the resolution path
// re-arms the timer for whatever accrued meanwhile.
func (s *Scheduler) dispatchDue() {
	s.mu.Lock()

	if s.ctx.Err() != nil || len(s.state.DirtyRanges) == 0 {
		s.mu.Unlock()
		return
	}
	if s.state.Validation != nil {
		// Single in-flight request at a time. The dirty ranges stay
		// queued until that request resolves.
		s.mu.Unlock()
		return
	}

	s.state = Reduce(s.state, ActionRequestStart{}, s.doc, s.store)
	inflight := s.state.Validation
	if inflight == nil {
		s.mu.Unlock()
		return
	}
	id := inflight.ID
	inputs := inflight.Inputs
	s.logger.Debug("validation request dispatched", "request_id", id, "inputs", len(inputs))
	s.mu.Unlock()

	go s.resolve(id, inputs)
}

// resolve runs the network request out of band and feeds the result back
// through the reducer under the lock.
func (s *Scheduler) resolve(id string, inputs []ValidationInput) {
	outputs, err := s.checker.Check(s.ctx, inputs)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx.Err() != nil {
		return
	}

	if err != nil {
		s.state = Reduce(s.state, ActionRequestError{ID: id, Message: err.Error()}, s.doc, s.store)
		delay := s.throttle.Backoff()
		s.state.ThrottleCurrent = delay
		s.logger.Warn("validation request failed",
			"request_id", id, "error", err, "retry_in", delay)
	} else {
		s.state = Reduce(s.state, ActionRequestSuccess{ID: id, Outputs: outputs}, s.doc, s.store)
		s.throttle.Reset()
		s.state.ThrottleCurrent = s.throttle.Delay()
		s.logger.Info("validation request resolved",
			"request_id", id, "outputs", len(outputs))
	}

	// Anything dirtied while the request was in flight, or re-queued by
	// the error path, waits out a fresh quiet period.
	if len(s.state.DirtyRanges) > 0 {
		s.state = Reduce(s.state, ActionRequestPending{}, s.doc, s.store)
		s.armTimerLocked()
	}
}

// Validate dispatches the accrued dirty ranges immediately instead of
// waiting out the quiet period, for callers like a just-opened document.
// It fails if a request is already outstanding or nothing is dirty.
func (s *Scheduler) Validate() error {
	s.mu.Lock()
	if s.state.Validation != nil {
		s.mu.Unlock()
		return ErrRequestInFlight
	}
	if len(s.state.DirtyRanges) == 0 {
		s.mu.Unlock()
		return ErrNoDirtyRanges
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()

	s.dispatchDue()
	return nil
}

// SelectHover records the validation output under the pointer together
// with its measured geometry; an empty id clears the selection.
func (s *Scheduler) SelectHover(id string, geometry *HoverGeometry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, ActionSelectHover{ID: id, Geometry: geometry}, s.doc, s.store)
}

// ApplySuggestion replaces the finding's live text with the chosen
// suggestion via a minimal, mark-preserving patch batch, applied
// atomically inside one transaction. The patched region is dirtied so the
// service re-checks it.
func (s *Scheduler) ApplySuggestion(validationID string, suggestion int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.state.FindValidation(validationID)
	if !ok {
		return ErrValidationNotFound
	}
	if suggestion < 0 || suggestion >= len(v.Suggestions) {
		return ErrNoSuchSuggestion
	}

	current, err := s.doc.TextBetween(v.Span.From, v.Span.To)
	if err != nil {
		return err
	}
	patches := GetReplacementFragments(current, v.Suggestions[suggestion], v.Span.From)
	ops, err := ApplyPatches(s.doc, patches)
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		return nil
	}

	// The applied finding is resolved; drop it before the transaction
	// accrual maps the remaining ones.
	s.dropValidationLocked(validationID)

	s.nextTrID++
	tr := Transaction{ID: s.nextTrID, Ops: ops}
	s.applyLocked(tr, DirtyRangesFromOps(ops))
	return nil
}

// dropValidationLocked removes one finding and its decoration. Callers
// hold s.mu.
func (s *Scheduler) dropValidationLocked(id string) {
	kept := make([]ValidationOutput, 0, len(s.state.CurrentValidations))
	for _, v := range s.state.CurrentValidations {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	s.state.CurrentValidations = kept
	old := s.store.Find(0, s.doc.Len(), func(d Decoration) bool {
		return d.Kind == DecorationResult && d.ID == id
	})
	if len(old) > 0 {
		s.store.Remove(old...)
	}
}

// Close stops the timer and cancels any outstanding request. The
// scheduler must not be used afterwards.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.cancel()
}
