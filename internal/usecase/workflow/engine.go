package workflow

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quanggiap2004/corebanking-portal/internal/domain"
)

// Phase is the workflow's current state machine state
type Phase string

const (
	PhaseEditing    Phase = "EDITING"
	PhaseConfirming Phase = "CONFIRMING"
	PhaseSubmitting Phase = "SUBMITTING"
	PhaseSucceeded  Phase = "SUCCEEDED"
	PhaseFailed     Phase = "FAILED"
)

// Engine misuse errors. These signal calls that the current phase does
// not allow; they are distinct from validation and submission failures,
// which are reported through the snapshot instead.
var (
	// ErrSubmitInFlight is returned when a submit attempt arrives while
	// a gateway call is already outstanding. The attempt is a no-op.
	ErrSubmitInFlight = errors.New("a submission is already in flight")

	// ErrInvalidPhase is returned when an operation is not legal in the
	// workflow's current phase
	ErrInvalidPhase = errors.New("operation not allowed in current phase")
)

// Snapshot is the view the workflow emits at every phase transition for
// the UI layer to render. Exactly one error surface is populated at a
// time: field-level Errors while editing, or a single Failure message
// after a submission failure — never both for the same attempt.
type Snapshot[D any] struct {
	WorkflowID uuid.UUID                `json:"workflowId"`
	Phase      Phase                    `json:"phase"`
	Draft      D                        `json:"draft"`
	Errors     domain.FieldErrors       `json:"errors,omitempty"`
	Result     *domain.SettlementResult `json:"result,omitempty"`
	Failure    string                   `json:"failure,omitempty"`
}

// Config wires one workflow variant. Transfer and deposit share the same
// engine; the variants differ only in validation, gateway call, and
// whether a confirmation phase sits between validation and submission.
type Config[D any] struct {
	// Validate produces the complete error set for a draft.
	// It must be pure and synchronous.
	Validate func(D) domain.FieldErrors

	// Submit issues the single gateway call for a submit attempt
	Submit func(context.Context, D) (*domain.SettlementResult, error)

	// RequireConfirmation inserts the CONFIRMING phase between a passing
	// validation and the gateway call (transfer yes, deposit no)
	RequireConfirmation bool

	// Timeout bounds the pending gateway call. Zero means no explicit
	// bound beyond the transport default.
	Timeout time.Duration

	// FailureFallback is shown when a gateway failure carries no
	// display message of its own
	FailureFallback string

	// OnSuccess runs after the workflow reaches SUCCEEDED. It is a
	// read-only side effect (e.g. account refresh), not owned by the
	// state machine.
	OnSuccess func(context.Context, *domain.SettlementResult)

	// Notify, when set, receives a snapshot on every phase transition
	Notify func(Snapshot[D])
}

// Engine sequences one transaction draft through
// EDITING -> (CONFIRMING) -> SUBMITTING -> SUCCEEDED | FAILED.
// Each workflow instance owns its draft and shares no state with other
// instances. All methods are safe for concurrent use; while a gateway
// call is outstanding the instance is not reentrant.
type Engine[D any] struct {
	id  uuid.UUID
	cfg Config[D]

	mu       sync.Mutex
	phase    Phase
	draft    D
	errors   domain.FieldErrors
	result   *domain.SettlementResult
	failure  string
	inFlight bool
}

// New creates a workflow instance in the EDITING phase with the given
// initial draft (optionally pre-seeded, e.g. with a source account from
// navigation context).
func New[D any](cfg Config[D], initial D) *Engine[D] {
	return &Engine[D]{
		id:     uuid.New(),
		cfg:    cfg,
		phase:  PhaseEditing,
		draft:  initial,
		errors: domain.FieldErrors{},
	}
}

// ID returns the workflow instance identifier
func (e *Engine[D]) ID() uuid.UUID {
	return e.id
}

// Draft returns the current draft values
func (e *Engine[D]) Draft() D {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

// SetDraft replaces the draft. Field edits are only legal while editing.
func (e *Engine[D]) SetDraft(draft D) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseEditing {
		return ErrInvalidPhase
	}
	e.draft = draft
	return nil
}

// Snapshot returns the current state for rendering
func (e *Engine[D]) Snapshot() Snapshot[D] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Submit runs one submit attempt. Validation always completes fully
// before any network traffic: on a non-empty error set the workflow
// stays in EDITING, exposes the errors, and no gateway call occurs.
// On a valid draft the workflow moves to CONFIRMING when the variant
// requires confirmation, otherwise straight through SUBMITTING.
func (e *Engine[D]) Submit(ctx context.Context) (Snapshot[D], error) {
	e.mu.Lock()

	if e.inFlight {
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap, ErrSubmitInFlight
	}
	if e.phase != PhaseEditing {
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap, ErrInvalidPhase
	}

	errs := e.cfg.Validate(e.draft)
	if !errs.Empty() {
		e.errors = errs
		e.failure = ""
		return e.emitLocked(), nil
	}

	e.errors = domain.FieldErrors{}
	if e.cfg.RequireConfirmation {
		e.phase = PhaseConfirming
		return e.emitLocked(), nil
	}

	return e.dispatchLocked(ctx)
}

// Confirm proceeds from CONFIRMING to SUBMITTING
func (e *Engine[D]) Confirm(ctx context.Context) (Snapshot[D], error) {
	e.mu.Lock()
	if e.phase != PhaseConfirming {
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap, ErrInvalidPhase
	}
	return e.dispatchLocked(ctx)
}

// Cancel returns from CONFIRMING to EDITING with the draft preserved
func (e *Engine[D]) Cancel() (Snapshot[D], error) {
	e.mu.Lock()
	if e.phase != PhaseConfirming {
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap, ErrInvalidPhase
	}
	e.phase = PhaseEditing
	return e.emitLocked(), nil
}

// Acknowledge consumes a terminal notification. From FAILED the workflow
// returns to EDITING with the draft values unchanged so the user may
// correct and retry. SUCCEEDED stays terminal; the instance is expected
// to be discarded once acknowledged.
func (e *Engine[D]) Acknowledge() (Snapshot[D], error) {
	e.mu.Lock()
	switch e.phase {
	case PhaseFailed:
		e.phase = PhaseEditing
		e.failure = ""
		return e.emitLocked(), nil
	case PhaseSucceeded:
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap, nil
	default:
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap, ErrInvalidPhase
	}
}

// dispatchLocked enters SUBMITTING and issues exactly one gateway call.
// The mutex is held on entry and released around the call; the inFlight
// flag keeps the instance non-reentrant during that window.
func (e *Engine[D]) dispatchLocked(ctx context.Context) (Snapshot[D], error) {
	e.phase = PhaseSubmitting
	e.inFlight = true
	draft := e.draft
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)

	callCtx := ctx
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	result, err := e.cfg.Submit(callCtx, draft)

	e.mu.Lock()
	e.inFlight = false

	if err == nil && result == nil {
		// Malformed gateway response: fail closed, keep the draft.
		err = domain.NewSubmissionError(e.cfg.FailureFallback)
	}

	if err != nil {
		e.phase = PhaseFailed
		e.failure = domain.SubmissionMessage(err, e.cfg.FailureFallback)
		e.result = nil
		return e.emitLocked(), nil
	}

	e.phase = PhaseSucceeded
	e.result = result
	e.failure = ""
	out := e.emitLocked()

	if e.cfg.OnSuccess != nil {
		e.cfg.OnSuccess(ctx, result)
	}
	return out, nil
}

// emitLocked snapshots the current state, releases the mutex and
// notifies the observer. Callers must hold the mutex.
func (e *Engine[D]) emitLocked() Snapshot[D] {
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
	return snap
}

func (e *Engine[D]) snapshotLocked() Snapshot[D] {
	return Snapshot[D]{
		WorkflowID: e.id,
		Phase:      e.phase,
		Draft:      e.draft,
		Errors:     e.errors.Clone(),
		Result:     e.result,
		Failure:    e.failure,
	}
}

func (e *Engine[D]) notify(snap Snapshot[D]) {
	if e.cfg.Notify != nil {
		e.cfg.Notify(snap)
	}
}
