package bridge

import (
	"sync"

	"github.com/sagudev/fp-bindgen/errors"
)

// Handle identifies one in-flight async call. Handles are minted
// sequentially and never reused within a registry's lifetime.
type Handle uint32

// State is the lifecycle of a handle. Pending is the only non-terminal
// state; a handle leaves it exactly once.
type State uint8

const (
	StatePending State = iota
	StateResolved
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateResolved:
		return "resolved"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Continuation receives the serialized result when a handle resolves.
// It runs on the resolving call's stack and must tolerate running
// re-entrantly, nested inside another in-flight boundary call.
type Continuation func(payload []byte)

// Registry maps pending handles to caller-side continuations. One
// registry lives per plugin instance on each side of the boundary.
//
// All methods are safe for concurrent use. Continuations are invoked
// outside the registry lock, so a continuation may mint, resolve or
// cancel other handles freely.
type Registry struct {
	mu        sync.Mutex
	next      Handle
	pending   map[Handle]Continuation
	cancelled map[Handle]struct{}

	// strict makes a resolution arriving for a cancelled handle an error
	// the caller must acknowledge, instead of a silent discard.
	strict bool
}

// NewRegistry returns a registry that silently discards resolutions for
// cancelled handles.
func NewRegistry() *Registry {
	return &Registry{
		pending:   make(map[Handle]Continuation),
		cancelled: make(map[Handle]struct{}),
	}
}

// NewStrictRegistry returns a registry that surfaces late resolutions for
// cancelled handles instead of discarding them; each must be cleared with
// Acknowledge.
func NewStrictRegistry() *Registry {
	r := NewRegistry()
	r.strict = true
	return r
}

// Mint allocates a fresh Pending handle bound to the continuation.
func (r *Registry) Mint(c Continuation) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	h := r.next
	r.pending[h] = c
	return h
}

// Resolve retires a Pending handle and delivers the payload to its
// continuation, exactly once.
//
// Resolving a handle that was cancelled is not an error in the default
// mode: cancellation is advisory and the callee may legitimately race a
// late completion, which is discarded here. Resolving a handle that is
// unknown or already resolved is a fatal ABI-consistency violation:
// both sides are generated from one model and cannot disagree about
// handle state unless their versions diverge.
func (r *Registry) Resolve(h Handle, payload []byte) error {
	r.mu.Lock()
	c, ok := r.pending[h]
	if !ok {
		if _, wasCancelled := r.cancelled[h]; wasCancelled {
			if r.strict {
				r.mu.Unlock()
				return errors.HandleViolation(uint32(h), "resolution after cancellation awaits acknowledgement")
			}
			delete(r.cancelled, h)
			r.mu.Unlock()
			return nil
		}
		r.mu.Unlock()
		return errors.HandleViolation(uint32(h), "unknown or already resolved")
	}
	delete(r.pending, h)
	r.mu.Unlock()

	if c != nil {
		c(payload)
	}
	return nil
}

// Cancel marks a Pending handle as abandoned. The continuation will never
// run. Cancelling a handle that is not pending is a no-op; the caller and
// a concurrent resolution may race, and exactly one of them wins.
func (r *Registry) Cancel(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pending[h]; !ok {
		return
	}
	delete(r.pending, h)
	r.cancelled[h] = struct{}{}
}

// Acknowledge clears the record of a cancelled handle. In strict mode
// this is the explicit step that lets a late resolution be discarded.
func (r *Registry) Acknowledge(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cancelled, h)
}

// StateOf reports the observable state of a handle. Handles that were
// resolved (or acknowledged) are no longer tracked and report Resolved.
func (r *Registry) StateOf(h Handle) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pending[h]; ok {
		return StatePending
	}
	if _, ok := r.cancelled[h]; ok {
		return StateCancelled
	}
	return StateResolved
}

// PendingCount returns the number of handles awaiting resolution.
func (r *Registry) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
