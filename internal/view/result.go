package view

import "sync"

// State is the phase of a Result.
type State int

const (
	// StateLoading means a fetch is underway.
	StateLoading State = iota
	// StateOK means the last fetch succeeded and Data is current.
	StateOK
	// StateErr means the last fetch failed. Data keeps the previous payload
	// so the view can keep rendering what was on screen before the failure.
	StateErr
)

// Result is the explicit three-state outcome every page holds for its data:
// Loading, Ok(data) or Err(message). It makes stale-state-on-error uniform
// across views: the previous payload always survives a failed refresh, and
// the error travels alongside it.
//
// Safe for concurrent use; fetches resolve on background goroutines while the
// shell renders.
type Result[T any] struct {
	mu    sync.RWMutex
	state State
	data  T
	err   string
}

// SetLoading marks a fetch as started. The previous payload is kept.
func (r *Result[T]) SetLoading() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = StateLoading
	r.err = ""
}

// SetOK stores a fresh payload.
func (r *Result[T]) SetOK(data T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = StateOK
	r.data = data
	r.err = ""
}

// SetErr records a failure, keeping the previous payload.
func (r *Result[T]) SetErr(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = StateErr
	r.err = msg
}

// Get returns a snapshot of the current state, payload and error message.
func (r *Result[T]) Get() (State, T, string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state, r.data, r.err
}

// Data returns the current payload regardless of state.
func (r *Result[T]) Data() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data
}
