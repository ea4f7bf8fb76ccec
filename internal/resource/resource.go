// Package resource implements the fetch, snapshot, mutate-and-refetch cycle
// every data-bearing view goes through.
//
// A Resource holds the last snapshot of some remote state together with an
// explicit lifecycle State. Mutations never merge into the snapshot: after a
// successful write the whole snapshot is fetched again.
package resource

import (
	"context"
	"errors"
	"sync"
)

// State is the lifecycle state of a Resource.
type State int

const (
	Idle State = iota
	Loading
	Ready
	Error
	Submitting
	SubmitError
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Error:
		return "error"
	case Submitting:
		return "submitting"
	case SubmitError:
		return "submit_error"
	}
	return "unknown"
}

// Busy reports whether a request is in flight. Submissions are refused then.
func (s State) Busy() bool {
	return s == Loading || s == Submitting
}

// ErrBusy is returned when a load or mutation is requested while another one
// is still in flight.
var ErrBusy = errors.New("resource is busy")

// Fetcher retrieves a full snapshot of the remote state.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Resource is a snapshot of remote state of type T.
type Resource[T any] struct {
	mu    sync.Mutex
	fetch Fetcher[T]
	state State
	data  T
	err   error
}

// New returns an Idle resource backed by fetch.
func New[T any](fetch Fetcher[T]) *Resource[T] {
	return &Resource[T]{fetch: fetch}
}

func (r *Resource[T]) begin(next State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.Busy() {
		return ErrBusy
	}
	r.state = next

	return nil
}

func (r *Resource[T]) finishLoad(data T, err error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		var zero T
		r.data = zero
		r.state = Error
		r.err = err
		return err
	}
	r.data = data
	r.state = Ready
	r.err = nil

	return nil
}

// Load replaces the snapshot with a fresh fetch.
// On failure the previous snapshot is discarded and the state becomes Error.
func (r *Resource[T]) Load(ctx context.Context) error {
	if err := r.begin(Loading); err != nil {
		return err
	}

	data, err := r.fetch(ctx)
	return r.finishLoad(data, err)
}

// Mutate runs write and, when it succeeds, reloads the full snapshot.
// When write fails the state becomes SubmitError and the snapshot is kept.
// A failed reload after a successful write leaves the resource in Error.
func (r *Resource[T]) Mutate(ctx context.Context, write func(ctx context.Context) error) error {
	if err := r.begin(Submitting); err != nil {
		return err
	}

	if err := write(ctx); err != nil {
		r.mu.Lock()
		r.state = SubmitError
		r.err = err
		r.mu.Unlock()
		return err
	}

	r.mu.Lock()
	r.state = Loading
	r.mu.Unlock()

	data, err := r.fetch(ctx)
	return r.finishLoad(data, err)
}

// Snapshot returns the current data, state and last error together.
func (r *Resource[T]) Snapshot() (T, State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.data, r.state, r.err
}

// State returns the current lifecycle state.
func (r *Resource[T]) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state
}
