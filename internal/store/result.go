package store

import "context"

// Result is the outcome of an asynchronous save triggered by a mutation.
// It settles once the save and its verification load have finished.
type Result struct {
	done chan struct{}
	err  error
}

func newResult() *Result {
	return &Result{done: make(chan struct{})}
}

// settled returns a Result that is already resolved.
func settled(err error) *Result {
	r := newResult()
	r.resolve(err)
	return r
}

func (r *Result) resolve(err error) {
	r.err = err
	close(r.done)
}

// Done is closed when the save has settled.
func (r *Result) Done() <-chan struct{} {
	return r.done
}

// Err returns the save error once settled, and nil before that.
func (r *Result) Err() error {
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

// Wait blocks until the save settles or ctx ends.
func (r *Result) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
