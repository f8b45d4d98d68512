package store

import (
	"context"
	"sync"
	"sync/atomic"
)

type writeJob[T any] struct {
	value   T
	gen     uint64
	results []*Result
}

// tableWriter serializes saves for one table. While a save is in flight,
// further submissions collapse into a single pending job holding the most
// recent value; every caller in that job sees the same outcome.
type tableWriter[T any] struct {
	save       func(ctx context.Context, value T, gen uint64) error
	onCoalesce func()
	closed     *atomic.Bool

	mu      sync.Mutex
	pending *writeJob[T]
	running bool
	idle    chan struct{}
}

func newTableWriter[T any](save func(context.Context, T, uint64) error, closed *atomic.Bool) *tableWriter[T] {
	idle := make(chan struct{})
	close(idle)
	return &tableWriter[T]{
		save:       save,
		onCoalesce: func() {},
		closed:     closed,
		idle:       idle,
	}
}

// submit queues value for saving. Submissions must arrive in generation
// order; the table holds its lock while calling submit to guarantee that.
func (w *tableWriter[T]) submit(value T, gen uint64) *Result {
	if w.closed.Load() {
		return settled(ErrDisposed)
	}

	r := newResult()

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		w.pending.value = value
		w.pending.gen = gen
		w.pending.results = append(w.pending.results, r)
		w.onCoalesce()
	} else {
		w.pending = &writeJob[T]{value: value, gen: gen, results: []*Result{r}}
	}

	if !w.running {
		w.running = true
		w.idle = make(chan struct{})
		go w.run()
	}
	return r
}

func (w *tableWriter[T]) run() {
	for {
		w.mu.Lock()
		job := w.pending
		w.pending = nil
		if job == nil {
			w.running = false
			close(w.idle)
			w.mu.Unlock()
			return
		}
		w.mu.Unlock()

		// No deadline: a hung gateway call hangs this table's writes.
		err := w.save(context.Background(), job.value, job.gen)
		for _, r := range job.results {
			r.resolve(err)
		}
	}
}

// wait blocks until no save is in flight or pending.
func (w *tableWriter[T]) wait(ctx context.Context) error {
	for {
		w.mu.Lock()
		idle := w.idle
		running := w.running
		w.mu.Unlock()

		if !running {
			return nil
		}

		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
