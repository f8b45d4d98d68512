package store

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/jbweber/hangar/internal/gateway"
	"github.com/jbweber/hangar/internal/metrics"
)

// table is one in-memory collection plus its writer. gen increases on every
// in-memory change and lets reconciliation detect that memory has moved on
// since a save was captured.
type table[T any] struct {
	name    gateway.Table
	log     zerolog.Logger
	metrics *metrics.Store

	clone func(T) T
	save  func(context.Context, T) error
	load  func(context.Context) (T, error)
	// skip reports whether a save of the value must not be forwarded
	skip func(T) bool

	mu    sync.RWMutex
	value T
	gen   uint64

	writer *tableWriter[T]
}

type tableConfig[T any] struct {
	name  gateway.Table
	zero  T
	clone func(T) T
	save  func(context.Context, T) error
	load  func(context.Context) (T, error)
	skip  func(T) bool
}

func newTable[T any](cfg tableConfig[T], log zerolog.Logger, m *metrics.Store, closed *atomic.Bool) *table[T] {
	t := &table[T]{
		name:    cfg.name,
		log:     log.With().Str("table", string(cfg.name)).Logger(),
		metrics: m,
		clone:   cfg.clone,
		save:    cfg.save,
		load:    cfg.load,
		skip:    cfg.skip,
		value:   cfg.zero,
	}
	t.writer = newTableWriter(t.persist, closed)
	t.writer.onCoalesce = func() { m.Coalesce(string(cfg.name)) }
	return t
}

// get returns a copy of the current value.
func (t *table[T]) get() T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.clone(t.value)
}

// read runs fn against the current value without copying it. fn must not
// retain or modify the value.
func (t *table[T]) read(fn func(T)) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fn(t.value)
}

// mutate applies fn to memory and, when fn reports a change, queues a save
// of the new value.
func (t *table[T]) mutate(fn func(T) (T, bool)) *Result {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, changed := fn(t.value)
	if !changed {
		return settled(nil)
	}
	t.value = next
	t.gen++
	return t.writer.submit(t.clone(next), t.gen)
}

// patch applies fn to memory without saving.
func (t *table[T]) patch(fn func(T) (T, bool)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, changed := fn(t.value)
	if !changed {
		return false
	}
	t.value = next
	t.gen++
	return true
}

// replace overwrites memory wholesale, as after a load.
func (t *table[T]) replace(v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.value = v
	t.gen++
}

// flush queues a save of the current value.
func (t *table[T]) flush() *Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.writer.submit(t.clone(t.value), t.gen)
}

// persist is the writer's save function: guard, save, verify.
func (t *table[T]) persist(ctx context.Context, value T, gen uint64) error {
	if t.skip != nil && t.skip(value) {
		t.log.Info().Msg("skipping save of empty collection")
		t.metrics.Save(string(t.name), metrics.ResultSkipped)
		return nil
	}

	if err := t.save(ctx, value); err != nil {
		t.log.Error().Err(err).Str("op", "save").Msg("failed to save table")
		t.metrics.Save(string(t.name), metrics.ResultError)
		return err
	}

	persisted, err := t.load(ctx)
	t.metrics.Load(string(t.name), err)
	if err != nil {
		t.log.Error().Err(err).Str("op", "verify").Msg("failed to reload table after save")
		t.metrics.Save(string(t.name), metrics.ResultError)
		return err
	}

	t.metrics.Save(string(t.name), metrics.ResultOK)
	t.reconcile(gen, value, persisted)
	return nil
}
