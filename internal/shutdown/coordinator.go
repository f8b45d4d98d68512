package shutdown

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/jbweber/hangar/internal/metrics"
)

// State is the coordinator's lifecycle position.
type State int32

const (
	StateIdle State = iota
	StateFlushing
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateFlushing:
		return "Flushing"
	case StateDone:
		return "Done"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Host is the process-level event channel.
//
// In production, this is satisfied by *host.Signals.
// In tests, this is satisfied by mock implementations.
type Host interface {
	// AboutToClose is closed when the host wants to terminate.
	AboutToClose() <-chan struct{}

	// Ack tells the host the final flush has settled and exit may proceed.
	Ack(err error)
}

// Flusher persists all pending state. *store.Store satisfies it.
type Flusher interface {
	SaveAll(ctx context.Context) error
}

// Coordinator runs the shutdown handshake once per process.
type Coordinator struct {
	flusher Flusher
	log     zerolog.Logger
	metrics *metrics.Store

	state atomic.Int32
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the coordinator's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Coordinator) { c.log = l }
}

// WithMetrics counts flushes on m.
func WithMetrics(m *metrics.Store) Option {
	return func(c *Coordinator) { c.metrics = m }
}

// New creates an idle Coordinator that flushes f.
func New(f Flusher, opts ...Option) *Coordinator {
	c := &Coordinator{
		flusher: f,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State reports where the coordinator is in its lifecycle.
func (c *Coordinator) State() State {
	return State(c.state.Load())
}

// Run waits for the host's about-to-close signal, flushes, and acknowledges.
//
// If ctx ends before the signal arrives, Run returns ctx.Err() without
// flushing. Once the signal is received, cancellation of ctx no longer
// affects the flush. Only the first Run to observe the signal flushes; any
// other call returns nil without acknowledging. The flush error, if any, is
// both passed to Ack and returned.
func (c *Coordinator) Run(ctx context.Context, host Host) error {
	select {
	case <-host.AboutToClose():
	case <-ctx.Done():
		return ctx.Err()
	}

	if !c.state.CompareAndSwap(int32(StateIdle), int32(StateFlushing)) {
		c.log.Debug().Msg("shutdown already handled, ignoring signal")
		return nil
	}

	c.log.Info().Msg("host is closing, flushing store")
	c.metrics.Flush()

	start := time.Now()
	err := c.flusher.SaveAll(context.WithoutCancel(ctx))
	if err != nil {
		c.log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("final flush failed")
		err = fmt.Errorf("failed to flush on shutdown: %w", err)
	} else {
		c.log.Info().Dur("elapsed", time.Since(start)).Msg("final flush complete")
	}

	c.state.Store(int32(StateDone))
	host.Ack(err)
	return err
}
