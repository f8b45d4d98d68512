// Package host adapts operating-system process signals to the
// about-to-close / acknowledge handshake used by the shutdown coordinator.
package host

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// ErrAckTimeout is returned by Wait when no acknowledgment arrives in time.
var ErrAckTimeout = errors.New("timed out waiting for shutdown acknowledgment")

// Signals turns SIGINT/SIGTERM (or the signals given to NewSignals) into an
// about-to-close event and lets the process block on the acknowledgment.
type Signals struct {
	ch      chan os.Signal
	closing chan struct{}
	done    chan struct{}
	stop    chan struct{}

	closeOnce sync.Once
	ackOnce   sync.Once
	stopOnce  sync.Once

	mu  sync.Mutex
	sig os.Signal
	err error
}

// NewSignals starts listening for sigs, defaulting to SIGINT and SIGTERM.
// Call Stop to release the signal handler.
func NewSignals(sigs ...os.Signal) *Signals {
	if len(sigs) == 0 {
		sigs = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}

	s := &Signals{
		ch:      make(chan os.Signal, 1),
		closing: make(chan struct{}),
		done:    make(chan struct{}),
		stop:    make(chan struct{}),
	}
	signal.Notify(s.ch, sigs...)

	go func() {
		select {
		case sig := <-s.ch:
			s.mu.Lock()
			s.sig = sig
			s.mu.Unlock()
			s.Close()
		case <-s.stop:
		}
	}()

	return s
}

// AboutToClose is closed on the first signal or Close call.
func (s *Signals) AboutToClose() <-chan struct{} {
	return s.closing
}

// Close raises about-to-close without an OS signal, as a quit command would.
func (s *Signals) Close() {
	s.closeOnce.Do(func() { close(s.closing) })
}

// Ack records the flush outcome and releases Done. Only the first call
// counts.
func (s *Signals) Ack(err error) {
	s.ackOnce.Do(func() {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		close(s.done)
	})
}

// Done is closed once Ack has been called.
func (s *Signals) Done() <-chan struct{} {
	return s.done
}

// Signal returns the OS signal that triggered closing, or nil.
func (s *Signals) Signal() os.Signal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sig
}

// Err returns the error passed to Ack.
func (s *Signals) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Wait blocks until Ack is called, the timeout elapses, or ctx ends. A zero
// timeout waits without bound. On acknowledgment it returns the acked error.
func (s *Signals) Wait(ctx context.Context, timeout time.Duration) error {
	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case <-s.done:
		return s.Err()
	case <-expired:
		return ErrAckTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop releases the OS signal handler. Further signals get default handling.
func (s *Signals) Stop() {
	s.stopOnce.Do(func() {
		signal.Stop(s.ch)
		close(s.stop)
	})
}
