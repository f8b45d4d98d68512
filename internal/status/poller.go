package status

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jbweber/hangar/api/v1alpha1"
)

const defaultPollInterval = 2 * time.Second

// Lister reports the names of active domains. *vmctl.Controller satisfies it.
type Lister interface {
	ListRunning(ctx context.Context) ([]string, error)
}

// Source supplies the containers to report on. *store.Store satisfies it.
type Source interface {
	Containers() []v1alpha1.Container
}

// Snapshot is the poller's latest view.
type Snapshot struct {
	Statuses    []ContainerStatus
	LastError   error
	LastUpdated time.Time
}

// Poller refreshes container statuses while its view is visible.
type Poller struct {
	lister   Lister
	source   Source
	nameOf   NameFunc
	interval time.Duration
	log      zerolog.Logger
	onUpdate func(Snapshot)

	mu       sync.Mutex
	parent   context.Context
	cancel   context.CancelFunc
	snapshot Snapshot
	wg       sync.WaitGroup
}

// Option configures a Poller.
type Option func(*Poller)

// WithInterval sets the refresh cadence. Non-positive values use the default.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithLogger sets the poller's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Poller) { p.log = l }
}

// WithNameFunc sets how containers map to domain names. The default uses
// the container's name.
func WithNameFunc(fn NameFunc) Option {
	return func(p *Poller) { p.nameOf = fn }
}

// OnUpdate registers a callback run after every refresh.
func OnUpdate(fn func(Snapshot)) Option {
	return func(p *Poller) { p.onUpdate = fn }
}

// NewPoller creates a hidden Poller bound to parent. Nothing runs until Show.
func NewPoller(parent context.Context, lister Lister, source Source, opts ...Option) *Poller {
	p := &Poller{
		lister:   lister,
		source:   source,
		nameOf:   func(c v1alpha1.Container) string { return c.Name },
		interval: defaultPollInterval,
		log:      zerolog.Nop(),
		onUpdate: func(Snapshot) {},
		parent:   parent,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.snapshot.Statuses = Unknown(source.Containers(), p.nameOf)
	return p
}

// Show starts the refresh loop if it is not already running.
func (p *Poller) Show() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil || p.parent.Err() != nil {
		return
	}

	ctx, cancel := context.WithCancel(p.parent)
	p.cancel = cancel
	p.wg.Add(1)
	go p.loop(ctx)
}

// Hide stops the refresh loop immediately.
func (p *Poller) Hide() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Visible reports whether the loop has been started and not hidden.
func (p *Poller) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Wait blocks until every loop started by Show has exited.
func (p *Poller) Wait() {
	p.wg.Wait()
}

// Snapshot returns a copy of the latest view.
func (p *Poller) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return copySnapshot(p.snapshot)
}

// Refresh polls once and updates the snapshot. Results that arrive after
// ctx has ended are discarded.
func (p *Poller) Refresh(ctx context.Context) ([]ContainerStatus, error) {
	running, err := p.lister.ListRunning(ctx)
	if ctx.Err() != nil {
		// Hidden or shut down mid-poll; the result belongs to no view.
		return nil, ctx.Err()
	}

	p.mu.Lock()
	p.snapshot.LastUpdated = time.Now()
	p.snapshot.LastError = err
	if err == nil {
		p.snapshot.Statuses = Compute(p.source.Containers(), running, p.nameOf)
	}
	snap := copySnapshot(p.snapshot)
	p.mu.Unlock()

	if err != nil {
		p.log.Warn().Err(err).Msg("status poll failed")
	}
	p.onUpdate(snap)
	return snap.Statuses, err
}

func (p *Poller) loop(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		_, _ = p.Refresh(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func copySnapshot(s Snapshot) Snapshot {
	out := s
	if s.Statuses != nil {
		out.Statuses = make([]ContainerStatus, len(s.Statuses))
		copy(out.Statuses, s.Statuses)
	}
	return out
}
