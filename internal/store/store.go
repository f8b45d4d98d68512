package store

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jbweber/hangar/api/v1alpha1"
	"github.com/jbweber/hangar/internal/gateway"
	"github.com/jbweber/hangar/internal/metrics"
)

// ErrDisposed is returned for saves requested after Dispose.
var ErrDisposed = errors.New("store disposed")

// Store owns the in-memory hardware, container and settings collections.
type Store struct {
	gw      Gateway
	log     zerolog.Logger
	metrics *metrics.Store

	closed atomic.Bool

	hardware   *table[[]v1alpha1.HardwareProfile]
	containers *table[[]v1alpha1.Container]
	settings   *table[v1alpha1.Settings]
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence failures and
// reconciliation events.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithMetrics records persistence traffic on m.
func WithMetrics(m *metrics.Store) Option {
	return func(s *Store) { s.metrics = m }
}

// New creates a Store backed by gw. The store starts empty; call Initialize
// to load persisted state.
func New(gw Gateway, opts ...Option) *Store {
	s := &Store{
		gw:  gw,
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.hardware = newTable(tableConfig[[]v1alpha1.HardwareProfile]{
		name:  gateway.TableHardware,
		clone: v1alpha1.CopyHardware,
		save:  gw.SaveHardware,
		load:  gw.LoadHardware,
		skip:  func(h []v1alpha1.HardwareProfile) bool { return len(h) == 0 },
	}, s.log, s.metrics, &s.closed)

	s.containers = newTable(tableConfig[[]v1alpha1.Container]{
		name:  gateway.TableContainers,
		clone: v1alpha1.CopyContainers,
		save:  gw.SaveContainers,
		load:  gw.LoadContainers,
	}, s.log, s.metrics, &s.closed)

	s.settings = newTable(tableConfig[v1alpha1.Settings]{
		name:  gateway.TableSettings,
		clone: v1alpha1.Settings.DeepCopy,
		save:  gw.SaveSettings,
		load:  gw.LoadSettings,
	}, s.log, s.metrics, &s.closed)

	return s
}

// Initialize performs the initial bulk load.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.Load(ctx); err != nil {
		return err
	}
	s.log.Info().
		Int("hardware", len(s.Hardware())).
		Int("containers", len(s.Containers())).
		Msg("store initialized")
	return nil
}

// Load fetches all three tables and replaces memory wholesale. Memory is left
// untouched if any table fails to load. Concurrent calls are not
// deduplicated; the last one to finish wins.
func (s *Store) Load(ctx context.Context) error {
	var (
		hardware   []v1alpha1.HardwareProfile
		containers []v1alpha1.Container
		settings   v1alpha1.Settings
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		hardware, err = s.gw.LoadHardware(gctx)
		s.metrics.Load(string(gateway.TableHardware), err)
		if err != nil {
			return fmt.Errorf("failed to load hardware: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		containers, err = s.gw.LoadContainers(gctx)
		s.metrics.Load(string(gateway.TableContainers), err)
		if err != nil {
			return fmt.Errorf("failed to load containers: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		settings, err = s.gw.LoadSettings(gctx)
		s.metrics.Load(string(gateway.TableSettings), err)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Msg("failed to load tables")
		return err
	}

	s.hardware.replace(hardware)
	s.containers.replace(containers)
	s.settings.replace(settings)
	return nil
}

// SaveAll saves all three tables concurrently and waits until every save has
// settled. The returned error is the first failure, if any.
func (s *Store) SaveAll(ctx context.Context) error {
	if s.closed.Load() {
		return ErrDisposed
	}

	results := []*Result{
		s.hardware.flush(),
		s.containers.flush(),
		s.settings.flush(),
	}

	var g errgroup.Group
	for _, r := range results {
		r := r // per-iteration copy; go directive is below 1.22
		g.Go(func() error { return r.Wait(ctx) })
	}
	return g.Wait()
}

// Dispose stops accepting saves and waits for queued ones to finish.
// In-memory mutations remain possible afterwards; their Results report
// ErrDisposed.
func (s *Store) Dispose(ctx context.Context) error {
	s.closed.Store(true)

	var g errgroup.Group
	g.Go(func() error { return s.hardware.writer.wait(ctx) })
	g.Go(func() error { return s.containers.writer.wait(ctx) })
	g.Go(func() error { return s.settings.writer.wait(ctx) })
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to drain pending writes: %w", err)
	}
	return nil
}

// Hardware returns a copy of the hardware collection.
func (s *Store) Hardware() []v1alpha1.HardwareProfile {
	return s.hardware.get()
}

// Containers returns a copy of the container collection in display order.
func (s *Store) Containers() []v1alpha1.Container {
	return s.containers.get()
}

// Settings returns a copy of the settings.
func (s *Store) Settings() v1alpha1.Settings {
	return s.settings.get()
}
