// Package metrics exposes Prometheus counters for the entity store's
// persistence traffic.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hangar"

// Result label values for save counters.
const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultSkipped = "skipped"
)

// Store holds the store's counters. A nil *Store is valid and records nothing.
type Store struct {
	Saves       *prometheus.CounterVec
	Loads       *prometheus.CounterVec
	Mismatches  *prometheus.CounterVec
	Coalesced   *prometheus.CounterVec
	FlushEvents prometheus.Counter
}

// NewStore creates the store counters and registers them with reg.
func NewStore(reg prometheus.Registerer) (*Store, error) {
	m := &Store{
		Saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "saves_total",
			Help:      "Table saves by table and result (ok, error, skipped).",
		}, []string{"table", "result"}),
		Loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "loads_total",
			Help:      "Table loads by table and result.",
		}, []string{"table", "result"}),
		Mismatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "reconcile_mismatches_total",
			Help:      "Saves whose verification load disagreed with the written value.",
		}, []string{"table"}),
		Coalesced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "coalesced_writes_total",
			Help:      "Pending writes replaced by a newer value before being issued.",
		}, []string{"table"}),
		FlushEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "shutdown",
			Name:      "flushes_total",
			Help:      "Shutdown flushes triggered by the host.",
		}),
	}

	for _, c := range []prometheus.Collector{m.Saves, m.Loads, m.Mismatches, m.Coalesced, m.FlushEvents} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Save records a save outcome.
func (m *Store) Save(table, result string) {
	if m == nil {
		return
	}
	m.Saves.WithLabelValues(table, result).Inc()
}

// Load records a load outcome.
func (m *Store) Load(table string, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.Loads.WithLabelValues(table, result).Inc()
}

// Mismatch records a reconciliation mismatch.
func (m *Store) Mismatch(table string) {
	if m == nil {
		return
	}
	m.Mismatches.WithLabelValues(table).Inc()
}

// Coalesce records a pending write superseded by a newer one.
func (m *Store) Coalesce(table string) {
	if m == nil {
		return
	}
	m.Coalesced.WithLabelValues(table).Inc()
}

// Flush records a shutdown flush.
func (m *Store) Flush() {
	if m == nil {
		return
	}
	m.FlushEvents.Inc()
}
