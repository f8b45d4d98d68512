package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewStore_RegistersAndCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewStore(reg)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	m.Save("hardware", ResultOK)
	m.Save("hardware", ResultOK)
	m.Save("hardware", ResultSkipped)
	m.Load("containers", errors.New("boom"))
	m.Mismatch("containers")
	m.Coalesce("settings")
	m.Flush()

	if got := testutil.ToFloat64(m.Saves.WithLabelValues("hardware", ResultOK)); got != 2 {
		t.Errorf("saves ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Saves.WithLabelValues("hardware", ResultSkipped)); got != 1 {
		t.Errorf("saves skipped = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Loads.WithLabelValues("containers", ResultError)); got != 1 {
		t.Errorf("loads error = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Mismatches.WithLabelValues("containers")); got != 1 {
		t.Errorf("mismatches = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.FlushEvents); got != 1 {
		t.Errorf("flushes = %v, want 1", got)
	}
}

func TestNewStore_DoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewStore(reg); err != nil {
		t.Fatalf("first NewStore() error = %v", err)
	}
	if _, err := NewStore(reg); err == nil {
		t.Error("expected error registering twice")
	}
}

func TestNilStore_IsNoop(t *testing.T) {
	var m *Store
	m.Save("hardware", ResultOK)
	m.Load("hardware", nil)
	m.Mismatch("hardware")
	m.Coalesce("hardware")
	m.Flush()
}
