package status

import (
	"context"
	"sync"

	"github.com/jbweber/hangar/api/v1alpha1"
)

// mockLister is a mock implementation of the Lister interface for testing.
type mockLister struct {
	mu sync.Mutex

	listRunningFunc func(ctx context.Context) ([]string, error)

	// Call tracking
	listRunningCalls int
	called           chan struct{}
}

func newMockLister(running ...string) *mockLister {
	return &mockLister{
		listRunningFunc: func(ctx context.Context) ([]string, error) {
			return running, nil
		},
		called: make(chan struct{}, 64),
	}
}

func (m *mockLister) ListRunning(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	m.listRunningCalls++
	fn := m.listRunningFunc
	m.mu.Unlock()

	defer func() {
		select {
		case m.called <- struct{}{}:
		default:
		}
	}()
	return fn(ctx)
}

func (m *mockLister) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listRunningCalls
}

// staticSource is a Source backed by a fixed slice.
type staticSource []v1alpha1.Container

func (s staticSource) Containers() []v1alpha1.Container {
	return v1alpha1.CopyContainers(s)
}

// Verify mocks implement the interfaces
var (
	_ Lister = (*mockLister)(nil)
	_ Source = staticSource(nil)
)
