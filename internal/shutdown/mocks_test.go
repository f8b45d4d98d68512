package shutdown

import (
	"context"
	"sync"
)

// mockHost is a mock implementation of the Host interface for testing.
type mockHost struct {
	mu sync.Mutex

	closing chan struct{}
	acked   chan struct{}

	// Call tracking
	ackCalls []error
}

func newMockHost() *mockHost {
	return &mockHost{
		closing: make(chan struct{}),
		acked:   make(chan struct{}, 8),
	}
}

func (m *mockHost) AboutToClose() <-chan struct{} {
	return m.closing
}

func (m *mockHost) Ack(err error) {
	m.mu.Lock()
	m.ackCalls = append(m.ackCalls, err)
	m.mu.Unlock()
	m.acked <- struct{}{}
}

func (m *mockHost) close() {
	close(m.closing)
}

func (m *mockHost) acks() []error {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]error, len(m.ackCalls))
	copy(out, m.ackCalls)
	return out
}

// mockFlusher is a mock implementation of the Flusher interface for testing.
type mockFlusher struct {
	mu sync.Mutex

	saveAllFunc func(ctx context.Context) error

	saveAllCalls int
}

func (m *mockFlusher) SaveAll(ctx context.Context) error {
	m.mu.Lock()
	m.saveAllCalls++
	fn := m.saveAllFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return nil
}

func (m *mockFlusher) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveAllCalls
}

// Verify mocks implement the interfaces
var (
	_ Host    = (*mockHost)(nil)
	_ Flusher = (*mockFlusher)(nil)
)
