package store

import (
	"context"
	"sync"

	"github.com/jbweber/hangar/api/v1alpha1"
)

// mockGateway is an in-memory implementation of the Gateway interface for
// testing. By default it behaves like a consistent store: loads return
// whatever was last saved.
type mockGateway struct {
	mu sync.Mutex

	// Stored tables
	hardware   []v1alpha1.HardwareProfile
	containers []v1alpha1.Container
	settings   v1alpha1.Settings

	// Configurable behavior; nil means use the stored tables
	saveHardwareFunc   func(ctx context.Context, h []v1alpha1.HardwareProfile) error
	loadHardwareFunc   func(ctx context.Context) ([]v1alpha1.HardwareProfile, error)
	saveContainersFunc func(ctx context.Context, c []v1alpha1.Container) error
	loadContainersFunc func(ctx context.Context) ([]v1alpha1.Container, error)
	saveSettingsFunc   func(ctx context.Context, s v1alpha1.Settings) error
	loadSettingsFunc   func(ctx context.Context) (v1alpha1.Settings, error)

	// Call tracking
	saveHardwareCalls   [][]v1alpha1.HardwareProfile
	loadHardwareCalls   int
	saveContainersCalls [][]v1alpha1.Container
	loadContainersCalls int
	saveSettingsCalls   []v1alpha1.Settings
	loadSettingsCalls   int
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		hardware:   []v1alpha1.HardwareProfile{},
		containers: []v1alpha1.Container{},
	}
}

func (m *mockGateway) SaveHardware(ctx context.Context, h []v1alpha1.HardwareProfile) error {
	m.mu.Lock()
	m.saveHardwareCalls = append(m.saveHardwareCalls, v1alpha1.CopyHardware(h))
	fn := m.saveHardwareFunc
	m.mu.Unlock()

	if fn != nil {
		if err := fn(ctx, h); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.hardware = v1alpha1.CopyHardware(h)
	return nil
}

func (m *mockGateway) LoadHardware(ctx context.Context) ([]v1alpha1.HardwareProfile, error) {
	m.mu.Lock()
	m.loadHardwareCalls++
	fn := m.loadHardwareFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return v1alpha1.CopyHardware(m.hardware), nil
}

func (m *mockGateway) SaveContainers(ctx context.Context, c []v1alpha1.Container) error {
	m.mu.Lock()
	m.saveContainersCalls = append(m.saveContainersCalls, v1alpha1.CopyContainers(c))
	fn := m.saveContainersFunc
	m.mu.Unlock()

	if fn != nil {
		if err := fn(ctx, c); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.containers = v1alpha1.CopyContainers(c)
	return nil
}

func (m *mockGateway) LoadContainers(ctx context.Context) ([]v1alpha1.Container, error) {
	m.mu.Lock()
	m.loadContainersCalls++
	fn := m.loadContainersFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return v1alpha1.CopyContainers(m.containers), nil
}

func (m *mockGateway) SaveSettings(ctx context.Context, s v1alpha1.Settings) error {
	m.mu.Lock()
	m.saveSettingsCalls = append(m.saveSettingsCalls, s.DeepCopy())
	fn := m.saveSettingsFunc
	m.mu.Unlock()

	if fn != nil {
		if err := fn(ctx, s); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = s.DeepCopy()
	return nil
}

func (m *mockGateway) LoadSettings(ctx context.Context) (v1alpha1.Settings, error) {
	m.mu.Lock()
	m.loadSettingsCalls++
	fn := m.loadSettingsFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings.DeepCopy(), nil
}

func (m *mockGateway) hardwareSaves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saveHardwareCalls)
}

func (m *mockGateway) containerSaves() [][]v1alpha1.Container {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]v1alpha1.Container, len(m.saveContainersCalls))
	copy(out, m.saveContainersCalls)
	return out
}

func (m *mockGateway) storedHardware() []v1alpha1.HardwareProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return v1alpha1.CopyHardware(m.hardware)
}

func (m *mockGateway) storedContainers() []v1alpha1.Container {
	m.mu.Lock()
	defer m.mu.Unlock()
	return v1alpha1.CopyContainers(m.containers)
}

// Verify mockGateway implements Gateway
var _ Gateway = (*mockGateway)(nil)
