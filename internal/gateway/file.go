package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/hangar/api/v1alpha1"
)

const (
	hardwareFile   = "hardware.yaml"
	containersFile = "containers.yaml"
	settingsFile   = "settings.yaml"
)

// FileGateway persists tables as YAML files under a directory.
type FileGateway struct {
	dir string

	// one lock per table file; different tables never block each other
	mu map[Table]*sync.Mutex
}

// NewFileGateway returns a gateway rooted at dir. The directory is created on
// first save.
func NewFileGateway(dir string) *FileGateway {
	return &FileGateway{
		dir: dir,
		mu: map[Table]*sync.Mutex{
			TableHardware:   {},
			TableContainers: {},
			TableSettings:   {},
		},
	}
}

// Dir returns the data directory.
func (g *FileGateway) Dir() string {
	return g.dir
}

// SaveHardware writes the hardware table.
func (g *FileGateway) SaveHardware(ctx context.Context, hardware []v1alpha1.HardwareProfile) error {
	if hardware == nil {
		hardware = []v1alpha1.HardwareProfile{}
	}
	return g.save(ctx, TableHardware, hardwareFile, hardware)
}

// LoadHardware reads the hardware table.
func (g *FileGateway) LoadHardware(ctx context.Context) ([]v1alpha1.HardwareProfile, error) {
	var out []v1alpha1.HardwareProfile
	if err := g.load(ctx, TableHardware, hardwareFile, &out); err != nil {
		return nil, err
	}
	if err := checkUnique(out, v1alpha1.HardwareKey); err != nil {
		return nil, newError(OpLoad, TableHardware, err)
	}
	if out == nil {
		out = []v1alpha1.HardwareProfile{}
	}
	return out, nil
}

// SaveContainers writes the container table, preserving order.
func (g *FileGateway) SaveContainers(ctx context.Context, containers []v1alpha1.Container) error {
	if containers == nil {
		containers = []v1alpha1.Container{}
	}
	return g.save(ctx, TableContainers, containersFile, containers)
}

// LoadContainers reads the container table in stored order.
func (g *FileGateway) LoadContainers(ctx context.Context) ([]v1alpha1.Container, error) {
	var out []v1alpha1.Container
	if err := g.load(ctx, TableContainers, containersFile, &out); err != nil {
		return nil, err
	}
	if err := checkUnique(out, v1alpha1.ContainerKey); err != nil {
		return nil, newError(OpLoad, TableContainers, err)
	}
	if out == nil {
		out = []v1alpha1.Container{}
	}
	return out, nil
}

// SaveSettings overwrites the settings singleton.
func (g *FileGateway) SaveSettings(ctx context.Context, settings v1alpha1.Settings) error {
	return g.save(ctx, TableSettings, settingsFile, settings)
}

// LoadSettings reads the settings singleton. A missing file yields empty
// settings.
func (g *FileGateway) LoadSettings(ctx context.Context) (v1alpha1.Settings, error) {
	var out v1alpha1.Settings
	if err := g.load(ctx, TableSettings, settingsFile, &out); err != nil {
		return v1alpha1.Settings{}, err
	}
	return out, nil
}

func (g *FileGateway) save(ctx context.Context, table Table, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return newError(OpSave, table, err)
	}

	data, err := yaml.Marshal(v)
	if err != nil {
		return newError(OpSave, table, fmt.Errorf("failed to marshal YAML: %w", err))
	}

	mu := g.mu[table]
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return newError(OpSave, table, fmt.Errorf("failed to create data dir: %w", err))
	}

	if err := writeFileAtomic(filepath.Join(g.dir, name), data); err != nil {
		return newError(OpSave, table, err)
	}
	return nil
}

func (g *FileGateway) load(ctx context.Context, table Table, name string, out any) error {
	if err := ctx.Err(); err != nil {
		return newError(OpLoad, table, err)
	}

	mu := g.mu[table]
	mu.Lock()
	data, err := os.ReadFile(filepath.Join(g.dir, name))
	mu.Unlock()

	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return newError(OpLoad, table, fmt.Errorf("failed to read file: %w", err))
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return newError(OpLoad, table, fmt.Errorf("failed to unmarshal YAML: %w", err))
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

func checkUnique[T any](items []T, key func(T) string) error {
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		k := key(item)
		if seen[k] {
			return fmt.Errorf("entry %d: duplicate id %q", i, k)
		}
		seen[k] = true
	}
	return nil
}
