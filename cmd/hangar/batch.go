package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/hangar/api/v1alpha1"
	"github.com/jbweber/hangar/internal/naming"
)

// readBatch decodes a YAML sequence of records from path.
func readBatch[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var items []T
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse batch file %s: %w", path, err)
	}
	return items, nil
}

// normalizeHardwareBatch fills missing identities, names and timestamps so
// that re-importing the same scan merges onto the same records.
func normalizeHardwareBatch(batch []v1alpha1.HardwareProfile) ([]v1alpha1.HardwareProfile, error) {
	out := make([]v1alpha1.HardwareProfile, 0, len(batch))
	for i, h := range batch {
		h.BIOSPath = strings.TrimSpace(h.BIOSPath)
		h.VMXPath = strings.TrimSpace(h.VMXPath)
		if h.ID == "" {
			if h.BIOSPath == "" && h.VMXPath == "" {
				return nil, fmt.Errorf("hardware entry %d: id or paths are required", i)
			}
			h.ID = naming.HardwareIDFromPaths(h.BIOSPath, h.VMXPath)
		}
		if strings.TrimSpace(h.Name) == "" {
			h.Name = naming.ContainerNameFromPath(h.VMXPath)
		}
		if h.CreatedAt.IsZero() {
			h.CreatedAt = v1alpha1.Now()
		}
		if err := h.Validate(); err != nil {
			return nil, fmt.Errorf("hardware entry %d: %w", i, err)
		}
		out = append(out, h)
	}
	return out, nil
}

// normalizeContainerBatch fills missing identities, names and timestamps
// from each entry's definition path.
func normalizeContainerBatch(batch []v1alpha1.Container) ([]v1alpha1.Container, error) {
	out := make([]v1alpha1.Container, 0, len(batch))
	for i, c := range batch {
		c.VMXPath = strings.TrimSpace(c.VMXPath)
		if c.ID == "" && c.VMXPath != "" {
			c.ID = naming.ContainerIDFromPath(c.VMXPath)
		}
		if strings.TrimSpace(c.Name) == "" {
			c.Name = naming.ContainerNameFromPath(c.VMXPath)
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = v1alpha1.Now()
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("container entry %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}
