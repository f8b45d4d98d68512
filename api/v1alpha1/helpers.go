package v1alpha1

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewHardwareProfile creates a HardwareProfile with a fresh ID and creation
// timestamp.
func NewHardwareProfile(name, biosPath, vmxPath string) HardwareProfile {
	return HardwareProfile{
		ID:        uuid.New().String(),
		Name:      name,
		BIOSPath:  biosPath,
		VMXPath:   vmxPath,
		CreatedAt: Now(),
	}
}

// NewContainer creates a Container with a fresh ID and creation timestamp.
func NewContainer(name, vmxPath string) Container {
	return Container{
		ID:        uuid.New().String(),
		Name:      name,
		VMXPath:   vmxPath,
		CreatedAt: Now(),
	}
}

// HardwareKey returns the identity of a hardware profile.
func HardwareKey(h HardwareProfile) string { return h.ID }

// ContainerKey returns the identity of a container.
func ContainerKey(c Container) string { return c.ID }

// Validate checks that the profile carries an identity and a name.
func (h HardwareProfile) Validate() error {
	if strings.TrimSpace(h.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// Validate checks that the container carries an identity, a name and a
// definition path.
func (c Container) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(c.VMXPath) == "" {
		return fmt.Errorf("vmx_path is required")
	}
	return nil
}

// HasHardware reports whether the container references a hardware profile.
func (c Container) HasHardware() bool {
	return c.HardwareID != nil && *c.HardwareID != ""
}

// DeepCopy creates a deep copy of Container.
func (in Container) DeepCopy() Container {
	out := in
	out.HardwareID = copyString(in.HardwareID)
	return out
}

// DeepCopy creates a deep copy of Settings.
func (in Settings) DeepCopy() Settings {
	return Settings{
		VMwareInstallPath:        copyString(in.VMwareInstallPath),
		OriginalBIOSTemplatePath: copyString(in.OriginalBIOSTemplatePath),
		OriginalVMXTemplatePath:  copyString(in.OriginalVMXTemplatePath),
	}
}

// CopyHardware returns an independent copy of a hardware collection.
func CopyHardware(in []HardwareProfile) []HardwareProfile {
	if in == nil {
		return nil
	}
	out := make([]HardwareProfile, len(in))
	copy(out, in)
	return out
}

// CopyContainers returns an independent copy of a container collection.
func CopyContainers(in []Container) []Container {
	if in == nil {
		return nil
	}
	out := make([]Container, len(in))
	for i, c := range in {
		out[i] = c.DeepCopy()
	}
	return out
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences p, returning "" for nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func copyString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
