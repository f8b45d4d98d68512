package v1alpha1

// HardwareProfile is a named bundle of firmware and VM executable paths that
// containers can be started with.
type HardwareProfile struct {
	// ID is the opaque identity of the profile.
	ID string `json:"id" yaml:"id"`

	// Name is the display name.
	Name string `json:"name" yaml:"name"`

	// BIOSPath points at the firmware image.
	BIOSPath string `json:"bios_path" yaml:"bios_path"`

	// VMXPath points at the VM executable (or emulator binary).
	VMXPath string `json:"vmx_path" yaml:"vmx_path"`

	// CreatedAt is set once when the profile is created.
	CreatedAt Time `json:"created_at" yaml:"created_at"`
}

// Container is a managed record for one virtual machine definition. It is not
// an OS-level container.
type Container struct {
	// ID is the opaque identity of the container.
	ID string `json:"id" yaml:"id"`

	// Name is the display name.
	Name string `json:"name" yaml:"name"`

	// VMXPath is the path to the VM definition file.
	VMXPath string `json:"vmx_path" yaml:"vmx_path"`

	// CreatedAt is set once when the container is created.
	CreatedAt Time `json:"created_at" yaml:"created_at"`

	// HardwareID optionally references a HardwareProfile.ID. The reference
	// is not validated on write; see ResolveHardware in the store.
	// +optional
	HardwareID *string `json:"hardware_id" yaml:"hardware_id"`
}

// Settings is the singleton settings record. Every field is optional.
type Settings struct {
	VMwareInstallPath        *string `json:"vmware_install_path" yaml:"vmware_install_path"`
	OriginalBIOSTemplatePath *string `json:"original_bios_template_path" yaml:"original_bios_template_path"`
	OriginalVMXTemplatePath  *string `json:"original_vmx_template_path" yaml:"original_vmx_template_path"`
}
