package libvirt

import (
	"fmt"
	"os"
	"strings"

	"libvirt.org/go/libvirtxml"

	"github.com/jbweber/hangar/api/v1alpha1"
)

// ReadDefinition parses the domain XML file backing a container.
func ReadDefinition(path string) (*libvirtxml.Domain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition %s: %w", path, err)
	}
	return ParseDefinition(string(data))
}

// ParseDefinition parses domain XML and checks that it names the domain.
func ParseDefinition(xml string) (*libvirtxml.Domain, error) {
	dom := &libvirtxml.Domain{}
	if err := dom.Unmarshal(xml); err != nil {
		return nil, fmt.Errorf("failed to parse domain XML: %w", err)
	}
	if strings.TrimSpace(dom.Name) == "" {
		return nil, fmt.Errorf("domain XML has no name")
	}
	return dom, nil
}

// DomainName returns the domain name declared in a definition file.
func DomainName(path string) (string, error) {
	dom, err := ReadDefinition(path)
	if err != nil {
		return "", err
	}
	return dom.Name, nil
}

// ApplyHardware points the domain at a hardware profile: the firmware loader
// becomes the profile's BIOS image and the emulator its template binary.
// Empty profile paths leave the corresponding setting untouched.
func ApplyHardware(dom *libvirtxml.Domain, hw v1alpha1.HardwareProfile) {
	if hw.BIOSPath != "" {
		if dom.OS == nil {
			dom.OS = &libvirtxml.DomainOS{
				Type: &libvirtxml.DomainOSType{Type: "hvm"},
			}
		}
		dom.OS.Firmware = ""
		dom.OS.Loader = &libvirtxml.DomainLoader{
			Path:     hw.BIOSPath,
			Readonly: "yes",
			Type:     "rom",
		}
	}

	if hw.VMXPath != "" {
		if dom.Devices == nil {
			dom.Devices = &libvirtxml.DomainDeviceList{}
		}
		dom.Devices.Emulator = hw.VMXPath
	}
}

// HardwareDefinition reads the definition at path, applies hw, and returns
// the resulting XML.
func HardwareDefinition(path string, hw v1alpha1.HardwareProfile) (string, error) {
	dom, err := ReadDefinition(path)
	if err != nil {
		return "", err
	}

	ApplyHardware(dom, hw)

	xml, err := dom.Marshal()
	if err != nil {
		return "", fmt.Errorf("failed to marshal domain XML: %w", err)
	}
	return xml, nil
}
