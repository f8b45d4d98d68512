// Package naming provides the naming conventions hangar applies to scanned
// VM definitions and hardware templates: display names derived from file
// paths and stable identities derived from those paths.
//
// Identities are name-based UUIDs (SHA-1, RFC 4122 version 5), so importing
// the same scan twice produces the same ids and merges cleanly.
package naming

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultHardwareID is the id given to the hardware profile found in the
	// install directory.
	DefaultHardwareID = "default"

	// DefaultHardwareName is the display name for DefaultHardwareID.
	DefaultHardwareName = "Default hardware"

	// UnknownName is used when a path yields no usable name.
	UnknownName = "Unknown"
)

// ContainerNameFromPath derives a display name from a definition file path
// by dropping the directory and extension.
//
// Example: /vms/web-01/web-01.vmx → web-01
func ContainerNameFromPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return UnknownName
	}

	base := filepath.Base(filepath.Clean(path))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." || stem == string(filepath.Separator) {
		return UnknownName
	}
	return stem
}

// ContainerIDFromPath returns the identity for the definition at path.
// Paths are cleaned first, so equivalent spellings map to the same id.
func ContainerIDFromPath(path string) string {
	return pathID("container", filepath.Clean(path))
}

// HardwareIDFromPaths returns the identity for a hardware profile built from
// the given firmware and template paths.
func HardwareIDFromPaths(biosPath, vmxPath string) string {
	return pathID("hardware", filepath.Clean(biosPath)+"\x00"+filepath.Clean(vmxPath))
}

func pathID(kind, key string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("hangar:"+kind+":"+key)).String()
}
