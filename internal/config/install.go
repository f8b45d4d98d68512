package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// installCandidates are the directories DetectInstallPath probes, in order.
var installCandidates = []string{
	"/usr/lib/vmware",
	"/opt/vmware",
	`C:\Program Files (x86)\VMware\VMware Workstation`,
	`C:\Program Files\VMware\VMware Workstation`,
}

// ValidateInstallPath checks that path exists and is a directory. It
// returns the expanded absolute path.
func ValidateInstallPath(path string) (string, error) {
	expanded, err := expandPath(path)
	if err != nil {
		return "", fmt.Errorf("invalid install path: %w", err)
	}

	info, err := os.Stat(expanded)
	if err != nil {
		return "", fmt.Errorf("install path %s: %w", expanded, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("install path %s is not a directory", expanded)
	}
	return expanded, nil
}

// DetectInstallPath returns the first well-known install directory that
// exists, or an error when none does.
func DetectInstallPath() (string, error) {
	return detectInstallPath(installCandidates)
}

func detectInstallPath(candidates []string) (string, error) {
	for _, c := range candidates {
		if info, err := os.Stat(filepath.Clean(c)); err == nil && info.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("no installation found (checked %d locations)", len(candidates))
}
