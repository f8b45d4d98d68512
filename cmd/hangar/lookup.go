package main

import (
	"fmt"
	"strings"

	"github.com/jbweber/hangar/api/v1alpha1"
)

// findByRef resolves ref against items by exact id, then exact name, then a
// unique id prefix.
func findByRef[T any](items []T, ref, kind string, id, name func(T) string) (T, error) {
	var zero T
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return zero, fmt.Errorf("%s reference is empty", kind)
	}

	for _, item := range items {
		if id(item) == ref {
			return item, nil
		}
	}

	var matches []T
	for _, item := range items {
		if name(item) == ref {
			matches = append(matches, item)
		}
	}
	if len(matches) == 0 {
		for _, item := range items {
			if strings.HasPrefix(id(item), ref) {
				matches = append(matches, item)
			}
		}
	}

	switch len(matches) {
	case 0:
		return zero, fmt.Errorf("%s %q not found", kind, ref)
	case 1:
		return matches[0], nil
	default:
		return zero, fmt.Errorf("%s reference %q is ambiguous (%d matches)", kind, ref, len(matches))
	}
}

func findContainer(containers []v1alpha1.Container, ref string) (v1alpha1.Container, error) {
	return findByRef(containers, ref, "container",
		func(c v1alpha1.Container) string { return c.ID },
		func(c v1alpha1.Container) string { return c.Name },
	)
}

func findHardware(hardware []v1alpha1.HardwareProfile, ref string) (v1alpha1.HardwareProfile, error) {
	return findByRef(hardware, ref, "hardware profile",
		func(h v1alpha1.HardwareProfile) string { return h.ID },
		func(h v1alpha1.HardwareProfile) string { return h.Name },
	)
}
