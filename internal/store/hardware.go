package store

import (
	"github.com/jbweber/hangar/api/v1alpha1"
	"github.com/jbweber/hangar/internal/collection"
)

// AddHardware appends a profile and saves the hardware table. A profile whose
// ID already exists replaces the existing entry in place.
func (s *Store) AddHardware(h v1alpha1.HardwareProfile) *Result {
	return s.MergeHardwareBatch([]v1alpha1.HardwareProfile{h})
}

// RemoveHardware deletes a profile and saves the hardware table. Containers
// referencing it are left untouched. Unknown ids are a no-op.
func (s *Store) RemoveHardware(id string) *Result {
	return s.hardware.mutate(func(cur []v1alpha1.HardwareProfile) ([]v1alpha1.HardwareProfile, bool) {
		if collection.IndexOf(cur, id, v1alpha1.HardwareKey) < 0 {
			return cur, false
		}
		next := make([]v1alpha1.HardwareProfile, 0, len(cur)-1)
		for _, h := range cur {
			if h.ID != id {
				next = append(next, h)
			}
		}
		return next, true
	})
}

// MergeHardwareBatch folds batch into the hardware collection by id and
// saves the result.
func (s *Store) MergeHardwareBatch(batch []v1alpha1.HardwareProfile) *Result {
	return s.hardware.mutate(func(cur []v1alpha1.HardwareProfile) ([]v1alpha1.HardwareProfile, bool) {
		return collection.Merge(cur, batch, v1alpha1.HardwareKey), true
	})
}

// SetHardware replaces the hardware collection and saves it.
func (s *Store) SetHardware(hardware []v1alpha1.HardwareProfile) *Result {
	next := collection.Merge(nil, hardware, v1alpha1.HardwareKey)
	return s.hardware.mutate(func([]v1alpha1.HardwareProfile) ([]v1alpha1.HardwareProfile, bool) {
		return next, true
	})
}

// SaveHardware saves the current hardware collection.
func (s *Store) SaveHardware() *Result {
	return s.hardware.flush()
}

// HardwareByID looks up a profile.
func (s *Store) HardwareByID(id string) (v1alpha1.HardwareProfile, bool) {
	var (
		out   v1alpha1.HardwareProfile
		found bool
	)
	s.hardware.read(func(cur []v1alpha1.HardwareProfile) {
		if i := collection.IndexOf(cur, id, v1alpha1.HardwareKey); i >= 0 {
			out, found = cur[i], true
		}
	})
	return out, found
}

// ResolveHardware returns the profile a container references. It reports
// false when the container has no reference or the reference dangles.
func (s *Store) ResolveHardware(c v1alpha1.Container) (v1alpha1.HardwareProfile, bool) {
	if !c.HasHardware() {
		return v1alpha1.HardwareProfile{}, false
	}
	return s.HardwareByID(*c.HardwareID)
}

// DanglingContainers lists containers whose hardware reference points at a
// profile that no longer exists.
func (s *Store) DanglingContainers() []v1alpha1.Container {
	known := map[string]bool{}
	s.hardware.read(func(cur []v1alpha1.HardwareProfile) {
		for _, h := range cur {
			known[h.ID] = true
		}
	})

	var out []v1alpha1.Container
	for _, c := range s.Containers() {
		if c.HasHardware() && !known[*c.HardwareID] {
			out = append(out, c)
		}
	}
	return out
}
