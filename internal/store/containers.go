package store

import (
	"github.com/jbweber/hangar/api/v1alpha1"
	"github.com/jbweber/hangar/internal/collection"
)

// ContainerPatch lists the fields UpdateContainer may change. Nil fields are
// left alone.
type ContainerPatch struct {
	Name       *string
	VMXPath    *string
	HardwareID *string
	// ClearHardware removes the hardware reference. It takes precedence
	// over HardwareID.
	ClearHardware bool
}

func (p ContainerPatch) apply(c v1alpha1.Container) v1alpha1.Container {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.VMXPath != nil {
		c.VMXPath = *p.VMXPath
	}
	switch {
	case p.ClearHardware:
		c.HardwareID = nil
	case p.HardwareID != nil:
		id := *p.HardwareID
		c.HardwareID = &id
	}
	return c
}

// AddContainer appends a container and saves the container table. A
// container whose ID already exists replaces the existing entry in place.
func (s *Store) AddContainer(c v1alpha1.Container) *Result {
	return s.MergeContainerBatch([]v1alpha1.Container{c})
}

// RemoveContainer deletes a container and saves the container table. Unknown
// ids are a no-op.
func (s *Store) RemoveContainer(id string) *Result {
	return s.containers.mutate(func(cur []v1alpha1.Container) ([]v1alpha1.Container, bool) {
		if collection.IndexOf(cur, id, v1alpha1.ContainerKey) < 0 {
			return cur, false
		}
		next := make([]v1alpha1.Container, 0, len(cur)-1)
		for _, c := range cur {
			if c.ID != id {
				next = append(next, c)
			}
		}
		return next, true
	})
}

// UpdateContainer patches a container in memory. It does not save; call
// SaveContainers for durability. It returns false when id is unknown.
func (s *Store) UpdateContainer(id string, patch ContainerPatch) bool {
	return s.containers.patch(func(cur []v1alpha1.Container) ([]v1alpha1.Container, bool) {
		i := collection.IndexOf(cur, id, v1alpha1.ContainerKey)
		if i < 0 {
			return cur, false
		}
		next := v1alpha1.CopyContainers(cur)
		next[i] = patch.apply(next[i])
		return next, true
	})
}

// MergeContainerBatch folds batch into the container collection by id and
// saves the result. Known containers keep their position.
func (s *Store) MergeContainerBatch(batch []v1alpha1.Container) *Result {
	batch = v1alpha1.CopyContainers(batch)
	return s.containers.mutate(func(cur []v1alpha1.Container) ([]v1alpha1.Container, bool) {
		return collection.Merge(cur, batch, v1alpha1.ContainerKey), true
	})
}

// SetContainers replaces the container collection and saves it.
func (s *Store) SetContainers(containers []v1alpha1.Container) *Result {
	next := collection.Merge(nil, v1alpha1.CopyContainers(containers), v1alpha1.ContainerKey)
	return s.containers.mutate(func([]v1alpha1.Container) ([]v1alpha1.Container, bool) {
		return next, true
	})
}

// ReorderContainers moves movedID to the position held by targetID and saves
// the new order. Unknown ids, or movedID == targetID, leave the order
// unchanged and issue no save.
func (s *Store) ReorderContainers(movedID, targetID string) *Result {
	return s.containers.mutate(func(cur []v1alpha1.Container) ([]v1alpha1.Container, bool) {
		return collection.Move(cur, movedID, targetID, v1alpha1.ContainerKey)
	})
}

// SaveContainers saves the current container collection.
func (s *Store) SaveContainers() *Result {
	return s.containers.flush()
}

// ContainerByID looks up a container.
func (s *Store) ContainerByID(id string) (v1alpha1.Container, bool) {
	var (
		out   v1alpha1.Container
		found bool
	)
	s.containers.read(func(cur []v1alpha1.Container) {
		if i := collection.IndexOf(cur, id, v1alpha1.ContainerKey); i >= 0 {
			out, found = cur[i].DeepCopy(), true
		}
	})
	return out, found
}
