package status

import (
	"github.com/jbweber/hangar/api/v1alpha1"
)

// Phase is the observed state of a container's VM.
type Phase string

const (
	PhaseRunning Phase = "Running"
	PhaseStopped Phase = "Stopped"
	// PhaseUnknown is reported before the first successful poll.
	PhaseUnknown Phase = "Unknown"
)

// ContainerStatus pairs a container with its observed phase.
type ContainerStatus struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Domain string `json:"domain" yaml:"domain"`
	Phase  Phase  `json:"phase" yaml:"phase"`
}

// NameFunc maps a container to the domain name the VM layer reports.
type NameFunc func(v1alpha1.Container) string

// Compute returns one status per container. A container is running when
// its domain name appears in running.
func Compute(containers []v1alpha1.Container, running []string, nameOf NameFunc) []ContainerStatus {
	active := make(map[string]bool, len(running))
	for _, name := range running {
		active[name] = true
	}

	out := make([]ContainerStatus, 0, len(containers))
	for _, c := range containers {
		domain := nameOf(c)
		phase := PhaseStopped
		if active[domain] {
			phase = PhaseRunning
		}
		out = append(out, ContainerStatus{
			ID:     c.ID,
			Name:   c.Name,
			Domain: domain,
			Phase:  phase,
		})
	}
	return out
}

// Unknown returns a status per container with PhaseUnknown.
func Unknown(containers []v1alpha1.Container, nameOf NameFunc) []ContainerStatus {
	out := Compute(containers, nil, nameOf)
	for i := range out {
		out[i].Phase = PhaseUnknown
	}
	return out
}

// IsRunning returns true if the phase is Running.
func IsRunning(phase Phase) bool {
	return phase == PhaseRunning
}

// CountRunning returns how many statuses are Running.
func CountRunning(statuses []ContainerStatus) int {
	n := 0
	for _, s := range statuses {
		if IsRunning(s.Phase) {
			n++
		}
	}
	return n
}
