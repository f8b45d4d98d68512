package vmctl

import (
	"fmt"
	"strings"
)

// Operation is a lifecycle action applied to a VM.
type Operation string

const (
	OpStart Operation = "start"
	OpStop  Operation = "stop"
	OpPause Operation = "pause"
	OpReset Operation = "reset"
)

// Operations lists every supported operation.
var Operations = []Operation{OpStart, OpStop, OpPause, OpReset}

// ParseOperation converts a user-supplied name to an Operation.
func ParseOperation(s string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Operations {
		if op == known {
			return op, nil
		}
	}
	return "", fmt.Errorf("unsupported operation %q", s)
}

// Domain states (from libvirt VIR_DOMAIN_* constants)
const (
	domainStateRunning = 1
	domainStatePaused  = 3
)

func stateToString(state int32) string {
	switch state {
	case 0:
		return "no state"
	case 1:
		return "running"
	case 2:
		return "blocked"
	case 3:
		return "paused"
	case 4:
		return "shutdown"
	case 5:
		return "shutoff"
	case 6:
		return "crashed"
	case 7:
		return "pmsuspended"
	default:
		return fmt.Sprintf("unknown(%d)", state)
	}
}
