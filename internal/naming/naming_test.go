package naming

import (
	"testing"

	"github.com/google/uuid"
)

func TestContainerNameFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/vms/web-01/web-01.vmx", want: "web-01"},
		{path: "/vms/db.xml", want: "db"},
		{path: "relative/name.with.dots.vmx", want: "name.with.dots"},
		{path: "/vms/noext", want: "noext"},
		{path: "/vms/trailing/", want: "trailing"},
		{path: "  ", want: UnknownName},
		{path: "", want: UnknownName},
		{path: "/", want: UnknownName},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ContainerNameFromPath(tt.path); got != tt.want {
				t.Errorf("ContainerNameFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestContainerIDFromPath(t *testing.T) {
	a := ContainerIDFromPath("/vms/web-01.vmx")
	b := ContainerIDFromPath("/vms/./web-01.vmx")
	c := ContainerIDFromPath("/vms/web-02.vmx")

	if a != b {
		t.Errorf("equivalent paths gave different ids: %s vs %s", a, b)
	}
	if a == c {
		t.Errorf("different paths gave the same id: %s", a)
	}
	id, err := uuid.Parse(a)
	if err != nil {
		t.Fatalf("id %q is not a UUID: %v", a, err)
	}
	if id.Version() != 5 {
		t.Errorf("id version = %d, want 5", id.Version())
	}
}

func TestHardwareIDFromPaths(t *testing.T) {
	a := HardwareIDFromPaths("/opt/vmware/BIOS.440.ROM", "/opt/vmware/vmware-vmx")
	b := HardwareIDFromPaths("/opt/vmware/BIOS.440.ROM", "/opt/vmware/vmware-vmx")
	swapped := HardwareIDFromPaths("/opt/vmware/vmware-vmx", "/opt/vmware/BIOS.440.ROM")

	if a != b {
		t.Errorf("same paths gave different ids")
	}
	if a == swapped {
		t.Errorf("swapped paths gave the same id")
	}
	if a == ContainerIDFromPath("/opt/vmware/BIOS.440.ROM") {
		t.Errorf("hardware and container ids collide")
	}
}
