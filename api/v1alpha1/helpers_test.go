package v1alpha1

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestNewHardwareProfile(t *testing.T) {
	a := NewHardwareProfile("default", "/opt/vmware/BIOS.440.ROM", "/opt/vmware/vmware-vmx")
	b := NewHardwareProfile("default", "/opt/vmware/BIOS.440.ROM", "/opt/vmware/vmware-vmx")

	if a.ID == "" {
		t.Fatal("expected ID to be set")
	}
	if a.ID == b.ID {
		t.Errorf("expected unique IDs, both were %s", a.ID)
	}
	if a.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestNewContainer(t *testing.T) {
	c := NewContainer("web", "/vms/web/web.vmx")

	if c.ID == "" {
		t.Fatal("expected ID to be set")
	}
	if c.HasHardware() {
		t.Error("new container should not reference hardware")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestContainer_Validate(t *testing.T) {
	tests := []struct {
		name    string
		c       Container
		wantErr string
	}{
		{name: "valid", c: Container{ID: "1", Name: "a", VMXPath: "/a.vmx"}},
		{name: "missing id", c: Container{Name: "a", VMXPath: "/a.vmx"}, wantErr: "id is required"},
		{name: "blank name", c: Container{ID: "1", Name: "  ", VMXPath: "/a.vmx"}, wantErr: "name is required"},
		{name: "missing path", c: Container{ID: "1", Name: "a"}, wantErr: "vmx_path is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestHardwareProfile_Validate(t *testing.T) {
	if err := (HardwareProfile{Name: "x"}).Validate(); err == nil {
		t.Error("expected error for missing id")
	}
	if err := (HardwareProfile{ID: "x"}).Validate(); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestCopyContainers_Independent(t *testing.T) {
	orig := []Container{{ID: "1", HardwareID: StringPtr("hw")}}
	dup := CopyContainers(orig)

	*dup[0].HardwareID = "other"
	dup[0].Name = "changed"

	if *orig[0].HardwareID != "hw" {
		t.Errorf("HardwareID shared between copies: %s", *orig[0].HardwareID)
	}
	if orig[0].Name != "" {
		t.Errorf("Name shared between copies: %s", orig[0].Name)
	}
	if CopyContainers(nil) != nil {
		t.Error("CopyContainers(nil) should be nil")
	}
}

func TestSettings_DeepCopy(t *testing.T) {
	s := Settings{VMwareInstallPath: StringPtr("/opt/vmware")}
	dup := s.DeepCopy()
	*dup.VMwareInstallPath = "/elsewhere"

	if StringValue(s.VMwareInstallPath) != "/opt/vmware" {
		t.Errorf("settings copy not independent: %s", StringValue(s.VMwareInstallPath))
	}
	if dup.OriginalVMXTemplatePath != nil {
		t.Error("nil fields should stay nil")
	}
}

func TestContainer_SerializedFieldNames(t *testing.T) {
	c := Container{ID: "1", Name: "web", VMXPath: "/web.vmx", HardwareID: StringPtr("hw-1")}

	jsonData, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	yamlData, err := yaml.Marshal(c)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}

	for _, field := range []string{"id", "name", "vmx_path", "created_at", "hardware_id"} {
		if !strings.Contains(string(jsonData), `"`+field+`"`) {
			t.Errorf("JSON missing field %q: %s", field, jsonData)
		}
		if !strings.Contains(string(yamlData), field+":") {
			t.Errorf("YAML missing field %q: %s", field, yamlData)
		}
	}
}

func TestStringPtr(t *testing.T) {
	if StringPtr("") != nil {
		t.Error("StringPtr(\"\") should be nil")
	}
	if StringValue(StringPtr("x")) != "x" {
		t.Error("StringValue(StringPtr(x)) should be x")
	}
	if StringValue(nil) != "" {
		t.Error("StringValue(nil) should be empty")
	}
}
