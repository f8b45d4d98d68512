package output

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/hangar/api/v1alpha1"
	"github.com/jbweber/hangar/internal/status"
)

func createTestHardware(id, name string) v1alpha1.HardwareProfile {
	return v1alpha1.HardwareProfile{
		ID:        id,
		Name:      name,
		BIOSPath:  "/opt/vmware/BIOS.440.ROM",
		VMXPath:   "/opt/vmware/vmware-vmx",
		CreatedAt: v1alpha1.Time{Time: time.Now().Add(-5 * time.Minute)},
	}
}

func createTestContainer(id, name, hardwareID string) v1alpha1.Container {
	return v1alpha1.Container{
		ID:         id,
		Name:       name,
		VMXPath:    "/vms/" + name + ".vmx",
		CreatedAt:  v1alpha1.Time{Time: time.Now().Add(-2 * time.Hour)},
		HardwareID: v1alpha1.StringPtr(hardwareID),
	}
}

func TestTableFormatter_FormatHardwareList(t *testing.T) {
	f := &TableFormatter{}

	out, err := f.FormatHardwareList([]v1alpha1.HardwareProfile{
		createTestHardware("0123456789abcdef", "base"),
		createTestHardware("default", "fast"),
	})
	if err != nil {
		t.Fatalf("FormatHardwareList() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), out)
	}
	for _, col := range []string{"NAME", "ID", "BIOS", "VMX", "AGE"} {
		if !strings.Contains(lines[0], col) {
			t.Errorf("header missing %q: %s", col, lines[0])
		}
	}
	if !strings.Contains(lines[1], "01234567") || strings.Contains(lines[1], "0123456789") {
		t.Errorf("id not shortened: %s", lines[1])
	}
	if !strings.Contains(lines[1], "5m") {
		t.Errorf("age missing: %s", lines[1])
	}
}

func TestTableFormatter_Empty(t *testing.T) {
	f := &TableFormatter{}

	out, _ := f.FormatHardwareList(nil)
	if out != "No hardware profiles found\n" {
		t.Errorf("hardware empty output = %q", out)
	}
	out, _ = f.FormatContainerList(nil, nil)
	if out != "No containers found\n" {
		t.Errorf("container empty output = %q", out)
	}
	out, _ = f.FormatStatusList(nil)
	if out != "No containers found\n" {
		t.Errorf("status empty output = %q", out)
	}
}

func TestTableFormatter_FormatContainerList(t *testing.T) {
	tests := []struct {
		name         string
		container    v1alpha1.Container
		wantHardware string
	}{
		{
			name:         "resolved profile",
			container:    createTestContainer("c1", "web", "h1"),
			wantHardware: "base",
		},
		{
			name:         "no profile",
			container:    createTestContainer("c2", "db", ""),
			wantHardware: "-",
		},
		{
			name:         "dangling profile",
			container:    createTestContainer("c3", "cache", "deadbeefcafe"),
			wantHardware: "<missing:deadbeef>",
		},
	}

	hardware := []v1alpha1.HardwareProfile{createTestHardware("h1", "base")}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &TableFormatter{NoHeaders: true}
			out, err := f.FormatContainerList([]v1alpha1.Container{tt.container}, hardware)
			if err != nil {
				t.Fatalf("FormatContainerList() error = %v", err)
			}

			fields := strings.Fields(out)
			if len(fields) < 6 {
				t.Fatalf("unexpected row: %q", out)
			}
			if fields[0] != "1" {
				t.Errorf("position = %q, want 1", fields[0])
			}
			if fields[1] != tt.container.Name {
				t.Errorf("name = %q, want %q", fields[1], tt.container.Name)
			}
			if fields[3] != tt.wantHardware {
				t.Errorf("hardware = %q, want %q", fields[3], tt.wantHardware)
			}
		})
	}
}

func TestTableFormatter_ContainerOrderPreserved(t *testing.T) {
	f := &TableFormatter{NoHeaders: true}
	out, err := f.FormatContainerList([]v1alpha1.Container{
		createTestContainer("c2", "second", ""),
		createTestContainer("c1", "first", ""),
	}, nil)
	if err != nil {
		t.Fatalf("FormatContainerList() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if !strings.HasPrefix(lines[0], "1") || !strings.Contains(lines[0], "second") {
		t.Errorf("first row = %q, want position 1 'second'", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2") || !strings.Contains(lines[1], "first") {
		t.Errorf("second row = %q, want position 2 'first'", lines[1])
	}
}

func TestTableFormatter_FormatStatusList(t *testing.T) {
	f := &TableFormatter{}
	out, err := f.FormatStatusList([]status.ContainerStatus{
		{ID: "c1", Name: "web", Domain: "web-01", Phase: status.PhaseRunning},
		{ID: "c2", Name: "db", Phase: status.PhaseStopped},
	})
	if err != nil {
		t.Fatalf("FormatStatusList() error = %v", err)
	}
	for _, want := range []string{"PHASE", "web-01", "Running", "Stopped"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTableFormatter_FormatSettings(t *testing.T) {
	f := &TableFormatter{NoHeaders: true}
	out, err := f.FormatSettings(v1alpha1.Settings{VMwareInstallPath: v1alpha1.StringPtr("/opt/vmware")})
	if err != nil {
		t.Fatalf("FormatSettings() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "/opt/vmware") {
		t.Errorf("install path row = %q", lines[0])
	}
	if !strings.HasSuffix(strings.TrimSpace(lines[1]), "-") {
		t.Errorf("unset value not shown as '-': %q", lines[1])
	}
}

func TestYAMLFormatter_FormatContainerList(t *testing.T) {
	f := &YAMLFormatter{}
	in := []v1alpha1.Container{
		createTestContainer("c1", "web", "h1"),
		createTestContainer("c2", "db", ""),
	}

	out, err := f.FormatContainerList(in, nil)
	if err != nil {
		t.Fatalf("FormatContainerList() error = %v", err)
	}

	var got []v1alpha1.Container
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not a YAML sequence: %v\n%s", err, out)
	}
	if len(got) != 2 || got[0].ID != "c1" || got[1].ID != "c2" {
		t.Errorf("decoded = %+v", got)
	}
	if !strings.Contains(out, "hardware_id: h1") {
		t.Errorf("output missing snake_case hardware_id:\n%s", out)
	}
}

func TestYAMLFormatter_Empty(t *testing.T) {
	f := &YAMLFormatter{}
	out, err := f.FormatHardwareList(nil)
	if err != nil {
		t.Fatalf("FormatHardwareList() error = %v", err)
	}
	if out != "[]\n" {
		t.Errorf("empty output = %q, want []", out)
	}
}

func TestJSONFormatter_FormatHardwareList(t *testing.T) {
	f := &JSONFormatter{}
	out, err := f.FormatHardwareList([]v1alpha1.HardwareProfile{createTestHardware("h1", "base")})
	if err != nil {
		t.Fatalf("FormatHardwareList() error = %v", err)
	}

	var got []map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	for _, key := range []string{"id", "name", "bios_path", "vmx_path", "created_at"} {
		if _, ok := got[0][key]; !ok {
			t.Errorf("missing key %q in %v", key, got[0])
		}
	}
}

func TestJSONFormatter_FormatStatusList(t *testing.T) {
	f := &JSONFormatter{}
	out, err := f.FormatStatusList([]status.ContainerStatus{{ID: "c1", Name: "web", Phase: status.PhaseRunning}})
	if err != nil {
		t.Fatalf("FormatStatusList() error = %v", err)
	}
	if !strings.Contains(out, `"phase": "Running"`) {
		t.Errorf("output = %s", out)
	}

	empty, _ := f.FormatContainerList(nil, nil)
	if empty != "[]\n" {
		t.Errorf("empty output = %q", empty)
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{
			name: "table format",
			opts: Options{Format: FormatTable},
		},
		{
			name: "yaml format",
			opts: Options{Format: FormatYAML},
		},
		{
			name: "json format",
			opts: Options{Format: FormatJSON},
		},
		{
			name:    "invalid format",
			opts:    Options{Format: "invalid"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter, err := NewFormatter(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewFormatter() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && formatter == nil {
				t.Error("NewFormatter() returned nil formatter")
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{format: "table"},
		{format: "yaml"},
		{format: "json"},
		{format: "xml", wantErr: true},
		{format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{"5 seconds", 5 * time.Second, "5s"},
		{"90 seconds", 90 * time.Second, "1m"},
		{"90 minutes", 90 * time.Minute, "1h"},
		{"2 days", 48 * time.Hour, "2d"},
		{"2 weeks", 14 * 24 * time.Hour, "2w"},
		{"60 days", 60 * 24 * time.Hour, "60d"},
		{"400 days", 400 * 24 * time.Hour, "1y"},
		{"negative", -time.Second, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatAge(tt.duration); got != tt.want {
				t.Errorf("formatAge(%v) = %q, want %q", tt.duration, got, tt.want)
			}
		})
	}
}
