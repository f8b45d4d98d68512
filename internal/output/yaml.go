package output

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/hangar/api/v1alpha1"
	"github.com/jbweber/hangar/internal/status"
)

// YAMLFormatter formats resources as YAML. Lists are emitted as a single
// sequence, the same shape the import commands read.
type YAMLFormatter struct{}

func marshalYAML(v any, what string) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s to YAML: %w", what, err)
	}
	return string(data), nil
}

// FormatHardwareList formats hardware profiles as a YAML sequence.
func (f *YAMLFormatter) FormatHardwareList(hardware []v1alpha1.HardwareProfile) (string, error) {
	if len(hardware) == 0 {
		return "[]\n", nil
	}
	return marshalYAML(hardware, "hardware")
}

// FormatContainerList formats containers as a YAML sequence in display order.
func (f *YAMLFormatter) FormatContainerList(containers []v1alpha1.Container, _ []v1alpha1.HardwareProfile) (string, error) {
	if len(containers) == 0 {
		return "[]\n", nil
	}
	return marshalYAML(containers, "containers")
}

// FormatStatusList formats container phases as a YAML sequence.
func (f *YAMLFormatter) FormatStatusList(statuses []status.ContainerStatus) (string, error) {
	if len(statuses) == 0 {
		return "[]\n", nil
	}
	return marshalYAML(statuses, "statuses")
}

// FormatSettings formats the settings as a YAML mapping.
func (f *YAMLFormatter) FormatSettings(settings v1alpha1.Settings) (string, error) {
	return marshalYAML(settings, "settings")
}
