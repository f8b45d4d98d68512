package output

import (
	"encoding/json"
	"fmt"

	"github.com/jbweber/hangar/api/v1alpha1"
	"github.com/jbweber/hangar/internal/status"
)

// JSONFormatter formats resources as JSON.
type JSONFormatter struct{}

func marshalJSON(v any, what string) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s to JSON: %w", what, err)
	}
	return string(data) + "\n", nil
}

// FormatHardwareList formats hardware profiles as a JSON array.
func (f *JSONFormatter) FormatHardwareList(hardware []v1alpha1.HardwareProfile) (string, error) {
	if len(hardware) == 0 {
		return "[]\n", nil
	}
	return marshalJSON(hardware, "hardware")
}

// FormatContainerList formats containers as a JSON array in display order.
func (f *JSONFormatter) FormatContainerList(containers []v1alpha1.Container, _ []v1alpha1.HardwareProfile) (string, error) {
	if len(containers) == 0 {
		return "[]\n", nil
	}
	return marshalJSON(containers, "containers")
}

// FormatStatusList formats container phases as a JSON array.
func (f *JSONFormatter) FormatStatusList(statuses []status.ContainerStatus) (string, error) {
	if len(statuses) == 0 {
		return "[]\n", nil
	}
	return marshalJSON(statuses, "statuses")
}

// FormatSettings formats the settings as a JSON object.
func (f *JSONFormatter) FormatSettings(settings v1alpha1.Settings) (string, error) {
	return marshalJSON(settings, "settings")
}
