// Package output provides formatters for displaying hangar resources
// in various formats (table, YAML, JSON).
package output

import (
	"fmt"

	"github.com/jbweber/hangar/api/v1alpha1"
	"github.com/jbweber/hangar/internal/status"
)

// Format represents an output format type.
type Format string

const (
	// FormatTable is a human-readable table format.
	FormatTable Format = "table"
	// FormatYAML is a YAML format, readable back by the import commands.
	FormatYAML Format = "yaml"
	// FormatJSON is a JSON format for machine consumption.
	FormatJSON Format = "json"
)

// Formatter formats hangar resources for output.
type Formatter interface {
	// FormatHardwareList formats hardware profiles.
	FormatHardwareList(hardware []v1alpha1.HardwareProfile) (string, error)

	// FormatContainerList formats containers in display order. hardware is
	// used to resolve profile references for display.
	FormatContainerList(containers []v1alpha1.Container, hardware []v1alpha1.HardwareProfile) (string, error)

	// FormatStatusList formats observed container phases.
	FormatStatusList(statuses []status.ContainerStatus) (string, error)

	// FormatSettings formats the settings singleton.
	FormatSettings(settings v1alpha1.Settings) (string, error)
}

// Options contains options for formatting output.
type Options struct {
	// Format specifies the output format.
	Format Format
	// NoHeaders omits headers in table format.
	NoHeaders bool
}

// NewFormatter creates a new Formatter based on the specified format.
func NewFormatter(opts Options) (Formatter, error) {
	switch opts.Format {
	case FormatTable:
		return &TableFormatter{NoHeaders: opts.NoHeaders}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (supported: table, yaml, json)", opts.Format)
	}
}

// ValidateFormat checks if a format string is valid.
func ValidateFormat(format string) error {
	f := Format(format)
	switch f {
	case FormatTable, FormatYAML, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid formats: table, yaml, json)", format)
	}
}
