// Package v1alpha1 contains the persisted resource types managed by hangar:
// hardware profiles, containers (managed VM definitions) and the settings
// singleton.
//
// Field tags are snake_case for both JSON and YAML so that tables written by
// hangar stay readable by the older hardware_config.json and
// container_config.json consumers.
package v1alpha1

import (
	"encoding/json"
	"time"

	"gopkg.in/yaml.v3"
)

// Time is a wrapper around time.Time for RFC3339 JSON/YAML serialization.
// Sub-second precision is kept so that a value survives a save/load cycle
// unchanged.
type Time struct {
	time.Time `json:"-" yaml:"-"`
}

// Now returns the current time without its monotonic clock reading.
func Now() Time {
	return Time{Time: time.Now().Round(0)}
}

// Equal reports whether t and u represent the same instant.
func (t Time) Equal(u Time) bool {
	return t.Time.Equal(u.Time)
}

// MarshalJSON implements the json.Marshaler interface.
// Returns RFC3339 formatted timestamp or null for zero values.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *Time) UnmarshalJSON(b []byte) error {
	if string(b) == "null" || string(b) == `""` {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface.
func (t Time) MarshalYAML() (interface{}, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Time.Format(time.RFC3339Nano), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (t *Time) UnmarshalYAML(node *yaml.Node) error {
	if node.Value == "" || node.Value == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, node.Value)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
