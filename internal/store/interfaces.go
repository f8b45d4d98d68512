package store

import (
	"context"

	"github.com/jbweber/hangar/api/v1alpha1"
)

// Gateway is the persistence contract the store consumes. Each method is a
// full-table request/response call.
//
// In production, this is satisfied by *gateway.FileGateway.
// In tests, this is satisfied by mock implementations.
type Gateway interface {
	// SaveHardware overwrites the hardware table
	SaveHardware(ctx context.Context, hardware []v1alpha1.HardwareProfile) error

	// LoadHardware reads the hardware table
	LoadHardware(ctx context.Context) ([]v1alpha1.HardwareProfile, error)

	// SaveContainers overwrites the container table, preserving order
	SaveContainers(ctx context.Context, containers []v1alpha1.Container) error

	// LoadContainers reads the container table in stored order
	LoadContainers(ctx context.Context) ([]v1alpha1.Container, error)

	// SaveSettings overwrites the settings singleton
	SaveSettings(ctx context.Context, settings v1alpha1.Settings) error

	// LoadSettings reads the settings singleton
	LoadSettings(ctx context.Context) (v1alpha1.Settings, error)
}
