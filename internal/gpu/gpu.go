// Package gpu abstracts GPU inventory lookup so the harness can gate a
// burn on the number of devices actually visible to the driver.
package gpu

// Device holds the static identity of one GPU.
type Device struct {
	Index         int    `json:"index"`
	UUID          string `json:"uuid"`
	Name          string `json:"name"`
	MemoryTotalMB uint64 `json:"memory_total_mb"`
	DriverVersion string `json:"driver_version"`
}

// Provider abstracts GPU enumeration (NVML or mock).
type Provider interface {
	// Init initializes the provider.
	Init() error
	// Shutdown cleanly shuts down the provider.
	Shutdown() error
	// DeviceCount returns the number of GPUs.
	DeviceCount() (int, error)
	// Devices returns static identity for all GPUs.
	Devices() ([]Device, error)
}
