//go:build !nonvml

package gpu

import (
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// NVMLProvider enumerates GPUs through the NVIDIA management library.
type NVMLProvider struct{}

func NewNVMLProvider() *NVMLProvider {
	return &NVMLProvider{}
}

func (p *NVMLProvider) Init() error {
	ret := nvml.Init()
	if ret != nvml.SUCCESS {
		return fmt.Errorf("NVML init failed: %v", nvml.ErrorString(ret))
	}
	return nil
}

func (p *NVMLProvider) Shutdown() error {
	ret := nvml.Shutdown()
	if ret != nvml.SUCCESS {
		return fmt.Errorf("NVML shutdown failed: %v", nvml.ErrorString(ret))
	}
	return nil
}

func (p *NVMLProvider) DeviceCount() (int, error) {
	count, ret := nvml.DeviceGetCount()
	if ret != nvml.SUCCESS {
		return 0, fmt.Errorf("failed to get device count: %v", nvml.ErrorString(ret))
	}
	return count, nil
}

func (p *NVMLProvider) Devices() ([]Device, error) {
	count, err := p.DeviceCount()
	if err != nil {
		return nil, err
	}

	devices := make([]Device, 0, count)
	for i := 0; i < count; i++ {
		handle, ret := nvml.DeviceGetHandleByIndex(i)
		if ret != nvml.SUCCESS {
			continue // Skip failed device
		}

		uuid, _ := handle.GetUUID()
		name, _ := handle.GetName()
		memInfo, _ := handle.GetMemoryInfo()
		driver, _ := nvml.SystemGetDriverVersion()

		devices = append(devices, Device{
			Index:         i,
			UUID:          uuid,
			Name:          name,
			MemoryTotalMB: memInfo.Total / (1024 * 1024),
			DriverVersion: driver,
		})
	}
	return devices, nil
}

// Compile-time interface check
var _ Provider = (*NVMLProvider)(nil)
