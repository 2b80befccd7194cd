package gpu

// MockProvider provides fake GPU inventory for testing.
type MockProvider struct {
	Inventory []Device
	InitErr   error
	CountErr  error
}

func (p *MockProvider) Init() error {
	return p.InitErr
}

func (p *MockProvider) Shutdown() error {
	return nil
}

func (p *MockProvider) DeviceCount() (int, error) {
	if p.CountErr != nil {
		return 0, p.CountErr
	}
	return len(p.Inventory), nil
}

func (p *MockProvider) Devices() ([]Device, error) {
	return p.Inventory, nil
}

// Compile-time interface check
var _ Provider = (*MockProvider)(nil)
