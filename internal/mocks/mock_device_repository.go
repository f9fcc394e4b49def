package mocks

import (
	"context"

	"github.com/EpicVN/ecommerce-auth/domain"
)

// MockDeviceRepository implements domain.DeviceRepository for testing
type MockDeviceRepository struct {
	CreateFunc func(ctx context.Context, device *domain.Device) error
	UpdateFunc func(ctx context.Context, deviceID uint, update domain.DeviceUpdate) error
}

var _ domain.DeviceRepository = (*MockDeviceRepository)(nil)

func NewMockDeviceRepository() *MockDeviceRepository {
	return &MockDeviceRepository{}
}

func (m *MockDeviceRepository) Create(ctx context.Context, device *domain.Device) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, device)
	}
	device.ID = 1
	return nil
}

func (m *MockDeviceRepository) Update(ctx context.Context, deviceID uint, update domain.DeviceUpdate) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, deviceID, update)
	}
	return nil
}
