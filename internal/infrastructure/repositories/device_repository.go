package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/EpicVN/ecommerce-auth/domain"
)

// DeviceRepositoryImpl implements domain.DeviceRepository using GORM
type DeviceRepositoryImpl struct {
	db *gorm.DB
}

// DBDevice represents the database model for Device
type DBDevice struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"index"`
	UserAgent  string `gorm:"size:512"`
	IP         string `gorm:"size:64"`
	LastActive time.Time
	CreatedAt  time.Time
	IsActive   bool `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBDevice) TableName() string {
	return "devices"
}

// NewDeviceRepository creates a new device repository
func NewDeviceRepository(db *gorm.DB) domain.DeviceRepository {
	return &DeviceRepositoryImpl{db: db}
}

// Create implements domain.DeviceRepository
func (r *DeviceRepositoryImpl) Create(ctx context.Context, device *domain.Device) error {
	dbDevice := &DBDevice{
		UserID:     device.UserID,
		UserAgent:  device.UserAgent,
		IP:         device.IP,
		LastActive: time.Now(),
		IsActive:   true,
	}
	if err := r.db.WithContext(ctx).Create(dbDevice).Error; err != nil {
		return err
	}
	device.ID = dbDevice.ID
	device.LastActive = dbDevice.LastActive
	device.CreatedAt = dbDevice.CreatedAt
	device.IsActive = dbDevice.IsActive
	return nil
}

// Update implements domain.DeviceRepository
func (r *DeviceRepositoryImpl) Update(ctx context.Context, deviceID uint, update domain.DeviceUpdate) error {
	fields := map[string]interface{}{}
	if update.UserAgent != nil {
		fields["user_agent"] = *update.UserAgent
	}
	if update.IP != nil {
		fields["ip"] = *update.IP
	}
	if update.IsActive != nil {
		fields["is_active"] = *update.IsActive
	}
	if update.LastActive != nil {
		fields["last_active"] = *update.LastActive
	}
	if len(fields) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).Model(&DBDevice{}).Where("id = ?", deviceID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrDeviceNotFound
	}
	return nil
}
