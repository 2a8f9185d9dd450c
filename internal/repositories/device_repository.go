package repositories

import (
	"errors"

	"ecodispose_backend/internal/models"

	"gorm.io/gorm"
)

var ErrDeviceNotFound = errors.New("device not found")

// DeviceRepository persists submitted devices. Listing order is
// store-native insertion order; nothing stronger is guaranteed.
type DeviceRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Device, error)

	// FindAll returns every device in the store (staff view)
	FindAll(db *gorm.DB) ([]models.Device, error)

	// FindByUserID returns devices owned by one user
	FindByUserID(db *gorm.DB, userID string) ([]models.Device, error)

	Create(db *gorm.DB, device *models.Device) error
	Update(db *gorm.DB, device *models.Device) error
	Delete(db *gorm.DB, id string) error
}

type deviceRepository struct{}

func NewDeviceRepository() DeviceRepository {
	return &deviceRepository{}
}

func (r *deviceRepository) FindByID(db *gorm.DB, id string) (*models.Device, error) {
	var device models.Device
	if err := db.First(&device, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}
	return &device, nil
}

func (r *deviceRepository) FindAll(db *gorm.DB) ([]models.Device, error) {
	var devices []models.Device
	if err := db.Order("created_at").Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

func (r *deviceRepository) FindByUserID(db *gorm.DB, userID string) ([]models.Device, error) {
	var devices []models.Device
	if err := db.Where("user_id = ?", userID).Order("created_at").Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

func (r *deviceRepository) Create(db *gorm.DB, device *models.Device) error {
	return db.Create(device).Error
}

func (r *deviceRepository) Update(db *gorm.DB, device *models.Device) error {
	return db.Save(device).Error
}

func (r *deviceRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Device{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDeviceNotFound
	}
	return nil
}
