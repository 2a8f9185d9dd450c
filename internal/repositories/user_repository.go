package repositories

import (
	"errors"
	"strings"

	"ecodispose_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepository persists users and their exclusively owned addresses.
type UserRepository interface {
	// FindByID loads a user with address and devices preloaded
	FindByID(db *gorm.DB, id string) (*models.User, error)

	// FindByEmail loads a user with address preloaded
	FindByEmail(db *gorm.DB, email string) (*models.User, error)

	// CreateWithAddress inserts the address first, then the user referencing
	// it, both inside one transaction
	CreateWithAddress(db *gorm.DB, user *models.User, address *models.Address) error

	// Update persists a mutated user and its address
	Update(db *gorm.DB, user *models.User) error

	// ExistsByEmail is a cheap uniqueness pre-check
	ExistsByEmail(db *gorm.DB, email string) (bool, error)
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.Preload("Address").Preload("Devices").
		First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.Preload("Address").
		First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) CreateWithAddress(db *gorm.DB, user *models.User, address *models.Address) error {
	return db.Transaction(func(tx *gorm.DB) error {
		// Address goes in first so the user row can reference its id.
		if err := tx.Create(address).Error; err != nil {
			return err
		}

		user.AddressID = address.ID
		if err := tx.Create(user).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrUserAlreadyExists
			}
			return err
		}
		return nil
	})
}

func (r *userRepository) Update(db *gorm.DB, user *models.User) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user.Address).Error; err != nil {
			return err
		}
		if err := tx.Save(user).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrUserAlreadyExists
			}
			return err
		}
		return nil
	})
}

func (r *userRepository) ExistsByEmail(db *gorm.DB, email string) (bool, error) {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// isUniqueViolation detects a unique-constraint failure without tying the
// repository to a concrete driver error type.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
