package models

import "time"

type User struct {
	BaseModel
	FirstName       string `gorm:"size:30;not null"`
	LastName        string `gorm:"size:30;not null"`
	Email           string `gorm:"uniqueIndex;not null"`
	PasswordHash    string `gorm:"not null"`
	PhoneNumber     string
	IsAdmin         bool `gorm:"not null;default:false"`
	ProfileImageURL string

	// Every user owns exactly one address row, created in the same
	// transaction as the user itself.
	AddressID string  `gorm:"type:uuid;not null"`
	Address   Address `gorm:"foreignKey:AddressID"`

	Devices []Device `gorm:"foreignKey:UserID"`
}

// Address is free-text postal data, exclusively owned by one user.
type Address struct {
	BaseModel
	Street  string `gorm:"size:30"`
	City    string `gorm:"size:30"`
	Country string `gorm:"size:30"`
	ZipCode string `gorm:"size:30"`
}

// Session maps an opaque token to a user. The token travels in a cookie
// (or a bearer header) and is resolved on every protected request.
type Session struct {
	BaseModel
	UserID    string    `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
