package models

import "time"

type Device struct {
	BaseModel
	Name string `gorm:"size:30;not null"`
	Type string `gorm:"size:30;not null"`

	Condition DeviceCondition `gorm:"type:varchar(20)"`
	Status    DeviceStatus    `gorm:"type:varchar(20);not null;default:'waiting'"`

	Defects         string  `gorm:"size:80;not null"`
	UserDescription string  `gorm:"size:10000;not null"`
	EstimatedPrice  float64 `gorm:"not null;default:0"`
	AdminNotes      string  `gorm:"size:10000;not null;default:''"`

	ImageURL   string    `gorm:"size:80;not null"`
	UploadDate time.Time `gorm:"not null"`

	// Nullable so the row survives a user purge.
	UserID *string `gorm:"type:uuid;index"`
}
