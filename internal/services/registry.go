package services

import (
	"ecodispose_backend/internal/email"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService   AuthService
	DeviceService DeviceService
	EmailService  email.Provider
}
