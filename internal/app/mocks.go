package app

import (
	"ecodispose_backend/internal/email"
	"ecodispose_backend/internal/logger"
)

// MockEmailProvider logs outgoing mail instead of sending it. Used when
// email is disabled in config and in tests.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(to, subject, htmlBody string) error {
	logger.Info("Mock email send", "to", to, "subject", subject)
	return nil
}

func (m *MockEmailProvider) SendDeviceReviewed(to string, data email.DeviceReviewedData) error {
	logger.Info("Mock device-reviewed email",
		"to", to,
		"device", data.DeviceName,
		"status", data.Status,
	)
	return nil
}
