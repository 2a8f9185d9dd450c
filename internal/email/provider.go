package email

// Provider defines the interface for outgoing mail.
type Provider interface {
	// Send sends a simple HTML email
	Send(to, subject, htmlBody string) error

	// SendDeviceReviewed notifies a device owner about a staff decision
	SendDeviceReviewed(to string, data DeviceReviewedData) error
}

// DeviceReviewedData feeds the device-reviewed template.
type DeviceReviewedData struct {
	FirstName      string
	DeviceName     string
	Status         string
	EstimatedPrice float64
}
