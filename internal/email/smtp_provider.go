package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the connection settings for the SMTP provider.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// SMTPProvider implements Provider over a plain SMTP dialer.
type SMTPProvider struct {
	cfg SMTPConfig
}

func NewSMTPProvider(cfg SMTPConfig) (*SMTPProvider, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid SMTP port: %d", cfg.Port)
	}
	return &SMTPProvider{cfg: cfg}, nil
}

// Send sends a single HTML email.
func (p *SMTPProvider) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(p.cfg.FromEmail, p.cfg.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(
		p.cfg.Host,
		p.cfg.Port,
		p.cfg.Username,
		p.cfg.Password,
	)

	return d.DialAndSend(m)
}

// SendDeviceReviewed renders and sends the device-reviewed notification.
func (p *SMTPProvider) SendDeviceReviewed(to string, data DeviceReviewedData) error {
	body, err := renderDeviceReviewed(data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	return p.Send(to, deviceReviewedSubject, body)
}
