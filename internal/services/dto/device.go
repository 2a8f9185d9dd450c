package dto

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Price is a float64 that also unmarshals from a JSON string, since
// review clients send either form.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid price value %q", s)
	}
	*p = Price(f)
	return nil
}

// AddDeviceRequest is parsed from the "device" JSON field of the
// multipart submission form. The image file travels separately.
type AddDeviceRequest struct {
	Name            string `json:"name" validate:"required,max=30"`
	Type            string `json:"type" validate:"required,max=30"`
	Defects         string `json:"defects" validate:"required,max=80"`
	UserDescription string `json:"userDescription" validate:"required"`
}

// UpdateDeviceRequest is a partial update; every field is independently
// optional. Condition and status must parse to their enums.
type UpdateDeviceRequest struct {
	Condition      *string `json:"condition"`
	Status         *string `json:"status"`
	EstimatedPrice *Price  `json:"estimatedPrice"`
	AdminNotes     *string `json:"adminNotes"`
}

type DeviceResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Condition       *string   `json:"condition"`
	Status          string    `json:"status"`
	EstimatedPrice  float64   `json:"estimatedPrice"`
	AdminNotes      string    `json:"adminNotes"`
	UserDescription string    `json:"userDescription"`
	Type            string    `json:"type"`
	Defects         string    `json:"defects"`
	ImageURL        string    `json:"imageUrl"`
	UploadDate      time.Time `json:"uploadDate"`
	UserID          *string   `json:"userId"`
}
