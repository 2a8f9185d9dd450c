package dto

import (
	"ecodispose_backend/internal/models"
)

func NewAddressResponse(a *models.Address) AddressResponse {
	return AddressResponse{
		ID:      a.ID,
		Street:  a.Street,
		City:    a.City,
		Country: a.Country,
		ZipCode: a.ZipCode,
	}
}

// NewUserResponse serializes a user with its nested address. Devices are
// included only when preloaded and requested.
func NewUserResponse(u *models.User, withDevices bool) UserResponse {
	resp := UserResponse{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		PhoneNumber:     u.PhoneNumber,
		IsAdmin:         u.IsAdmin,
		ProfileImageURL: u.ProfileImageURL,
		Address:         NewAddressResponse(&u.Address),
	}
	if withDevices {
		resp.Devices = NewDeviceResponses(u.Devices)
	}
	return resp
}

func NewDeviceResponse(d *models.Device) DeviceResponse {
	var condition *string
	if d.Condition != "" {
		c := string(d.Condition)
		condition = &c
	}
	return DeviceResponse{
		ID:              d.ID,
		Name:            d.Name,
		Condition:       condition,
		Status:          string(d.Status),
		EstimatedPrice:  d.EstimatedPrice,
		AdminNotes:      d.AdminNotes,
		UserDescription: d.UserDescription,
		Type:            d.Type,
		Defects:         d.Defects,
		ImageURL:        d.ImageURL,
		UploadDate:      d.UploadDate,
		UserID:          d.UserID,
	}
}

func NewDeviceResponses(devices []models.Device) []DeviceResponse {
	out := make([]DeviceResponse, 0, len(devices))
	for i := range devices {
		out = append(out, NewDeviceResponse(&devices[i]))
	}
	return out
}
