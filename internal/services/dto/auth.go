package dto

// RegisterRequest carries the registration form. Fields bind from either
// an HTML form post or a JSON body.
type RegisterRequest struct {
	FirstName string `json:"firstName" form:"firstName" binding:"required" validate:"required,max=30"`
	LastName  string `json:"lastName" form:"lastName" binding:"required" validate:"required,max=30"`
	Email     string `json:"email" form:"email" binding:"required" validate:"required,email"`
	Password  string `json:"password" form:"password" binding:"required" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required" validate:"required"`
	Password string `json:"password" form:"password" binding:"required" validate:"required"`
}

// EditProfileRequest is a partial update: only non-nil fields are applied.
type EditProfileRequest struct {
	FirstName   *string       `json:"firstName"`
	LastName    *string       `json:"lastName"`
	PhoneNumber *string       `json:"phoneNumber"`
	Address     *AddressPatch `json:"address"`
}

type AddressPatch struct {
	Street  *string `json:"street"`
	City    *string `json:"city"`
	Country *string `json:"country"`
	ZipCode *string `json:"zipCode"`
}

type AddressResponse struct {
	ID      string `json:"id"`
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
	ZipCode string `json:"zipCode"`
}

type UserResponse struct {
	ID              string           `json:"id"`
	FirstName       string           `json:"firstName"`
	LastName        string           `json:"lastName"`
	Email           string           `json:"email"`
	PhoneNumber     string           `json:"phoneNumber"`
	IsAdmin         bool             `json:"isAdmin"`
	ProfileImageURL string           `json:"profileImageUrl"`
	Address         AddressResponse  `json:"address"`
	Devices         []DeviceResponse `json:"devices,omitempty"`
}

// LoginResponse returns the serialized user plus the opaque session token.
// The token is also set as an HttpOnly cookie; the body copy exists for
// API clients without a cookie jar.
type LoginResponse struct {
	Message      string       `json:"message"`
	SessionToken string       `json:"sessionToken"`
	User         UserResponse `json:"user"`
}
