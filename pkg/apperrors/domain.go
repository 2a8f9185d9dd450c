package apperrors

import (
	"net/http"
)

/*
Factories and predefined variables for the business errors of the
device-recycling domain.
*/

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and
// friends) into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the general constraint-violation factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// --- Auth ---

var ErrNotAllowed = New(
	CodeUnauthorized,
	"auth",
	"not allowed",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrReservedEmailDomain = New(
	CodeConflict,
	"auth",
	"invalid email: cannot register with an eco-dispose email",
	http.StatusConflict,
)

var ErrWrongCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"wrong credentials",
	http.StatusUnauthorized,
)

var ErrUserNotFound = New(
	CodeNotFound,
	"auth",
	"user not found",
	http.StatusNotFound,
)

var ErrInvalidUserState = New(
	CodeConflict,
	"auth",
	"invalid user state",
	http.StatusConflict,
)

// --- Devices ---

var ErrDeviceNotFound = New(
	CodeNotFound,
	"devices",
	"Device not found",
	http.StatusNotFound,
)

// Staff review devices, they do not submit them.
var ErrAdminCannotSubmit = New(
	CodeForbidden,
	"devices",
	"Admins cannot add devices",
	http.StatusForbidden,
)

var ErrNotDeviceOwner = New(
	CodeForbidden,
	"devices",
	"Unauthorized",
	http.StatusForbidden,
)

var ErrOnlyOwnerMayDelete = New(
	CodeForbidden,
	"devices",
	"You can only delete your own devices",
	http.StatusForbidden,
)

var ErrInvalidDeviceEnum = New(
	CodeInvalidStatus,
	"devices",
	"Invalid status or condition value",
	http.StatusBadRequest,
)

// --- Uploads ---

var ErrInvalidImageFile = New(
	CodeValidationFailed,
	"validation",
	"Invalid image file",
	http.StatusBadRequest,
)
