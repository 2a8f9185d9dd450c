package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_WrapAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	appErr := Wrap(cause, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)

	assert.ErrorIs(t, appErr, cause)
	assert.Contains(t, appErr.Error(), "connection refused")
	assert.Contains(t, appErr.Error(), "system")
}

func TestAppError_MarshalHidesInternals(t *testing.T) {
	appErr := Wrap(errors.New("secret cause"), CodeNotFound, "resource", "Device not found", http.StatusNotFound)

	raw, err := json.Marshal(ErrorResponse{Error: appErr})
	require.NoError(t, err)

	body := string(raw)
	assert.Contains(t, body, "Device not found")
	assert.NotContains(t, body, "secret cause")
	assert.NotContains(t, body, "404")
}

func TestAsAppError(t *testing.T) {
	appErr := NewForbiddenError("Unauthorized")
	wrapped := fmt.Errorf("handler: %w", appErr)

	got, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, got.HTTPCode)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestDomainErrors_StatusCodes(t *testing.T) {
	cases := []struct {
		err      *AppError
		httpCode int
	}{
		{ErrEmailAlreadyExists, http.StatusConflict},
		{ErrReservedEmailDomain, http.StatusConflict},
		{ErrWrongCredentials, http.StatusUnauthorized},
		{ErrUserNotFound, http.StatusNotFound},
		{ErrDeviceNotFound, http.StatusNotFound},
		{ErrAdminCannotSubmit, http.StatusForbidden},
		{ErrNotDeviceOwner, http.StatusForbidden},
		{ErrOnlyOwnerMayDelete, http.StatusForbidden},
		{ErrInvalidDeviceEnum, http.StatusBadRequest},
		{ErrNotAllowed, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.httpCode, tc.err.HTTPCode, tc.err.Message)
	}
}
