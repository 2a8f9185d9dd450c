package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,max=5"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	err := v.Validate(&sampleForm{Email: "a@b.com", Name: "Bob"})
	assert.NoError(t, err)
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Validate(&sampleForm{Email: "not-an-email", Name: ""})
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T", err)

	assert.Equal(t, "Must be a valid email address", verr.Errors["email"])
	assert.Equal(t, "This field is required", verr.Errors["name"])
	assert.Contains(t, verr.Error(), "Validation failed")
}

func TestValidate_MaxMessage(t *testing.T) {
	v := New()
	err := v.Validate(&sampleForm{Email: "a@b.com", Name: "far too long"})
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "Must be at most 5", verr.Errors["name"])
}
