package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDeviceReviewed(t *testing.T) {
	html, err := renderDeviceReviewed(DeviceReviewedData{
		FirstName:      "Alice",
		DeviceName:     "iPhone 8",
		Status:         "accepted",
		EstimatedPrice: 129.99,
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Hi Alice")
	assert.Contains(t, html, "iPhone 8")
	assert.Contains(t, html, "accepted")
	assert.Contains(t, html, "129.99")
}

func TestRenderDeviceReviewed_NoPriceForRejection(t *testing.T) {
	html, err := renderDeviceReviewed(DeviceReviewedData{
		FirstName:  "Bob",
		DeviceName: "Old Router",
		Status:     "rejected",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "rejected")
	assert.NotContains(t, html, "Estimated price")
}
