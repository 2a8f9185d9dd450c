package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice_UnmarshalNumberAndString(t *testing.T) {
	var req UpdateDeviceRequest
	err := json.Unmarshal([]byte(`{"estimatedPrice": 129.99}`), &req)
	require.NoError(t, err)
	require.NotNil(t, req.EstimatedPrice)
	assert.Equal(t, Price(129.99), *req.EstimatedPrice)

	req = UpdateDeviceRequest{}
	err = json.Unmarshal([]byte(`{"estimatedPrice": "59.90"}`), &req)
	require.NoError(t, err)
	require.NotNil(t, req.EstimatedPrice)
	assert.Equal(t, Price(59.90), *req.EstimatedPrice)
}

func TestPrice_UnmarshalInvalid(t *testing.T) {
	var req UpdateDeviceRequest
	err := json.Unmarshal([]byte(`{"estimatedPrice": "a lot"}`), &req)
	assert.Error(t, err)
}
