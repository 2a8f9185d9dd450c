package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDeviceCondition(t *testing.T) {
	for _, valid := range []string{"excellent", "good", "fair", "poor"} {
		parsed, err := ParseDeviceCondition(valid)
		assert.NoError(t, err, valid)
		assert.Equal(t, DeviceCondition(valid), parsed)
	}

	for _, invalid := range []string{"", "GOOD", "mint", "broken"} {
		_, err := ParseDeviceCondition(invalid)
		assert.Error(t, err, invalid)
	}
}

func TestParseDeviceStatus(t *testing.T) {
	for _, valid := range []string{"waiting", "collected", "evaluated", "accepted", "rejected"} {
		parsed, err := ParseDeviceStatus(valid)
		assert.NoError(t, err, valid)
		assert.Equal(t, DeviceStatus(valid), parsed)
	}

	for _, invalid := range []string{"", "Waiting", "done", "pending"} {
		_, err := ParseDeviceStatus(invalid)
		assert.Error(t, err, invalid)
	}
}
