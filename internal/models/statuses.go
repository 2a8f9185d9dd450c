package models

import "fmt"

type DeviceCondition string
type DeviceStatus string

const (
	ConditionExcellent DeviceCondition = "excellent"
	ConditionGood      DeviceCondition = "good"
	ConditionFair      DeviceCondition = "fair"
	ConditionPoor      DeviceCondition = "poor"

	StatusWaiting   DeviceStatus = "waiting"
	StatusCollected DeviceStatus = "collected"
	StatusEvaluated DeviceStatus = "evaluated"
	StatusAccepted  DeviceStatus = "accepted"
	StatusRejected  DeviceStatus = "rejected"
)

// ParseDeviceCondition maps a raw string onto the condition enum.
func ParseDeviceCondition(s string) (DeviceCondition, error) {
	switch DeviceCondition(s) {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor:
		return DeviceCondition(s), nil
	}
	return "", fmt.Errorf("invalid device condition: %q", s)
}

// ParseDeviceStatus maps a raw string onto the status enum. No transition
// ordering is enforced here; any authorized caller may set any value.
func ParseDeviceStatus(s string) (DeviceStatus, error) {
	switch DeviceStatus(s) {
	case StatusWaiting, StatusCollected, StatusEvaluated, StatusAccepted, StatusRejected:
		return DeviceStatus(s), nil
	}
	return "", fmt.Errorf("invalid device status: %q", s)
}
