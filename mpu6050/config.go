package mpu6050

import (
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// I2C addresses. AD0 tied low selects Address, tied high selects AlternateAddress.
const (
	Address          = 0x68
	AlternateAddress = 0x69
)

// DefaultCalibrationSamples is how many gyro readings Calibrate averages when no count is
// given. At 400 kHz one sample is roughly 0.2 ms of bus time.
const DefaultCalibrationSamples = 1000

// Axis selects which gyro axis Theta integrates.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Of returns the component of v along the axis.
func (a Axis) Of(v r3.Vector) float64 {
	switch a {
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	default:
		return v.X
	}
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "unknown"
}

// ParseAxis accepts "x", "y" or "z", in either case.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(s) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, errors.Errorf("unknown axis %q, want x, y or z", s)
}

// Config holds the application choices for a Device. Zero fields keep their defaults.
type Config struct {
	// Address is the 7-bit I2C address, Address when zero.
	Address uint16

	// Axis is the gyro axis Theta integrates.
	Axis Axis

	// CalibrationSamples is the count Calibrate uses when called with zero.
	CalibrationSamples int

	// Clock supplies the timestamps used to integrate the angle. The wall clock when nil.
	Clock clock.Clock
}
