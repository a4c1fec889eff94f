package mpu6050

import (
	"math"

	"github.com/golang/geo/r3"
	"golang.org/x/exp/constraints"
)

// Register addresses, from the MPU-6000/MPU-6050 register map (RM-MPU-6000A-00 rev 4.2).
const (
	ACCEL_XOUT_H = 0x3B
	TEMP_OUT_H   = 0x41
	GYRO_XOUT_H  = 0x43
	PWR_MGMT_1   = 0x6B
	WHO_AM_I     = 0x75

	// PWR_MGMT_1 bits
	SLEEP = 1 << 6

	// WHO_AM_I reports the AD0-low address whatever AD0 is wired to.
	WHO_AM_I_RESPONSE = 0x68
)

// Full-scale sensitivities at the power-on ranges (AFS_SEL = 0, FS_SEL = 0).
const (
	ACCEL_SCALE = 16384.0 // LSB/g, ±2g
	GYRO_SCALE  = 131.0   // LSB/(°/s), ±250°/s
	TEMP_SCALE  = 340.0   // LSB/°C
	TEMP_OFFSET = 36.53   // °C at raw 0
)

// Register describes one readout in the register map: where it starts, how wide each value
// is, whether it is two's complement, and how a raw value maps to physical units.
//
// A register with a zero Sensitivity is a control register and Value returns the raw value.
type Register struct {
	Name        string
	Addr        uint8
	Width       int // bytes per value
	Axes        int // consecutive values, 1 for scalars
	Signed      bool
	Sensitivity float64 // LSB per unit
	Offset      float64 // added after scaling
}

// The register table.
var (
	PowerManagement = Register{Name: "PWR_MGMT_1", Addr: PWR_MGMT_1, Width: 1, Axes: 1}
	WhoAmI          = Register{Name: "WHO_AM_I", Addr: WHO_AM_I, Width: 1, Axes: 1}
	Acceleration    = Register{Name: "ACCEL_XOUT_H", Addr: ACCEL_XOUT_H, Width: 2, Axes: 3, Signed: true, Sensitivity: ACCEL_SCALE}
	Temperature     = Register{Name: "TEMP_OUT_H", Addr: TEMP_OUT_H, Width: 2, Axes: 1, Signed: true, Sensitivity: TEMP_SCALE, Offset: TEMP_OFFSET}
	Rotation        = Register{Name: "GYRO_XOUT_H", Addr: GYRO_XOUT_H, Width: 2, Axes: 3, Signed: true, Sensitivity: GYRO_SCALE}
)

// motionBurst is ACCEL_XOUT_H through GYRO_ZOUT_L in one read.
const motionBurst = 14

// Len returns the number of bytes to read for the whole register.
func (r Register) Len() int {
	return r.Width * r.Axes
}

// RawValue decodes the first value in buf as a big-endian integer.
func (r Register) RawValue(buf []byte) int64 {
	switch {
	case r.Width == 1 && r.Signed:
		return int64(bigEndian[int8](buf[:1]))
	case r.Width == 1:
		return int64(bigEndian[uint8](buf[:1]))
	case r.Signed:
		return int64(bigEndian[int16](buf[:2]))
	default:
		return int64(bigEndian[uint16](buf[:2]))
	}
}

// Value decodes the first value in buf and converts it to physical units.
func (r Register) Value(buf []byte) float64 {
	raw := float64(r.RawValue(buf))
	if r.Sensitivity == 0 {
		return raw
	}
	return raw/r.Sensitivity + r.Offset
}

// Vector decodes three consecutive values (X, Y, Z) from buf.
func (r Register) Vector(buf []byte) r3.Vector {
	w := r.Width
	return r3.Vector{
		X: r.Value(buf[0:w]),
		Y: r.Value(buf[w : 2*w]),
		Z: r.Value(buf[2*w : 3*w]),
	}
}

// Raw converts a physical value back to the nearest raw register value.
func (r Register) Raw(v float64) int64 {
	if r.Sensitivity == 0 {
		return int64(math.Round(v))
	}
	return int64(math.Round((v - r.Offset) * r.Sensitivity))
}

func bigEndian[T constraints.Integer](buf []byte) T {
	var v T
	for _, b := range buf {
		v = v<<8 | T(b)
	}
	return v
}
