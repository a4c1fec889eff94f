// Package mpu6050 provides a driver for the MPU-6050 accelerometer and gyroscope made by
// InvenSense, with a gyro bias calibration and a single-axis angle estimate.
//
// Datasheets:
// https://invensense.tdk.com/wp-content/uploads/2015/02/MPU-6000-Datasheet1.pdf
// https://invensense.tdk.com/wp-content/uploads/2015/02/MPU-6000-Register-Map1.pdf
//
// The driver only ever talks to the chip at its power-on ranges (±2g, ±250°/s). It is not
// safe for concurrent use.
package mpu6050

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"tinygo.org/x/drivers"
)

// ErrNotConnected is returned by callers that probe the bus and find no MPU-6050.
var ErrNotConnected = errors.New("mpu6050: device not found")

// Device wraps an I2C connection to a MPU-6050 device.
type Device struct {
	bus     drivers.I2C
	Address uint16

	axis    Axis
	samples int
	clock   clock.Clock

	// Gyro bias in °/s, subtracted from every rate used for integration.
	offset r3.Vector

	// Integrated angle in degrees, and when it was last advanced.
	theta    r3.Vector
	last     time.Time
	baseline bool

	tx  [2]byte
	buf [motionBurst]byte
}

// Motion is one burst read of every measurement, sampled at the same instant.
type Motion struct {
	Acceleration r3.Vector // g
	Temperature  float64   // °C
	Rotation     r3.Vector // °/s, uncalibrated
}

// New creates a new MPU-6050 connection. The I2C bus must already be configured.
//
// This function only creates the Device object, it does not touch the device. Call
// Configure to wake it up.
func New(bus drivers.I2C) *Device {
	return &Device{
		bus:     bus,
		Address: Address,
		axis:    AxisX,
		samples: DefaultCalibrationSamples,
		clock:   clock.New(),
	}
}

// Configure applies cfg and wakes the device from its power-on sleep by clearing
// PWR_MGMT_1. The gyro needs around 100ms after this before its output is stable.
func (d *Device) Configure(cfg Config) error {
	if cfg.Address != 0 {
		d.Address = cfg.Address
	}
	d.axis = cfg.Axis
	if cfg.CalibrationSamples > 0 {
		d.samples = cfg.CalibrationSamples
	}
	if cfg.Clock != nil {
		d.clock = cfg.Clock
	}
	return d.write(PowerManagement, 0)
}

// Connected returns whether a MPU-6050 has been found.
// It does a "who am I" request and checks the response.
func (d *Device) Connected() bool {
	data := d.buf[:WhoAmI.Len()]
	if err := d.read(WhoAmI, data); err != nil {
		return false
	}
	return WhoAmI.RawValue(data) == WHO_AM_I_RESPONSE
}

// Sleep puts the device back into its low-power sleep mode.
func (d *Device) Sleep() error {
	return d.write(PowerManagement, SLEEP)
}

// ReadAcceleration reads the current acceleration in g.
func (d *Device) ReadAcceleration() (r3.Vector, error) {
	data := d.buf[:Acceleration.Len()]
	if err := d.read(Acceleration, data); err != nil {
		return r3.Vector{}, err
	}
	return Acceleration.Vector(data), nil
}

// ReadRotation reads the current angular rate in °/s, without the calibration offset
// applied.
func (d *Device) ReadRotation() (r3.Vector, error) {
	data := d.buf[:Rotation.Len()]
	if err := d.read(Rotation, data); err != nil {
		return r3.Vector{}, err
	}
	return Rotation.Vector(data), nil
}

// ReadTemperature reads the die temperature in °C.
func (d *Device) ReadTemperature() (float64, error) {
	data := d.buf[:Temperature.Len()]
	if err := d.read(Temperature, data); err != nil {
		return 0, err
	}
	return Temperature.Value(data), nil
}

// ReadMotion reads acceleration, temperature and rotation in a single transaction.
func (d *Device) ReadMotion() (Motion, error) {
	data := d.buf[:motionBurst]
	if err := d.read(Register{Name: "ACCEL_XOUT_H..GYRO_ZOUT_L", Addr: ACCEL_XOUT_H}, data); err != nil {
		return Motion{}, err
	}
	return Motion{
		Acceleration: Acceleration.Vector(data[0:6]),
		Temperature:  Temperature.Value(data[6:8]),
		Rotation:     Rotation.Vector(data[8:14]),
	}, nil
}

// read selects the start register then reads len(data) sequential bytes.
func (d *Device) read(r Register, data []byte) error {
	d.tx[0] = r.Addr
	if err := d.bus.Tx(d.Address, d.tx[:1], data); err != nil {
		return errors.Wrapf(err, "reading %s from 0x%02x", r.Name, d.Address)
	}
	return nil
}

func (d *Device) write(r Register, value uint8) error {
	d.tx[0] = r.Addr
	d.tx[1] = value
	if err := d.bus.Tx(d.Address, d.tx[:2], nil); err != nil {
		return errors.Wrapf(err, "writing %s to 0x%02x", r.Name, d.Address)
	}
	return nil
}
