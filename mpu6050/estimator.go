package mpu6050

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Calibrate measures the gyro bias by averaging samples readings and stores it as the
// offset subtracted from every later rate. A count of zero or less uses the configured
// CalibrationSamples.
//
// The device must be stationary and nothing checks that it is. Calibrate blocks for the
// whole run; pick samples to fit the caller's loop budget. On a bus error the previous
// offset is kept.
//
// The angle keeps its value, but the time it is integrated from restarts at the end of the
// calibration, so the run itself is never integrated.
func (d *Device) Calibrate(samples int) error {
	if samples <= 0 {
		samples = d.samples
	}

	var sum r3.Vector
	for i := 0; i < samples; i++ {
		rate, err := d.ReadRotation()
		if err != nil {
			return errors.Wrapf(err, "calibrating gyro, sample %d of %d", i+1, samples)
		}
		sum = sum.Add(rate)
	}

	n := float64(samples)
	d.offset = r3.Vector{X: sum.X / n, Y: sum.Y / n, Z: sum.Z / n}
	d.rebase()
	return nil
}

// GyroOffset returns the bias currently subtracted from gyro readings, in °/s.
func (d *Device) GyroOffset() r3.Vector {
	return d.offset
}

// SetGyroOffset replaces the gyro bias without sampling, for example with one saved from
// an earlier Calibrate.
func (d *Device) SetGyroOffset(offset r3.Vector) {
	d.offset = offset
}

// AngularRate reads the angular rate in °/s with the gyro offset removed.
func (d *Device) AngularRate() (r3.Vector, error) {
	rate, err := d.ReadRotation()
	if err != nil {
		return r3.Vector{}, err
	}
	return rate.Sub(d.offset), nil
}

// Theta advances the angle estimate and returns it, in degrees about the configured axis.
//
// Each call adds the calibrated rate times the time since the previous call. The first call
// on a new Device only records the time. If the read fails nothing is updated.
func (d *Device) Theta() (float64, error) {
	angles, err := d.integrate()
	if err != nil {
		return 0, err
	}
	return d.axis.Of(angles), nil
}

// Angles advances the angle estimate like Theta and returns all three axes.
func (d *Device) Angles() (r3.Vector, error) {
	return d.integrate()
}

// ResetTheta zeroes the angle estimate and integrates from now on.
func (d *Device) ResetTheta() {
	d.theta = r3.Vector{}
	d.rebase()
}

// integrate is one rectangular step: theta += (rate - offset) * dt.
func (d *Device) integrate() (r3.Vector, error) {
	rate, err := d.AngularRate()
	if err != nil {
		return r3.Vector{}, errors.Wrap(err, "integrating angle")
	}

	now := d.clock.Now()
	if d.baseline {
		dt := now.Sub(d.last).Seconds()
		d.theta = d.theta.Add(rate.Mul(dt))
	}
	d.last = now
	d.baseline = true
	return d.theta, nil
}

func (d *Device) rebase() {
	d.last = d.clock.Now()
	d.baseline = true
}
