//go:build !tinygo

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"

	"github.com/TomerOzer/mpu6050/mpu6050"
)

const (
	defaultInterval = 200 * time.Millisecond

	// The gyro output settles this long after the chip is woken.
	wakeDelay = 100 * time.Millisecond
)

// sensor is one opened MPU-6050 and the clock its readings are paced by.
type sensor struct {
	dev    *mpu6050.Device
	axis   mpu6050.Axis
	clock  clock.Clock
	logger *zap.SugaredLogger
}

// withSensor opens the I2C bus named on the command line, wakes the sensor, runs fn and
// then puts the sensor back to sleep and closes the bus.
func withSensor(c *cli.Context, logger *zap.SugaredLogger, fn func(*sensor) error) (err error) {
	if _, err := host.Init(); err != nil {
		return errors.Wrap(err, "initializing periph host drivers")
	}
	bus, err := i2creg.Open(c.String(flagBus))
	if err != nil {
		return errors.Wrapf(err, "opening I2C bus %q", c.String(flagBus))
	}
	logger.Debugw("opened I2C bus", "bus", bus.String())

	cfg := mpu6050.Config{Address: mpu6050.Address, CalibrationSamples: c.Int(flagSamples)}
	if c.Bool(flagAltAddress) {
		cfg.Address = mpu6050.AlternateAddress
	}
	if cfg.Axis, err = mpu6050.ParseAxis(c.String(flagAxis)); err != nil {
		return multierr.Combine(err, bus.Close())
	}

	s, err := openSensor(bus, cfg, logger)
	if err != nil {
		return multierr.Combine(err, bus.Close())
	}
	defer func() {
		err = multierr.Combine(err, s.dev.Sleep(), bus.Close())
	}()
	return fn(s)
}

// openSensor checks that an MPU-6050 answers on bus and wakes it.
func openSensor(bus drivers.I2C, cfg mpu6050.Config, logger *zap.SugaredLogger) (*sensor, error) {
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	dev := mpu6050.New(bus)
	dev.Address = cfg.Address
	if !dev.Connected() {
		return nil, errors.Wrapf(mpu6050.ErrNotConnected, "no answer at 0x%02x", cfg.Address)
	}
	if err := dev.Configure(cfg); err != nil {
		return nil, err
	}
	logger.Debugw("MPU6050 awake", "address", cfg.Address, "axis", cfg.Axis.String())
	cfg.Clock.Sleep(wakeDelay)

	return &sensor{dev: dev, axis: cfg.Axis, clock: cfg.Clock, logger: logger}, nil
}

func (s *sensor) read(w io.Writer) error {
	m, err := s.dev.ReadMotion()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "accel   x=%.4f y=%.4f z=%.4f g\n", m.Acceleration.X, m.Acceleration.Y, m.Acceleration.Z)
	fmt.Fprintf(w, "gyro    x=%.3f y=%.3f z=%.3f deg/s\n", m.Rotation.X, m.Rotation.Y, m.Rotation.Z)
	fmt.Fprintf(w, "temp    %.2f C\n", m.Temperature)
	return nil
}

func (s *sensor) calibrate(w io.Writer, samples int) error {
	s.logger.Infow("calibrating gyro, keep the sensor still", "samples", samples)
	start := s.clock.Now()
	if err := s.dev.Calibrate(samples); err != nil {
		return err
	}
	offset := s.dev.GyroOffset()
	s.logger.Infow("calibration complete", "took", s.clock.Since(start).String())
	fmt.Fprintf(w, "offset  x=%.4f y=%.4f z=%.4f deg/s\n", offset.X, offset.Y, offset.Z)
	return nil
}

// theta prints count angle readings, interval apart, resets the angle and prints count more.
func (s *sensor) theta(w io.Writer, count int, interval time.Duration) error {
	for pass := 0; pass < 2; pass++ {
		for i := 0; i < count; i++ {
			theta, err := s.dev.Theta()
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "theta %s %.2f\n", s.axis, theta)
			s.clock.Sleep(interval)
		}
		s.dev.ResetTheta()
		s.logger.Debug("angle reset")
	}
	return nil
}
