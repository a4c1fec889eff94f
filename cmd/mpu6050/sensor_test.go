//go:build !tinygo

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.viam.com/test"

	"github.com/TomerOzer/mpu6050/mpu6050"
)

// fakeBus answers for one device address from a 256-byte register file.
type fakeBus struct {
	addr uint16
	mem  [256]byte
}

func (b *fakeBus) Tx(addr uint16, w, r []byte) error {
	if addr != b.addr {
		return errors.Errorf("no ack from 0x%02x", addr)
	}
	if len(r) == 0 {
		copy(b.mem[w[0]:], w[1:])
		return nil
	}
	copy(r, b.mem[w[0]:])
	return nil
}

func newFakeMPU(addr uint16) *fakeBus {
	b := &fakeBus{addr: addr}
	b.mem[mpu6050.WHO_AM_I] = mpu6050.WHO_AM_I_RESPONSE
	b.mem[mpu6050.PWR_MGMT_1] = mpu6050.SLEEP
	// 0.5g on z, 10°/s about x, 37.53°C.
	copy(b.mem[mpu6050.ACCEL_XOUT_H:], []byte{0, 0, 0, 0, 0x20, 0x00, 0x01, 0x54, 0x05, 0x1E, 0, 0, 0, 0})
	return b
}

func TestOpenSensor(t *testing.T) {
	logger := zap.NewNop().Sugar()

	t.Run("wakes the chip", func(t *testing.T) {
		bus := newFakeMPU(mpu6050.AlternateAddress)
		s, err := openSensor(bus, mpu6050.Config{Address: mpu6050.AlternateAddress, Axis: mpu6050.AxisY}, logger)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, bus.mem[mpu6050.PWR_MGMT_1], test.ShouldEqual, byte(0))
		test.That(t, s.axis, test.ShouldEqual, mpu6050.AxisY)
	})

	t.Run("nothing at the address", func(t *testing.T) {
		bus := newFakeMPU(mpu6050.AlternateAddress)
		_, err := openSensor(bus, mpu6050.Config{Address: mpu6050.Address}, logger)
		test.That(t, errors.Is(err, mpu6050.ErrNotConnected), test.ShouldBeTrue)
		test.That(t, bus.mem[mpu6050.PWR_MGMT_1], test.ShouldEqual, byte(mpu6050.SLEEP))
	})
}

func TestSensorCommands(t *testing.T) {
	bus := newFakeMPU(mpu6050.Address)
	s, err := openSensor(bus, mpu6050.Config{Address: mpu6050.Address}, zap.NewNop().Sugar())
	test.That(t, err, test.ShouldBeNil)

	var out bytes.Buffer
	test.That(t, s.read(&out), test.ShouldBeNil)
	test.That(t, out.String(), test.ShouldContainSubstring, "z=0.5000 g")
	test.That(t, out.String(), test.ShouldContainSubstring, "x=10.000 y=0.000 z=0.000 deg/s")
	test.That(t, out.String(), test.ShouldContainSubstring, "37.53 C")

	out.Reset()
	test.That(t, s.calibrate(&out, 20), test.ShouldBeNil)
	test.That(t, out.String(), test.ShouldContainSubstring, "offset  x=10.0000 y=0.0000 z=0.0000")

	out.Reset()
	test.That(t, s.theta(&out, 3, 0), test.ShouldBeNil)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	test.That(t, lines, test.ShouldHaveLength, 6)
	for _, l := range lines {
		test.That(t, l, test.ShouldEqual, "theta x 0.00")
	}
}
