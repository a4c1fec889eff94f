//go:build tinygo

// gettheta is the firmware example: it wakes an MPU-6050 on I2C0, calibrates the gyro, then
// prints the integrated angle twice over, resetting it in between.
package main

import (
	"machine"
	"strconv"
	"time"

	"github.com/TomerOzer/mpu6050/mpu6050"
)

const Version = "0.1.0"

// --- Example Parameters ---
const (
	I2C_FREQUENCY = 400 * machine.KHz
	THETA_AXIS    = mpu6050.AxisX
	CAL_SAMPLES   = mpu6050.DefaultCalibrationSamples
	PRINT_COUNT   = 30
	PRINT_PERIOD  = 200 * time.Millisecond
	WAKE_DELAY    = 100 * time.Millisecond

	// State machine states
	INITIALIZATION runState = iota
	CALIBRATING
	RUNNING
	DONE
)

type runState int

var (
	statusLED = machine.LED
	sensor    *mpu6050.Device
)

func main() {
	time.Sleep(2 * time.Second)
	println("gettheta - Version", Version)

	led := newLEDState(statusLED)
	state := INITIALIZATION
	println("Entering INITIALIZATION state...")
	for {
		led.update()

		switch state {
		case INITIALIZATION:
			led.setState(LED_SLOWFLASH)
			i2c := machine.I2C0
			if err := i2c.Configure(machine.I2CConfig{Frequency: I2C_FREQUENCY}); err != nil {
				println("could not configure I2C:", err.Error())
				time.Sleep(time.Second)
				break
			}

			sensor = mpu6050.New(i2c)
			if !sensor.Connected() {
				println("MPU6050 not connected")
				time.Sleep(time.Second)
				break
			}
			if err := sensor.Configure(mpu6050.Config{
				Axis:               THETA_AXIS,
				CalibrationSamples: CAL_SAMPLES,
			}); err != nil {
				println("Failed to configure MPU6050:", err.Error())
				time.Sleep(time.Second)
				break
			}
			// Let the gyro settle after waking.
			time.Sleep(WAKE_DELAY)
			println("MPU6050 initialized.")
			state = CALIBRATING

		case CALIBRATING:
			led.setState(LED_FASTFLASH)
			led.update()
			println("Calibrating gyro, keep device still...")
			if err := sensor.Calibrate(0); err != nil {
				println("Calibration failed:", err.Error())
				time.Sleep(time.Second)
				break
			}
			offset := sensor.GyroOffset()
			println("Calibration complete. Offset X:", ftoa(offset.X), "Y:", ftoa(offset.Y), "Z:", ftoa(offset.Z))
			state = RUNNING

		case RUNNING:
			led.setState(LED_ON)
			printTheta()
			sensor.ResetTheta()
			printTheta()
			state = DONE

		case DONE:
			if err := sensor.Sleep(); err != nil {
				println("could not put MPU6050 to sleep:", err.Error())
			}
			led.setState(LED_OFF)
			led.update()
			println("Done.")
			return
		}
	}
}

// printTheta prints PRINT_COUNT angle readings, one every PRINT_PERIOD.
func printTheta() {
	for i := 0; i < PRINT_COUNT; i++ {
		theta, err := sensor.Theta()
		if err != nil {
			println("Error reading gyro:", err.Error())
		} else {
			println("theta", THETA_AXIS.String(), ftoa(theta))
		}
		time.Sleep(PRINT_PERIOD)
	}
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
