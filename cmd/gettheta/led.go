//go:build tinygo

package main

/*
slow flash while the sensor is being brought up, fast flash while calibrating,
solid while the angle is printed, off when done.
*/

import (
	"machine"
	"time"
)

// Define LED patterns
const (
	LED_OFF       = 0
	LED_ON        = 1
	LED_SLOWFLASH = 2
	LED_FASTFLASH = 3
)

// LED state struct
type ledState struct {
	pin        machine.Pin
	state      int
	lastToggle time.Time
	period     time.Duration
	isOn       bool
}

// Function to initialize LED state
func newLEDState(pin machine.Pin) *ledState {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &ledState{
		pin:        pin,
		state:      LED_OFF,
		lastToggle: time.Now(),
	}
}

// Function to update LED state
func (ls *ledState) update() {
	switch ls.state {
	case LED_OFF:
		ls.set(false)
	case LED_ON:
		ls.set(true)
	case LED_SLOWFLASH, LED_FASTFLASH:
		if time.Since(ls.lastToggle) >= ls.period {
			ls.set(!ls.isOn)
			ls.lastToggle = time.Now()
		}
	}
}

func (ls *ledState) setState(state int) {
	ls.state = state
	switch state {
	case LED_SLOWFLASH:
		ls.period = 250 * time.Millisecond
	case LED_FASTFLASH:
		ls.period = 50 * time.Millisecond
	}
}

func (ls *ledState) set(on bool) {
	if on {
		ls.pin.High()
	} else {
		ls.pin.Low()
	}
	ls.isOn = on
}
