//go:build rp2040

package main

import (
	"machine"
	"time"

	"ledmonger/core"
	"ledmonger/protocol"
)

// Fixture pin assignment.
const (
	potChannel  = core.ADCChannelID(0) // GPIO26 / ADC0
	encoderPinA = core.GPIOPin(2)
	encoderPinB = core.GPIOPin(3)

	displayCLK = machine.GP4
	displayDIO = machine.GP5
)

func main() {
	// Give USB CDC a moment to enumerate so early telemetry is not lost.
	time.Sleep(2 * time.Second)

	core.SetGPIODriver(newRPGPIODriver())
	core.SetADCDriver(newRPADCDriver())

	display := newTM1637Display(displayCLK, displayDIO)

	strip, err := newStrip()
	if err != nil {
		fatal(err)
	}

	programs := []core.Program{
		&core.Blinker{},
		&core.RGBBlinker{},
		core.ColorWheel{},
		core.ColorTemp{},
	}

	pot, err := core.NewPotentiometer(potChannel)
	if err != nil {
		fatal(err)
	}

	enc, err := core.NewRotaryEncoder(encoderPinA, encoderPinB, len(programs), display)
	if err != nil {
		fatal(err)
	}
	defer enc.Close()

	reporter := protocol.NewReporter(machine.Serial)

	ctrl, err := core.NewController(pot, enc, strip, programs, reporter)
	if err != nil {
		fatal(err)
	}

	for {
		if err := ctrl.Tick(); err != nil {
			// A failed display or strip write is not fatal; keep running.
			println("tick:", err.Error())
		}
		time.Sleep(time.Duration(ctrl.TickDelayMS()) * time.Millisecond)
	}
}

func fatal(err error) {
	for {
		println("init:", err.Error())
		time.Sleep(time.Second)
	}
}
