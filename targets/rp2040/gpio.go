//go:build rp2040

package main

import (
	"errors"
	"machine"

	"ledmonger/core"
)

// rpGPIODriver implements core.GPIODriver on TinyGo's machine.Pin.
type rpGPIODriver struct {
	watched map[machine.Pin]core.PinWatcher
}

func newRPGPIODriver() *rpGPIODriver {
	return &rpGPIODriver{watched: make(map[machine.Pin]core.PinWatcher)}
}

func (d *rpGPIODriver) ConfigureInputPullUp(pin core.GPIOPin) error {
	machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return nil
}

func (d *rpGPIODriver) ReadPin(pin core.GPIOPin) bool {
	return machine.Pin(pin).Get()
}

func (d *rpGPIODriver) WatchPin(pin core.GPIOPin, fn core.PinWatcher) error {
	p := machine.Pin(pin)
	if _, ok := d.watched[p]; ok {
		return errors.New("pin already watched")
	}
	if err := p.SetInterrupt(machine.PinToggle, func(machine.Pin) { fn() }); err != nil {
		return err
	}
	d.watched[p] = fn
	return nil
}

func (d *rpGPIODriver) UnwatchPin(pin core.GPIOPin) error {
	p := machine.Pin(pin)
	if _, ok := d.watched[p]; !ok {
		return errors.New("pin not watched")
	}
	delete(d.watched, p)
	return p.SetInterrupt(machine.PinToggle, nil)
}
