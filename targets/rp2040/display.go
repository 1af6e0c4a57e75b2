//go:build rp2040

package main

import (
	"machine"

	"tinygo.org/x/drivers/tm1637"
)

// tm1637Display adapts the 4-digit 7-segment driver to
// core.SegmentDisplay: PrintUint stages the value, Flush pushes it to
// the hardware. Both only ever run from the foreground loop.
type tm1637Display struct {
	dev     tm1637.Device
	pending int16
}

func newTM1637Display(clk, dio machine.Pin) *tm1637Display {
	dev := tm1637.New(clk, dio, 7)
	dev.Configure()
	dev.ClearDisplay()
	return &tm1637Display{dev: dev}
}

func (d *tm1637Display) PrintUint(v uint16) error {
	d.pending = int16(v)
	return nil
}

func (d *tm1637Display) Flush() error {
	d.dev.DisplayNumber(d.pending)
	return nil
}
