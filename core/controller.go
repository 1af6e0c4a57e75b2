// Foreground control loop for the LED fixture.
package core

import (
	"errors"
	"fmt"

	"ledmonger/protocol"
)

// heartbeatInterval is how many ticks pass between heartbeat reports.
const heartbeatInterval = 64

// Tick delay bounds in milliseconds. The frequency input sweeps the
// animation rate between them.
const (
	tickDelayMaxMS = 500
	tickDelayMinMS = 20
)

// Controller runs the fixture's foreground loop: the potentiometer
// drives the frequency parameter, the rotary encoder picks the active
// program and echoes its index on the display, and every tick repaints
// the strip. All input reads are bounded constant-time operations, so a
// tick never blocks.
type Controller struct {
	pot      *Potentiometer
	enc      *RotaryEncoder
	strip    Strip
	programs []Program
	reporter *protocol.Reporter

	brightness uint16
	frequency  uint16
	ticks      uint32
}

// NewController wires the conditioned inputs to the render path.
// reporter may be nil when the build has no telemetry transport.
func NewController(pot *Potentiometer, enc *RotaryEncoder, strip Strip, programs []Program, reporter *protocol.Reporter) (*Controller, error) {
	if len(programs) == 0 {
		return nil, errors.New("controller: no programs")
	}
	return &Controller{
		pot:        pot,
		enc:        enc,
		strip:      strip,
		programs:   programs,
		reporter:   reporter,
		brightness: MaxBrightness - 1,
	}, nil
}

// Tick runs one iteration of the foreground loop.
func (c *Controller) Tick() error {
	c.ticks++

	bin, ev, err := c.pot.Update()
	if err != nil {
		return fmt.Errorf("potentiometer: %w", err)
	}
	if ev != BinUnchanged {
		// Spread the bin back over the full 10-bit parameter range.
		c.frequency = uint16(bin) << adcToBinShift
		c.reportPot(bin, ev)
	}

	stepped, err := c.enc.Service()
	if err != nil {
		return fmt.Errorf("encoder display: %w", err)
	}
	idx := c.enc.Index()
	if stepped {
		c.reportStep(idx)
	}

	c.programs[idx%len(c.programs)].Update(c.strip, c.brightness, c.frequency)
	if err := c.strip.Show(); err != nil {
		return fmt.Errorf("strip: %w", err)
	}

	if c.ticks%heartbeatInterval == 0 {
		c.reportHeartbeat(idx)
	}
	return nil
}

// TickDelayMS returns how long the main loop should sleep after the
// current tick, in milliseconds. Higher frequency input means faster
// animation.
func (c *Controller) TickDelayMS() uint32 {
	span := uint32(tickDelayMaxMS - tickDelayMinMS)
	return tickDelayMaxMS - span*uint32(c.frequency)/MaxFrequency
}

// Frequency returns the current conditioned frequency parameter.
func (c *Controller) Frequency() uint16 {
	return c.frequency
}

// Telemetry failures are deliberately swallowed: a detached host must
// not stall the fixture.

func (c *Controller) reportPot(bin int, ev BinEvent) {
	if c.reporter == nil {
		return
	}
	initial := uint32(0)
	if ev == BinInitial {
		initial = 1
	}
	_ = c.reporter.Send(protocol.MsgPotChange, func(out protocol.OutputBuffer) {
		protocol.EncodeVLQUint(out, uint32(bin))
		protocol.EncodeVLQUint(out, initial)
	})
}

func (c *Controller) reportStep(idx int) {
	if c.reporter == nil {
		return
	}
	count := c.enc.Count()
	_ = c.reporter.Send(protocol.MsgEncoderStep, func(out protocol.OutputBuffer) {
		protocol.EncodeVLQUint(out, uint32(idx))
		protocol.EncodeVLQInt(out, count)
	})
}

func (c *Controller) reportHeartbeat(idx int) {
	if c.reporter == nil {
		return
	}
	_ = c.reporter.Send(protocol.MsgHeartbeat, func(out protocol.OutputBuffer) {
		protocol.EncodeVLQUint(out, c.ticks)
		protocol.EncodeVLQUint(out, uint32(idx%len(c.programs)))
		protocol.EncodeVLQUint(out, uint32(c.frequency))
	})
}
