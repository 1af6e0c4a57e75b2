//go:build rp2040 && neopixel

package main

// WS2812 (NeoPixel) strip backend using RP2040 PIO. The PIO state
// machine generates the 800kHz one-wire waveform in hardware, so Show
// only has to feed pixel words into the TX FIFO.

import (
	"image/color"
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"ledmonger/core"
)

const (
	numPixels    = 60
	ws2812Pin    = machine.GP16
	ws2812Origin = 0
)

// buildWS2812Program creates the one-wire waveform program using
// AssemblerV0. Each bit takes 8 PIO cycles: a common high phase, then a
// data-dependent middle phase, then a common low phase.
func buildWS2812Program() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 1}
	return []uint16{
		// .wrap_target
		// bitloop:
		asm.Out(rp2pio.OutDestX, 1).Side(0).Delay(2).Encode(), // 0: out x, 1 side 0 [2]
		asm.Jmp(3, rp2pio.JmpXZero).Side(1).Delay(1).Encode(), // 1: jmp !x, do_zero side 1 [1]
		asm.Jmp(0, rp2pio.JmpAlways).Side(1).Delay(4).Encode(), // 2: jmp bitloop side 1 [4]
		// do_zero:
		asm.Jmp(0, rp2pio.JmpAlways).Side(0).Delay(4).Encode(), // 3: jmp bitloop side 0 [4]
		// .wrap
	}
}

type ws2812Strip struct {
	sm     rp2pio.StateMachine
	pixels [numPixels]color.RGBA
}

func newStrip() (core.Strip, error) {
	pioHW := rp2pio.PIO0
	sm := pioHW.StateMachine(0)
	sm.TryClaim()

	program := buildWS2812Program()
	offset, err := pioHW.AddProgram(program, ws2812Origin)
	if err != nil {
		return nil, err
	}

	pin := ws2812Pin
	pin.Configure(machine.PinConfig{Mode: pioHW.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetSidesetPins(pin)
	// Shift left, autopull at 24 bits: one pull per GRB pixel word.
	cfg.SetOutShift(false, true, 24)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)
	// 8 cycles per bit at 800kHz from the 125MHz system clock:
	// 125e6 / (800e3 * 8) = 19.53125 -> 19 + 136/256.
	cfg.SetClkDivIntFrac(19, 136)

	sm.Init(offset, cfg)
	sm.SetPindirsConsecutive(pin, 1, true)
	sm.SetEnabled(true)

	return &ws2812Strip{sm: sm}, nil
}

func (s *ws2812Strip) NumPixels() int {
	return numPixels
}

func (s *ws2812Strip) SetPixel(i int, c color.RGBA) {
	if i < 0 || i >= numPixels {
		return
	}
	s.pixels[i] = c
}

func (s *ws2812Strip) Show() error {
	for _, c := range s.pixels {
		// GRB ordering, left-aligned for the 24-bit autopull.
		word := uint32(c.G)<<24 | uint32(c.R)<<16 | uint32(c.B)<<8
		for s.sm.IsTxFIFOFull() {
			// Busy wait; the FIFO drains at 30us per pixel.
		}
		s.sm.TxPut(word)
	}
	return nil
}
