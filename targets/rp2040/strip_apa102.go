//go:build rp2040 && !neopixel

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/apa102"

	"ledmonger/core"
)

const numPixels = 60

// apa102Strip drives a DotStar strip over hardware SPI.
type apa102Strip struct {
	dev    *apa102.Device
	pixels [numPixels]color.RGBA
}

func newStrip() (core.Strip, error) {
	spi := machine.SPI0
	if err := spi.Configure(machine.SPIConfig{Frequency: 8000000, Mode: 0}); err != nil {
		return nil, err
	}
	return &apa102Strip{dev: apa102.New(spi)}, nil
}

func (s *apa102Strip) NumPixels() int {
	return numPixels
}

func (s *apa102Strip) SetPixel(i int, c color.RGBA) {
	if i < 0 || i >= numPixels {
		return
	}
	s.pixels[i] = c
}

func (s *apa102Strip) Show() error {
	_, err := s.dev.WriteColors(s.pixels[:])
	return err
}
