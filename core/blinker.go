package core

import "image/color"

// Blinker alternates the whole strip between white and off every tick.
type Blinker struct {
	on bool
}

func (b *Blinker) Update(strip Strip, brightness, frequency uint16) {
	b.on = !b.on
	var c color.RGBA
	if b.on {
		c = color.RGBA{R: 255, G: 255, B: 255}
	}
	fill(strip, c)
}

// RGBBlinker cycles red, green, blue with an off phase between colors.
type RGBBlinker struct {
	on  bool
	rgb int
}

func (b *RGBBlinker) Update(strip Strip, brightness, frequency uint16) {
	b.on = !b.on
	if b.on {
		b.rgb++
		if b.rgb > 2 {
			b.rgb = 0
		}
	}

	var c color.RGBA
	switch b.rgb {
	case 0:
		c = color.RGBA{R: 255}
	case 1:
		c = color.RGBA{G: 255}
	default:
		c = color.RGBA{B: 255}
	}
	if !b.on {
		c = color.RGBA{}
	}
	fill(strip, c)
}

func fill(strip Strip, c color.RGBA) {
	for i := 0; i < strip.NumPixels(); i++ {
		strip.SetPixel(i, c)
	}
}
