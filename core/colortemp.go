package core

import (
	"image/color"

	"github.com/chewxy/math32"
)

// ColorTemp renders the whole strip at a black-body color temperature
// derived from the frequency input. The mapping constants are
// empirical: they made the prettiest colors.
type ColorTemp struct{}

func (ColorTemp) Update(strip Strip, brightness, frequency uint16) {
	fill(strip, colorTempToRGB(8*uint32(frequency)+1000))
}

// colorTempToRGB approximates the RGB value of a color temperature in
// Kelvin, valid for 1000K-40000K. A temperature outside that range gets
// an obviously wrong color back.
func colorTempToRGB(temp uint32) color.RGBA {
	if temp > 40000 || temp < 1000 {
		return color.RGBA{G: 255}
	}

	t := float32(temp) / 100

	var red, green, blue float32
	if t <= 66 {
		red = 255
		green = 99.4708025861*math32.Log(t) - 161.1195681661
		if t > 19 {
			blue = 138.5177312231*math32.Log(t-10) - 305.0447927307
		}
	} else {
		red = 329.698727446 * math32.Pow(t-60, -0.1332047592)
		green = 288.1221695283 * math32.Pow(t-60, -0.0755148492)
		blue = 255
	}

	return color.RGBA{
		R: gcTable[clamp8(red)],
		G: gcTable[clamp8(green)],
		B: gcTable[clamp8(blue)],
	}
}

func clamp8(x float32) uint8 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return uint8(x)
}
