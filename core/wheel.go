package core

import "image/color"

// ColorWheel paints the whole strip a single hue picked by the
// frequency input.
type ColorWheel struct{}

func (ColorWheel) Update(strip Strip, brightness, frequency uint16) {
	fill(strip, wheel(uint8(frequency/(MaxFrequency/255))))
}

// wheel maps 0-255 onto the color wheel: the colors are a transition
// r - g - b - back to r.
func wheel(pos uint8) color.RGBA {
	pos = 255 - pos
	switch {
	case pos < 85:
		return color.RGBA{R: 255 - pos*3, B: pos * 3}
	case pos < 170:
		pos -= 85
		return color.RGBA{G: pos * 3, B: 255 - pos*3}
	default:
		pos -= 170
		return color.RGBA{R: pos * 3, G: 255 - pos*3}
	}
}
