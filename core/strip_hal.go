package core

import "image/color"

// Strip is an addressable LED strip. SetPixel stages a pixel color in
// the strip buffer; Show pushes the whole buffer out to the hardware.
// Alpha is ignored.
type Strip interface {
	// NumPixels returns the number of addressable pixels.
	NumPixels() int

	// SetPixel stages the color of pixel i.
	SetPixel(i int, c color.RGBA)

	// Show writes the staged buffer to the strip.
	Show() error
}
