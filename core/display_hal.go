package core

// SegmentDisplay is the numeric display the encoder setting is echoed
// to. Writes are staged with PrintUint and committed with Flush, and
// only ever happen from the foreground loop: display I/O is far too
// slow for interrupt context.
type SegmentDisplay interface {
	// PrintUint stages a decimal number on the display.
	PrintUint(v uint16) error

	// Flush commits the staged digits to the hardware.
	Flush() error
}
