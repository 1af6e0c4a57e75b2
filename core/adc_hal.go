package core

// ADCChannelID identifies a logical ADC channel on the target.
type ADCChannelID uint8

// ADCValue is a raw analog reading as seen by the rest of the firmware.
// Convention here: 10-bit value (0-1023), matching the fixture's sampling
// resolution, even when the underlying hardware resolves more bits.
type ADCValue uint16

// ADCBits is the sampling resolution the rest of the firmware assumes.
const ADCBits = 10

// ADCDriver is the abstract ADC interface that core code uses.
// Platform-specific implementations handle actual hardware control.
type ADCDriver interface {
	// ConfigureChannel prepares a channel for analog input.
	// For pin-muxed channels, this should set the pin to analog mode.
	ConfigureChannel(ch ADCChannelID) error

	// ReadRaw performs a one-shot sample from the given channel,
	// scaled to the 10-bit convention.
	ReadRaw(ch ADCChannelID) (ADCValue, error)
}

// Global singleton used by core code.
var adcDriver ADCDriver

// SetADCDriver is called by target-specific code to register its driver.
func SetADCDriver(d ADCDriver) {
	adcDriver = d
}

// MustADC returns the configured driver or panics if missing.
func MustADC() ADCDriver {
	if adcDriver == nil {
		panic("ADC driver not configured")
	}
	return adcDriver
}
