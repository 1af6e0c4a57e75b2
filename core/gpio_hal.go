package core

// GPIOPin identifies a hardware GPIO pin number
type GPIOPin uint32

// PinWatcher is an edge-interrupt callback. It runs in interrupt
// context: it must not block, allocate, or perform slow I/O.
type PinWatcher func()

// GPIODriver is the abstract GPIO interface that core code uses.
// Platform-specific implementations handle actual hardware control.
type GPIODriver interface {
	// ConfigureInputPullUp configures a pin as a digital input with pull-up resistor
	ConfigureInputPullUp(pin GPIOPin) error

	// ReadPin reads the current pin level (true = high)
	ReadPin(pin GPIOPin) bool

	// WatchPin arms an edge-triggered interrupt on both edges of a pin.
	// Returns an error if the pin cannot generate interrupts or is
	// already being watched.
	WatchPin(pin GPIOPin, fn PinWatcher) error

	// UnwatchPin disarms the edge interrupt on a pin.
	UnwatchPin(pin GPIOPin) error
}

// Global singleton used by core code.
var gpioDriver GPIODriver

// SetGPIODriver is called by target-specific code to register its driver.
func SetGPIODriver(d GPIODriver) {
	gpioDriver = d
}

// MustGPIO returns the configured driver or panics if missing.
func MustGPIO() GPIODriver {
	if gpioDriver == nil {
		panic("GPIO driver not configured")
	}
	return gpioDriver
}
