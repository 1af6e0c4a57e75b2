package core

import (
	"image/color"
)

// mockADC implements ADCDriver with a scripted sample sequence. Once
// the script runs out the last sample repeats.
type mockADC struct {
	samples      []ADCValue
	pos          int
	configured   []ADCChannelID
	configureErr error
	readErr      error
}

func (m *mockADC) ConfigureChannel(ch ADCChannelID) error {
	if m.configureErr != nil {
		return m.configureErr
	}
	m.configured = append(m.configured, ch)
	return nil
}

func (m *mockADC) ReadRaw(ch ADCChannelID) (ADCValue, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	if len(m.samples) == 0 {
		return 0, nil
	}
	v := m.samples[m.pos]
	if m.pos < len(m.samples)-1 {
		m.pos++
	}
	return v, nil
}

// mockGPIO implements GPIODriver with in-memory pin state and manual
// interrupt firing. Pins read high (pulled up) until driven.
type mockGPIO struct {
	levels       map[GPIOPin]bool
	watchers     map[GPIOPin]PinWatcher
	unwatched    []GPIOPin
	configureErr map[GPIOPin]error
	watchErr     map[GPIOPin]error
}

func newMockGPIO() *mockGPIO {
	return &mockGPIO{
		levels:       make(map[GPIOPin]bool),
		watchers:     make(map[GPIOPin]PinWatcher),
		configureErr: make(map[GPIOPin]error),
		watchErr:     make(map[GPIOPin]error),
	}
}

func (m *mockGPIO) ConfigureInputPullUp(pin GPIOPin) error {
	if err := m.configureErr[pin]; err != nil {
		return err
	}
	if _, ok := m.levels[pin]; !ok {
		m.levels[pin] = true // pull-up engaged, line idle
	}
	return nil
}

func (m *mockGPIO) ReadPin(pin GPIOPin) bool {
	level, ok := m.levels[pin]
	if !ok {
		return true
	}
	return level
}

func (m *mockGPIO) WatchPin(pin GPIOPin, fn PinWatcher) error {
	if err := m.watchErr[pin]; err != nil {
		return err
	}
	m.watchers[pin] = fn
	return nil
}

func (m *mockGPIO) UnwatchPin(pin GPIOPin) error {
	delete(m.watchers, pin)
	m.unwatched = append(m.unwatched, pin)
	return nil
}

// drive sets the two encoder lines to a 2-bit quadrature state (bit 0 =
// pin A active/low, bit 1 = pin B active/low) and fires one edge
// interrupt, the way a single line transition would.
func (m *mockGPIO) drive(pinA, pinB GPIOPin, state uint8) {
	m.levels[pinA] = state&0x01 == 0
	m.levels[pinB] = state&0x02 == 0
	for _, fn := range m.watchers {
		fn()
		break // both pins share one ISR; one callback per edge
	}
}

// mockDisplay records staged values and flushes.
type mockDisplay struct {
	printed  []uint16
	flushes  int
	printErr error
	flushErr error
}

func (m *mockDisplay) PrintUint(v uint16) error {
	if m.printErr != nil {
		return m.printErr
	}
	m.printed = append(m.printed, v)
	return nil
}

func (m *mockDisplay) Flush() error {
	if m.flushErr != nil {
		return m.flushErr
	}
	m.flushes++
	return nil
}

// fakeStrip buffers pixels in memory and counts Show calls.
type fakeStrip struct {
	pixels  []color.RGBA
	shows   int
	showErr error
}

func newFakeStrip(n int) *fakeStrip {
	return &fakeStrip{pixels: make([]color.RGBA, n)}
}

func (s *fakeStrip) NumPixels() int {
	return len(s.pixels)
}

func (s *fakeStrip) SetPixel(i int, c color.RGBA) {
	if i >= 0 && i < len(s.pixels) {
		s.pixels[i] = c
	}
}

func (s *fakeStrip) Show() error {
	if s.showErr != nil {
		return s.showErr
	}
	s.shows++
	return nil
}
