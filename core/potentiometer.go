// Potentiometer reading with hysteresis.
// Buckets noisy 10-bit samples into stable bins for the control loop.
package core

import "fmt"

const (
	logBinSize    = 5
	adcToBinShift = ADCBits - logBinSize
	binSize       = 1 << logBinSize

	// hysteresis is how far (in raw ADC counts) a sample must move past
	// the current bin's raw range before a bin change is accepted.
	hysteresis = 8
)

// NumBins is the number of discrete positions the potentiometer travel
// is divided into.
const NumBins = 1 << adcToBinShift

// BinEvent describes the outcome of a Potentiometer.Update call.
type BinEvent uint8

const (
	// BinUnchanged means the committed bin did not move this sample.
	BinUnchanged BinEvent = iota

	// BinInitial means this was the first sample ever and the bin was
	// seeded unconditionally.
	BinInitial

	// BinChanged means the sample moved far enough past the old bin's
	// boundary to commit a new bin.
	BinChanged
)

// Potentiometer samples one analog channel and buckets the reading into
// NumBins bins. Hysteresis at the bin boundaries suppresses noise-driven
// flicker when the wiper rests on a boundary. It is polled from the
// foreground loop only and never blocks.
type Potentiometer struct {
	ch          ADCChannelID
	currentBin  int
	initialized bool
}

// NewPotentiometer binds a reader to one ADC channel for its lifetime.
func NewPotentiometer(ch ADCChannelID) (*Potentiometer, error) {
	if err := MustADC().ConfigureChannel(ch); err != nil {
		return nil, fmt.Errorf("potentiometer channel %d: %w", ch, err)
	}
	return &Potentiometer{ch: ch}, nil
}

// Update takes one sample and reports the committed bin together with
// what happened to it. The first call always commits and reports the
// initial bin; afterwards a bin transition is only committed once the
// raw value is more than the hysteresis margin outside the old bin's
// raw range. A transition still inside the margin is BinUnchanged.
func (p *Potentiometer) Update() (int, BinEvent, error) {
	raw, err := MustADC().ReadRaw(p.ch)
	if err != nil {
		return p.currentBin, BinUnchanged, fmt.Errorf("potentiometer channel %d: %w", p.ch, err)
	}

	// The sampling hardware is fixed-width, but clamp anyway in case a
	// driver ever hands back a wider reading.
	next := int(raw)
	if next > 1<<ADCBits-1 {
		next = 1<<ADCBits - 1
	}

	nextBin := next >> adcToBinShift

	if !p.initialized {
		p.initialized = true
		p.currentBin = nextBin
		return p.currentBin, BinInitial, nil
	}

	if nextBin == p.currentBin {
		return p.currentBin, BinUnchanged, nil
	}

	binStart := p.currentBin << adcToBinShift
	binEnd := binStart + (binSize - 1)

	// Here's where the hysteresis happens. The bin only changes once
	// the value is sufficiently far into the next bin, so a wiper
	// resting on a bin boundary can't flap the bin on every sample's
	// worth of noise.
	if next < binStart-hysteresis || next > binEnd+hysteresis {
		p.currentBin = nextBin
		return p.currentBin, BinChanged, nil
	}

	return p.currentBin, BinUnchanged, nil
}

// Bin returns the last committed bin without sampling. Before the first
// Update it returns 0.
func (p *Potentiometer) Bin() int {
	return p.currentBin
}
