//go:build rp2040

package main

import (
	"errors"
	"machine"

	"ledmonger/core"
)

// rpADCDriver implements core.ADCDriver on TinyGo's machine.ADC,
// scaling readings down to the firmware's 10-bit convention.
type rpADCDriver struct {
	channels map[core.ADCChannelID]machine.ADC
}

func newRPADCDriver() *rpADCDriver {
	machine.InitADC()
	return &rpADCDriver{channels: make(map[core.ADCChannelID]machine.ADC)}
}

func (d *rpADCDriver) ConfigureChannel(ch core.ADCChannelID) error {
	if _, ok := d.channels[ch]; ok {
		// already configured
		return nil
	}

	var adc machine.ADC
	switch ch {
	case 0:
		adc = machine.ADC{Pin: machine.ADC0}
	case 1:
		adc = machine.ADC{Pin: machine.ADC1}
	case 2:
		adc = machine.ADC{Pin: machine.ADC2}
	case 3:
		adc = machine.ADC{Pin: machine.ADC3}
	default:
		return errors.New("unsupported ADC channel")
	}

	if err := adc.Configure(machine.ADCConfig{}); err != nil {
		return err
	}

	d.channels[ch] = adc
	return nil
}

func (d *rpADCDriver) ReadRaw(ch core.ADCChannelID) (core.ADCValue, error) {
	adc, ok := d.channels[ch]
	if !ok {
		if err := d.ConfigureChannel(ch); err != nil {
			return 0, err
		}
		adc = d.channels[ch]
	}

	// TinyGo scales ADC readings to 16 bits; shift down to 10.
	return core.ADCValue(adc.Get() >> 6), nil
}
