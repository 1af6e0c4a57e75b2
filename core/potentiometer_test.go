package core

import (
	"errors"
	"testing"
)

func newTestPot(t *testing.T, samples ...ADCValue) (*Potentiometer, *mockADC) {
	t.Helper()
	adc := &mockADC{samples: samples}
	SetADCDriver(adc)
	pot, err := NewPotentiometer(0)
	if err != nil {
		t.Fatalf("NewPotentiometer failed: %v", err)
	}
	return pot, adc
}

func mustUpdate(t *testing.T, pot *Potentiometer) (int, BinEvent) {
	t.Helper()
	bin, ev, err := pot.Update()
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	return bin, ev
}

func TestColdStartCommitsFirstBin(t *testing.T) {
	pot, _ := newTestPot(t, 700)

	bin, ev := mustUpdate(t, pot)
	if ev != BinInitial {
		t.Errorf("Expected BinInitial on first call, got %d", ev)
	}
	if bin != 700>>adcToBinShift {
		t.Errorf("Expected bin %d, got %d", 700>>adcToBinShift, bin)
	}
}

func TestBoundaryNoiseSuppressed(t *testing.T) {
	// Bin 10 covers raw 320-351. All samples stay within the
	// hysteresis margin of those boundaries.
	pot, _ := newTestPot(t, 320, 313, 355, 319, 352, 359, 312)

	if bin, ev := mustUpdate(t, pot); ev != BinInitial || bin != 10 {
		t.Fatalf("Expected initial bin 10, got bin=%d ev=%d", bin, ev)
	}

	for i := 0; i < 6; i++ {
		bin, ev := mustUpdate(t, pot)
		if ev != BinUnchanged {
			t.Errorf("Sample %d: expected BinUnchanged, got %d", i+1, ev)
		}
		if bin != 10 {
			t.Errorf("Sample %d: expected bin to hold at 10, got %d", i+1, bin)
		}
	}
}

func TestBinChangeCommitsPastHysteresis(t *testing.T) {
	// 360 is more than hysteresis counts above bin 10's end (351).
	pot, _ := newTestPot(t, 336, 360)

	mustUpdate(t, pot)
	bin, ev := mustUpdate(t, pot)
	if ev != BinChanged {
		t.Errorf("Expected BinChanged, got %d", ev)
	}
	if bin != 11 {
		t.Errorf("Expected bin 11, got %d", bin)
	}
}

func TestBinChangeCommitsDownward(t *testing.T) {
	// 311 is more than hysteresis counts below bin 10's start (320).
	pot, _ := newTestPot(t, 336, 311)

	mustUpdate(t, pot)
	bin, ev := mustUpdate(t, pot)
	if ev != BinChanged {
		t.Errorf("Expected BinChanged, got %d", ev)
	}
	if bin != 9 {
		t.Errorf("Expected bin 9, got %d", bin)
	}
}

func TestMonotonicCrossingReportsEveryBin(t *testing.T) {
	// Sweep from bin 10 through bin 12, crossing each boundary by more
	// than the hysteresis margin. Every intermediate bin must be
	// reported, in order.
	pot, _ := newTestPot(t, 336, 368, 400)

	mustUpdate(t, pot)

	var changes []int
	for i := 0; i < 2; i++ {
		bin, ev := mustUpdate(t, pot)
		if ev == BinChanged {
			changes = append(changes, bin)
		}
	}

	if len(changes) != 2 || changes[0] != 11 || changes[1] != 12 {
		t.Errorf("Expected bin changes [11 12], got %v", changes)
	}
}

func TestWideSampleClamped(t *testing.T) {
	pot, _ := newTestPot(t, 5000)

	bin, ev := mustUpdate(t, pot)
	if ev != BinInitial {
		t.Errorf("Expected BinInitial, got %d", ev)
	}
	if bin != NumBins-1 {
		t.Errorf("Expected clamp into top bin %d, got %d", NumBins-1, bin)
	}
}

func TestConfigureChannelError(t *testing.T) {
	wantErr := errors.New("channel busy")
	SetADCDriver(&mockADC{configureErr: wantErr})

	if _, err := NewPotentiometer(2); !errors.Is(err, wantErr) {
		t.Errorf("Expected configure error, got %v", err)
	}
}

func TestReadErrorKeepsBin(t *testing.T) {
	pot, adc := newTestPot(t, 336)

	mustUpdate(t, pot)
	adc.readErr = errors.New("conversion timeout")

	bin, ev, err := pot.Update()
	if err == nil {
		t.Fatal("Expected read error")
	}
	if ev != BinUnchanged || bin != 10 {
		t.Errorf("Expected bin held at 10 with BinUnchanged, got bin=%d ev=%d", bin, ev)
	}
}
