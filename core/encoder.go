// Interrupt-driven rotary encoder reader.
// Decodes the two-line quadrature sequence from edge interrupts,
// rejecting bounce, and maintains a wrapped rotation counter that the
// foreground loop reads as a bounded index.
package core

import (
	"errors"
	"fmt"
)

// Edge flags accumulated over one detent step.
const (
	efFirstCW  = 1 << 0 // first edge left 00 toward 01
	efFirstCCW = 1 << 1 // first edge left 00 toward 10
	efLastCW   = 1 << 2 // final edge arrived at 00 from 10
	efLastCCW  = 1 << 3 // final edge arrived at 00 from 01
	efMidStep  = 1 << 4 // the 11 mid-step state was observed
)

// ErrEncoderBound is returned when constructing a RotaryEncoder while
// another instance already owns the edge-interrupt binding. The binding
// has exactly one slot: the interrupt callback carries no context
// pointer, so it can only be routed to one live instance.
var ErrEncoderBound = errors.New("rotary encoder interrupt binding already in use")

// encoderBinding routes the free-standing edge ISR to the one live
// instance. It is written before interrupts are armed and cleared after
// they are detached, so the ISR reads it without synchronization.
var encoderBinding *RotaryEncoder

// encoderEdgeISR is the interrupt entry point shared by both pins.
func encoderEdgeISR() {
	if enc := encoderBinding; enc != nil {
		enc.handleEdge()
	}
}

// RotaryEncoder reconstructs rotation direction from the 2-bit
// quadrature state of two pulled-up input lines. Each detent walks the
// state through 00→01→11→10→00 (clockwise) or the mirrored sequence;
// everything else is mid-step or bounce. Accepted steps move a
// free-running counter and mark the display stale; the actual display
// write happens later, from the foreground, via Service.
type RotaryEncoder struct {
	pinA GPIOPin
	pinB GPIOPin

	display  SegmentDisplay
	maxIndex int

	// prevState and flags are touched only by the edge handler. count
	// and displayDirty are shared with the foreground and are wider
	// than the hardware's atomic access width, so foreground reads
	// happen inside interrupt-disabled sections.
	prevState    uint8
	flags        uint8
	count        int32
	displayDirty bool
}

// NewRotaryEncoder configures both pins as pulled-up inputs, snapshots
// the quadrature state, and arms edge interrupts on both lines. At most
// one encoder can be live at a time; a second construction fails with
// ErrEncoderBound. On any failure, everything acquired so far is
// released again.
func NewRotaryEncoder(pinA, pinB GPIOPin, maxIndex int, display SegmentDisplay) (*RotaryEncoder, error) {
	if maxIndex <= 0 {
		return nil, fmt.Errorf("rotary encoder: max index must be positive, got %d", maxIndex)
	}
	if encoderBinding != nil {
		return nil, ErrEncoderBound
	}

	gpio := MustGPIO()
	if err := gpio.ConfigureInputPullUp(pinA); err != nil {
		return nil, fmt.Errorf("rotary encoder pin A: %w", err)
	}
	if err := gpio.ConfigureInputPullUp(pinB); err != nil {
		return nil, fmt.Errorf("rotary encoder pin B: %w", err)
	}

	enc := &RotaryEncoder{
		pinA:     pinA,
		pinB:     pinB,
		display:  display,
		maxIndex: maxIndex,
	}

	// Seed the previous state before interrupts are armed so the first
	// real edge is decoded against the actual line state.
	enc.prevState = enc.readState()

	// The binding must be in place before the first edge can fire.
	encoderBinding = enc

	if err := gpio.WatchPin(pinA, encoderEdgeISR); err != nil {
		encoderBinding = nil
		return nil, fmt.Errorf("rotary encoder pin A watch: %w", err)
	}
	if err := gpio.WatchPin(pinB, encoderEdgeISR); err != nil {
		_ = gpio.UnwatchPin(pinA)
		encoderBinding = nil
		return nil, fmt.Errorf("rotary encoder pin B watch: %w", err)
	}

	return enc, nil
}

// Close detaches both edge interrupts and frees the binding slot for a
// future instance.
func (e *RotaryEncoder) Close() error {
	gpio := MustGPIO()
	errA := gpio.UnwatchPin(e.pinA)
	errB := gpio.UnwatchPin(e.pinB)
	if encoderBinding == e {
		encoderBinding = nil
	}
	if errA != nil {
		return errA
	}
	return errB
}

// readState samples both lines into the 2-bit quadrature state. The
// lines are pulled up, so low is the active level.
func (e *RotaryEncoder) readState() uint8 {
	gpio := MustGPIO()
	var s uint8
	if !gpio.ReadPin(e.pinA) {
		s |= 1 << 0
	}
	if !gpio.ReadPin(e.pinB) {
		s |= 1 << 1
	}
	return s
}

// handleEdge runs in interrupt context on every edge of either line.
// A step is accepted when its first edge and either its final edge or
// the 11 mid-step state were seen; that tolerates one bounced-away edge
// while still rejecting noise that never walks the sequence. Duplicate
// states are bounce and discarded outright.
func (e *RotaryEncoder) handleEdge() {
	cur := e.readState()
	if cur == e.prevState {
		return
	}

	if e.prevState == 0x00 {
		// first edge of a candidate step
		if cur == 0x01 {
			e.flags |= efFirstCW
		} else if cur == 0x02 {
			e.flags |= efFirstCCW
		}
	}

	if cur == 0x03 {
		// middle of a step
		e.flags |= efMidStep
	} else if cur == 0x00 {
		// final edge of a candidate step
		if e.prevState == 0x02 {
			e.flags |= efLastCW
		} else if e.prevState == 0x01 {
			e.flags |= efLastCCW
		}

		if e.flags&efFirstCW != 0 && e.flags&(efLastCW|efMidStep) != 0 {
			e.count++
			e.displayDirty = true
		} else if e.flags&efFirstCCW != 0 && e.flags&(efLastCCW|efMidStep) != 0 {
			e.count--
			e.displayDirty = true
		}

		e.flags = 0 // reset for next time
	}

	e.prevState = cur
}

// Index returns the current bounded setting in [0, maxIndex). The
// counter snapshot happens inside an interrupt-disabled section so the
// foreground never observes a half-updated value.
func (e *RotaryEncoder) Index() int {
	state := disableInterrupts()
	count := e.count
	restoreInterrupts(state)
	return boundIndex(count, e.maxIndex)
}

// Count returns a snapshot of the free-running step counter.
func (e *RotaryEncoder) Count() int32 {
	state := disableInterrupts()
	count := e.count
	restoreInterrupts(state)
	return count
}

// Service performs the pending display write, if any. It runs in the
// foreground so the display's slow I/O never executes with other
// interrupts masked. It reports whether any step had been accepted
// since the last call.
func (e *RotaryEncoder) Service() (bool, error) {
	state := disableInterrupts()
	dirty := e.displayDirty
	e.displayDirty = false
	count := e.count
	restoreInterrupts(state)

	if !dirty {
		return false, nil
	}
	if e.display == nil {
		return true, nil
	}

	if err := e.display.PrintUint(uint16(boundIndex(count, e.maxIndex))); err != nil {
		return true, err
	}
	return true, e.display.Flush()
}

// boundIndex folds the free-running counter into [0, maxIndex). The
// modulus is floored so that stepping below zero wraps to maxIndex-1.
func boundIndex(count int32, maxIndex int) int {
	idx := int(count) % maxIndex
	if idx < 0 {
		idx += maxIndex
	}
	return idx
}
