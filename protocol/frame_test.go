package protocol

import (
	"bytes"
	"errors"
	"testing"
)

// sendFrame encodes one report and returns just that frame's bytes.
func sendFrame(t *testing.T, r *Reporter, buf *bytes.Buffer, id MessageID, fields ...uint32) []byte {
	t.Helper()
	before := buf.Len()
	err := r.Send(id, func(out OutputBuffer) {
		for _, f := range fields {
			EncodeVLQUint(out, f)
		}
	})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	return buf.Bytes()[before:]
}

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(&buf)

	frame := sendFrame(t, rep, &buf, MsgPotChange, 21, 1)

	if frame[len(frame)-1] != FrameSyncByte {
		t.Errorf("Expected trailing sync byte, got %02x", frame[len(frame)-1])
	}
	if int(frame[0]) != len(frame) {
		t.Errorf("Length byte %d does not match frame size %d", frame[0], len(frame))
	}

	dec := NewDecoder()
	dec.Feed(frame)
	content, lost, ok := dec.Next()
	if !ok {
		t.Fatal("Expected a complete frame")
	}
	if lost != 0 {
		t.Errorf("Expected no loss, got %d", lost)
	}

	data := content
	id, err := DecodeVLQUint(&data)
	if err != nil || MessageID(id) != MsgPotChange {
		t.Errorf("Expected message id %d, got %d (err %v)", MsgPotChange, id, err)
	}
}

func TestDecoderHandlesSplitFrames(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(&buf)
	sendFrame(t, rep, &buf, MsgHeartbeat, 64, 1, 672)
	sendFrame(t, rep, &buf, MsgPotChange, 12, 0)
	stream := buf.Bytes()

	dec := NewDecoder()
	var got int
	// Feed a byte at a time; frames must come out whole regardless of
	// read chunking.
	for _, b := range stream {
		dec.Feed([]byte{b})
		for {
			_, lost, ok := dec.Next()
			if !ok {
				break
			}
			if lost != 0 {
				t.Errorf("Unexpected loss %d", lost)
			}
			got++
		}
	}
	if got != 2 {
		t.Errorf("Expected 2 frames, got %d", got)
	}
}

func TestDecoderResyncsAfterGarbage(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(&buf)
	frame := sendFrame(t, rep, &buf, MsgPotChange, 5, 0)

	dec := NewDecoder()
	dec.Feed([]byte{0xDE, 0xAD, 0xBE, 0xEF, FrameSyncByte})
	dec.Feed(frame)

	content, _, ok := dec.Next()
	if !ok {
		t.Fatal("Expected frame after garbage prefix")
	}
	data := content
	if id, _ := DecodeVLQUint(&data); MessageID(id) != MsgPotChange {
		t.Errorf("Expected pot change frame, got id %d", id)
	}
}

func TestDecoderSkipsCorruptFrame(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(&buf)
	bad := append([]byte(nil), sendFrame(t, rep, &buf, MsgPotChange, 5, 0)...)
	good := sendFrame(t, rep, &buf, MsgPotChange, 6, 0)

	// Corrupt a content byte; the CRC check must reject the frame.
	bad[2] ^= 0xFF

	dec := NewDecoder()
	dec.Feed(bad)
	dec.Feed(good)

	content, lost, ok := dec.Next()
	if !ok {
		t.Fatal("Expected the good frame to survive")
	}
	if lost != 0 {
		// The corrupt frame is invisible to the sequence check: the
		// decoder had no prior frame to count from.
		t.Errorf("Expected no counted loss, got %d", lost)
	}
	data := content
	DecodeVLQUint(&data) // id
	if bin, _ := DecodeVLQUint(&data); bin != 6 {
		t.Errorf("Expected the second frame (bin 6), got bin %d", bin)
	}
}

func TestDecoderCountsDroppedFrames(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(&buf)
	first := append([]byte(nil), sendFrame(t, rep, &buf, MsgPotChange, 1, 0)...)
	sendFrame(t, rep, &buf, MsgPotChange, 2, 0) // dropped on the wire
	sendFrame(t, rep, &buf, MsgPotChange, 3, 0) // dropped on the wire
	last := sendFrame(t, rep, &buf, MsgPotChange, 4, 0)

	dec := NewDecoder()
	dec.Feed(first)
	if _, lost, ok := dec.Next(); !ok || lost != 0 {
		t.Fatalf("First frame: ok=%v lost=%d", ok, lost)
	}

	dec.Feed(last)
	_, lost, ok := dec.Next()
	if !ok {
		t.Fatal("Expected the last frame")
	}
	if lost != 2 {
		t.Errorf("Expected 2 lost frames, got %d", lost)
	}
}

func TestSequenceNumbersRoll(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(&buf)
	dec := NewDecoder()

	// Push well past the 4-bit wrap; the decoder must never report loss
	// on a clean stream.
	for i := 0; i < 40; i++ {
		frame := sendFrame(t, rep, &buf, MsgPotChange, uint32(i), 0)
		dec.Feed(frame)
		_, lost, ok := dec.Next()
		if !ok {
			t.Fatalf("Frame %d missing", i)
		}
		if lost != 0 {
			t.Errorf("Frame %d: spurious loss %d", i, lost)
		}
	}
}

func TestSendRejectsOversizedReport(t *testing.T) {
	rep := NewReporter(&bytes.Buffer{})
	err := rep.Send(MsgHeartbeat, func(out OutputBuffer) {
		out.Output(make([]byte, FrameLengthMax))
	})
	if !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("Expected ErrFrameTooLarge, got %v", err)
	}
}
