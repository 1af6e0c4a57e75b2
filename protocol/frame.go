package protocol

import (
	"errors"
	"io"
)

// Telemetry frame layout, fixture to host only:
//
//	[len][seq][content ...][crc16 hi][crc16 lo][sync]
//
// len counts the whole frame. seq carries a rolling 4-bit sequence
// number in its low nibble so the host can count dropped frames; the
// high nibble is a fixed tag that doubles as a sanity check when
// resynchronizing on a noisy stream.
const (
	FrameHeaderSize  = 2
	FrameTrailerSize = 3
	FrameLengthMin   = FrameHeaderSize + FrameTrailerSize
	FrameLengthMax   = 64
	FrameSyncByte    = 0x7E

	frameSeqMask = 0x0F
	frameSeqTag  = 0x10
)

// ErrFrameTooLarge is returned when a report's payload would overflow
// the fixed frame size.
var ErrFrameTooLarge = errors.New("telemetry frame too large")

// Reporter encodes telemetry reports into frames and writes them to the
// transport (USB CDC on the fixture). It is driven by the foreground
// loop only, so it needs no locking.
type Reporter struct {
	w   io.Writer
	out *ScratchOutput
	seq uint8
}

// NewReporter creates a Reporter writing frames to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w, out: NewScratchOutput()}
}

// Send encodes one report and writes the finished frame. The encode
// callback appends the payload fields after the message ID.
func (r *Reporter) Send(id MessageID, encode func(out OutputBuffer)) error {
	r.out.Reset()
	start := r.out.CurPosition()

	// Length and sequence placeholders, patched below.
	r.out.Output([]byte{0, 0})
	EncodeVLQUint(r.out, uint32(id))
	if encode != nil {
		encode(r.out)
	}

	frameLen := r.out.CurPosition() - start + FrameTrailerSize
	if frameLen > FrameLengthMax {
		return ErrFrameTooLarge
	}
	r.out.Update(start, byte(frameLen))
	r.out.Update(start+1, frameSeqTag|(r.seq&frameSeqMask))
	r.seq++

	crc := CRC16(r.out.DataSince(start))
	r.out.Output([]byte{byte(crc >> 8), byte(crc & 0xFF), FrameSyncByte})

	_, err := r.w.Write(r.out.DataSince(start))
	return err
}

// Decoder reassembles frames from the raw byte stream on the host side.
// Garbage, truncated frames, and CRC failures are skipped by scanning
// forward to the next sync byte.
type Decoder struct {
	buf     []byte
	synced  bool
	haveSeq bool
	nextSeq uint8
}

// NewDecoder creates a stream decoder.
func NewDecoder() *Decoder {
	return &Decoder{synced: true}
}

// Feed appends raw bytes read from the transport.
func (d *Decoder) Feed(p []byte) {
	d.buf = append(d.buf, p...)
}

// Next extracts the next complete frame's content. lost counts frames
// skipped since the previous one, judged by the sequence nibble. ok is
// false when no complete frame is buffered yet.
func (d *Decoder) Next() (content []byte, lost int, ok bool) {
	for len(d.buf) > 0 {
		if !d.synced {
			// Look for a sync byte to resynchronize on.
			syncPos := -1
			for i, b := range d.buf {
				if b == FrameSyncByte {
					syncPos = i
					break
				}
			}
			if syncPos < 0 {
				d.buf = d.buf[:0]
				return nil, 0, false
			}
			d.buf = d.buf[syncPos+1:]
			d.synced = true
			continue
		}

		// Skip leading sync bytes.
		if d.buf[0] == FrameSyncByte {
			d.buf = d.buf[1:]
			continue
		}

		if len(d.buf) < FrameLengthMin {
			return nil, 0, false
		}

		frameLen := int(d.buf[0])
		if frameLen < FrameLengthMin || frameLen > FrameLengthMax {
			d.synced = false
			continue
		}

		seq := d.buf[1]
		if seq&^byte(frameSeqMask) != frameSeqTag {
			d.synced = false
			continue
		}

		if len(d.buf) < frameLen {
			// Wait for the rest of the frame.
			return nil, 0, false
		}

		if d.buf[frameLen-1] != FrameSyncByte {
			d.synced = false
			continue
		}

		wantCRC := uint16(d.buf[frameLen-FrameTrailerSize])<<8 |
			uint16(d.buf[frameLen-FrameTrailerSize+1])
		if CRC16(d.buf[:frameLen-FrameTrailerSize]) != wantCRC {
			d.synced = false
			continue
		}

		content = append([]byte(nil), d.buf[FrameHeaderSize:frameLen-FrameTrailerSize]...)
		d.buf = d.buf[frameLen:]

		seqNum := seq & frameSeqMask
		if d.haveSeq {
			lost = int((seqNum - d.nextSeq) & frameSeqMask)
		}
		d.haveSeq = true
		d.nextSeq = (seqNum + 1) & frameSeqMask

		return content, lost, true
	}
	return nil, 0, false
}
