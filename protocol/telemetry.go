package protocol

import "fmt"

// MessageID identifies a telemetry report type.
type MessageID uint8

const (
	// MsgPotChange reports a committed potentiometer bin.
	// Payload: bin, initial.
	MsgPotChange MessageID = 0x01

	// MsgEncoderStep reports an accepted encoder step.
	// Payload: index, count.
	MsgEncoderStep MessageID = 0x02

	// MsgHeartbeat reports fixture liveness.
	// Payload: ticks, program, frequency.
	MsgHeartbeat MessageID = 0x03
)

// ErrUnknownReport is wrapped into errors for message IDs the host does
// not know.
var ErrUnknownReport = fmt.Errorf("unknown telemetry report")

// Report is a decoded telemetry report.
type Report interface {
	report()
}

// PotChange is a committed potentiometer bin change. Initial marks the
// cold-start seed, which commits unconditionally.
type PotChange struct {
	Bin     uint8
	Initial bool
}

// EncoderStep is an accepted quadrature step. Index is the bounded
// setting; Count the free-running step counter at the time of report.
type EncoderStep struct {
	Index uint8
	Count int32
}

// Heartbeat is the periodic liveness report from the foreground loop.
type Heartbeat struct {
	Ticks     uint32
	Program   uint8
	Frequency uint16
}

func (PotChange) report()   {}
func (EncoderStep) report() {}
func (Heartbeat) report()   {}

// DecodeReport parses one frame's content into a typed report.
func DecodeReport(content []byte) (Report, error) {
	data := content
	id, err := DecodeVLQUint(&data)
	if err != nil {
		return nil, fmt.Errorf("report id: %w", err)
	}

	switch MessageID(id) {
	case MsgPotChange:
		bin, err := DecodeVLQUint(&data)
		if err != nil {
			return nil, fmt.Errorf("pot_change bin: %w", err)
		}
		initial, err := DecodeVLQUint(&data)
		if err != nil {
			return nil, fmt.Errorf("pot_change initial: %w", err)
		}
		return PotChange{Bin: uint8(bin), Initial: initial != 0}, nil

	case MsgEncoderStep:
		index, err := DecodeVLQUint(&data)
		if err != nil {
			return nil, fmt.Errorf("encoder_step index: %w", err)
		}
		count, err := DecodeVLQInt(&data)
		if err != nil {
			return nil, fmt.Errorf("encoder_step count: %w", err)
		}
		return EncoderStep{Index: uint8(index), Count: count}, nil

	case MsgHeartbeat:
		ticks, err := DecodeVLQUint(&data)
		if err != nil {
			return nil, fmt.Errorf("heartbeat ticks: %w", err)
		}
		program, err := DecodeVLQUint(&data)
		if err != nil {
			return nil, fmt.Errorf("heartbeat program: %w", err)
		}
		frequency, err := DecodeVLQUint(&data)
		if err != nil {
			return nil, fmt.Errorf("heartbeat frequency: %w", err)
		}
		return Heartbeat{
			Ticks:     ticks,
			Program:   uint8(program),
			Frequency: uint16(frequency),
		}, nil
	}

	return nil, fmt.Errorf("%w: id %d", ErrUnknownReport, id)
}
