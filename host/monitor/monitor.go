// Package monitor decodes the fixture's telemetry stream and renders it
// as human-readable lines.
package monitor

import (
	"errors"
	"fmt"
	"io"

	"ledmonger/protocol"
)

// Monitor reads raw frame bytes from the fixture and prints one line
// per decoded report.
type Monitor struct {
	in  io.Reader
	out io.Writer
	dec *protocol.Decoder
	cfg Config
}

// New creates a Monitor reading from in and printing to out.
func New(in io.Reader, out io.Writer, cfg Config) *Monitor {
	return &Monitor{
		in:  in,
		out: out,
		dec: protocol.NewDecoder(),
		cfg: cfg,
	}
}

// Run pumps the stream until EOF or a read error. Undecodable frames
// are reported and skipped, never fatal: the fixture may be mid-frame
// when the monitor attaches.
func (m *Monitor) Run() error {
	buf := make([]byte, 256)
	for {
		n, err := m.in.Read(buf)
		if n > 0 {
			m.dec.Feed(buf[:n])
			m.drain()
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read telemetry stream: %w", err)
		}
	}
}

func (m *Monitor) drain() {
	for {
		content, lost, ok := m.dec.Next()
		if !ok {
			return
		}
		if lost > 0 {
			fmt.Fprintf(m.out, "telemetry: %d frame(s) lost\n", lost)
		}
		m.printReport(content)
	}
}

func (m *Monitor) printReport(content []byte) {
	report, err := protocol.DecodeReport(content)
	if err != nil {
		fmt.Fprintf(m.out, "telemetry: undecodable frame: %v\n", err)
		return
	}

	switch r := report.(type) {
	case protocol.PotChange:
		if r.Initial {
			fmt.Fprintf(m.out, "pot bin=%d (initial)\n", r.Bin)
		} else {
			fmt.Fprintf(m.out, "pot bin=%d\n", r.Bin)
		}
	case protocol.EncoderStep:
		fmt.Fprintf(m.out, "encoder index=%d count=%d\n", r.Index, r.Count)
	case protocol.Heartbeat:
		if m.cfg.ShowHeartbeat {
			fmt.Fprintf(m.out, "heartbeat ticks=%d program=%d frequency=%d\n",
				r.Ticks, r.Program, r.Frequency)
		}
	}
}
