// Package radio owns the serial-attached RF modem carrying CC1 frames.
//
// The link delivers fixed-length frames and classifies them by the leading
// type byte so the hub can pick the matching decoder. Decoding and CRC
// verification stay in the codec; retransmission and backoff policy stay
// with the hub.
package radio

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"go.bug.st/serial"

	"github.com/thatsimonsguy/cc1-hub/internal/protocol/cc1"
)

// Frame is one raw frame off the air, classified but not yet decoded.
type Frame struct {
	Kind cc1.Kind
	Buf  [cc1.FrameLen]byte
}

// Link frames the byte stream from the RF modem.
type Link struct {
	port io.ReadWriteCloser
}

// Open opens the modem serial port.
func Open(device string, baud int) (*Link, error) {
	port, err := serial.Open(device, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", device, err)
	}
	log.Info().Str("device", device).Int("baud", baud).Msg("Radio link opened")
	return &Link{port: port}, nil
}

// NewLink wraps an already-open port. Used by tests and by modems exposed
// through something other than a local serial device.
func NewLink(port io.ReadWriteCloser) *Link {
	return &Link{port: port}
}

// ReadFrame blocks until a full frame with a recognized type tag has been
// read. Bytes that cannot start a frame are discarded as carrier noise.
func (l *Link) ReadFrame() (Frame, error) {
	var skipped int
	var b [1]byte
	for {
		if _, err := io.ReadFull(l.port, b[:]); err != nil {
			return Frame{}, fmt.Errorf("read frame type byte: %w", err)
		}
		kind := cc1.FrameKind(b[0])
		if kind == cc1.KindUnknown {
			skipped++
			continue
		}
		if skipped > 0 {
			log.Debug().Int("bytes", skipped).Msg("Discarded noise before frame start")
		}

		var f Frame
		f.Kind = kind
		f.Buf[0] = b[0]
		if _, err := io.ReadFull(l.port, f.Buf[1:]); err != nil {
			return Frame{}, fmt.Errorf("read frame body: %w", err)
		}
		return f, nil
	}
}

// WriteFrame transmits one encoded frame.
func (l *Link) WriteFrame(buf []byte) error {
	if len(buf) != cc1.FrameLen {
		return fmt.Errorf("frame must be %d bytes, got %d", cc1.FrameLen, len(buf))
	}
	if _, err := l.port.Write(buf); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Close releases the serial port.
func (l *Link) Close() error {
	return l.port.Close()
}
