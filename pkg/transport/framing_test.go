package transport

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/harp-protocol/harp-go/pkg/log"
	"github.com/harp-protocol/harp-go/pkg/wire"
)

type captureLogger struct {
	events []log.Event
}

func (c *captureLogger) Log(e log.Event) {
	c.events = append(c.events, e)
}

func encodeFrame(t *testing.T, m *wire.Message) []byte {
	t.Helper()
	data, err := wire.Encode(m)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return data
}

func TestFrameReaderReadsConsecutiveFrames(t *testing.T) {
	a := encodeFrame(t, wire.NewRead(0, wire.PayloadU16))
	b := encodeFrame(t, wire.NewWrite(50, wire.PayloadU16, []byte{0x1E, 0x00}))

	fr := NewFrameReader(bytes.NewReader(append(append([]byte{}, a...), b...)))

	got, err := fr.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}
	if !bytes.Equal(got, a) {
		t.Errorf("first frame = % x, want % x", got, a)
	}

	got, err = fr.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}
	if !bytes.Equal(got, b) {
		t.Errorf("second frame = % x, want % x", got, b)
	}

	if _, err := fr.ReadFrame(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestFrameReaderResyncsAfterGarbage(t *testing.T) {
	frame := encodeFrame(t, wire.NewWrite(32, wire.PayloadU8, []byte{0x03}))

	tests := []struct {
		name    string
		prefix  []byte
		skipped uint64
	}{
		{"invalid type bytes", []byte{0x00, 0xAA, 0x55}, 3},
		{"bad checksum frame", func() []byte {
			bad := encodeFrame(t, wire.NewWrite(33, wire.PayloadU8, []byte{0x01}))
			bad[len(bad)-1] ^= 0xFF
			return bad
		}(), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &captureLogger{}
			input := append(append([]byte{}, tt.prefix...), frame...)
			fr := NewFrameReader(bytes.NewReader(input))
			fr.SetLogger(logger, "conn-1", "COM3")

			got, err := fr.ReadFrame()
			if err != nil {
				t.Fatalf("ReadFrame failed: %v", err)
			}
			if !bytes.Equal(got, frame) {
				t.Errorf("frame = % x, want % x", got, frame)
			}
			if fr.Skipped() != tt.skipped {
				t.Errorf("Skipped = %d, want %d", fr.Skipped(), tt.skipped)
			}

			if len(logger.events) != 2 {
				t.Fatalf("expected resync and frame events, got %d", len(logger.events))
			}
			if logger.events[0].Category != log.CategoryError || logger.events[0].Error.Context != "resync" {
				t.Errorf("first event should report resync: %+v", logger.events[0])
			}
			if logger.events[1].Frame == nil || logger.events[1].Port != "COM3" {
				t.Errorf("second event should capture the frame: %+v", logger.events[1])
			}
		})
	}
}

func TestFrameReaderTruncated(t *testing.T) {
	frame := encodeFrame(t, wire.NewWrite(50, wire.PayloadU16, []byte{0x1E, 0x00}))
	fr := NewFrameReader(bytes.NewReader(frame[:len(frame)-2]))

	if _, err := fr.ReadFrame(); !errors.Is(err, ErrFrameTruncated) {
		t.Errorf("expected ErrFrameTruncated, got %v", err)
	}
}

func TestFrameWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := &captureLogger{}
	fw := NewFrameWriter(&buf)
	fw.SetLogger(logger, "conn-1", "COM3")

	frame := encodeFrame(t, wire.NewRead(0, wire.PayloadU16))
	if err := fw.WriteFrame(frame); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), frame) {
		t.Errorf("written = % x, want % x", buf.Bytes(), frame)
	}
	if len(logger.events) != 1 || logger.events[0].Direction != log.DirectionOut {
		t.Errorf("expected one outbound frame event, got %+v", logger.events)
	}

	if err := fw.WriteFrame(nil); !errors.Is(err, ErrMessageEmpty) {
		t.Errorf("expected ErrMessageEmpty, got %v", err)
	}
	if err := fw.WriteFrame(make([]byte, wire.MaxMessageSize+1)); !errors.Is(err, wire.ErrMessageTooLarge) {
		t.Errorf("expected ErrMessageTooLarge, got %v", err)
	}
}

func TestFramerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	f := NewFramer(&buf)

	frame := encodeFrame(t, wire.NewWrite(46, wire.PayloadU8, []byte{0x05}))
	if err := f.WriteFrame(frame); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	got, err := f.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}
	if !bytes.Equal(got, frame) {
		t.Errorf("frame = % x, want % x", got, frame)
	}
}

type syncLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (s *syncLogger) Log(e log.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *syncLogger) snapshot() []log.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]log.Event(nil), s.events...)
}
