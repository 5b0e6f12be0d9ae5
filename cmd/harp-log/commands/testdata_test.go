package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/harp-protocol/harp-go/pkg/log"
	"github.com/harp-protocol/harp-go/pkg/wire"
)

var baseTime = time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.hlog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("failed to close logger: %v", err)
	}
	return path
}

// session returns a write of Camera0Frequency followed by its reply and a
// timestamped Camera1Trigger event.
func session() []log.Event {
	rtt := 1500 * time.Microsecond
	secs := 12.5
	return []log.Event{
		{
			Timestamp:    baseTime,
			ConnectionID: "abc12345-6789-0123-4567-890abcdef012",
			Direction:    log.DirectionOut,
			Layer:        log.LayerWire,
			Category:     log.CategoryMessage,
			Port:         "/dev/ttyUSB0",
			Device:       "CameraController",
			Message: &log.MessageEvent{
				Type:        wire.MessageWrite,
				Address:     50,
				Port:        255,
				PayloadType: wire.PayloadU16,
				Payload:     []byte{0x3c, 0x00},
				Register:    "Camera0Frequency",
			},
		},
		{
			Timestamp:    baseTime.Add(rtt),
			ConnectionID: "abc12345-6789-0123-4567-890abcdef012",
			Direction:    log.DirectionIn,
			Layer:        log.LayerWire,
			Category:     log.CategoryMessage,
			Port:         "/dev/ttyUSB0",
			Device:       "CameraController",
			Message: &log.MessageEvent{
				Type:        wire.MessageWrite,
				Address:     50,
				Port:        255,
				PayloadType: wire.PayloadU16.WithTimestamp(),
				Payload:     []byte{0x3c, 0x00},
				Seconds:     &secs,
				Register:    "Camera0Frequency",
				RoundTrip:   &rtt,
			},
		},
		{
			Timestamp:    baseTime.Add(time.Second),
			ConnectionID: "abc12345-6789-0123-4567-890abcdef012",
			Direction:    log.DirectionIn,
			Layer:        log.LayerWire,
			Category:     log.CategoryEvent,
			Port:         "/dev/ttyUSB0",
			Message: &log.MessageEvent{
				Type:        wire.MessageEvent,
				Address:     41,
				Port:        255,
				PayloadType: wire.PayloadU8.WithTimestamp(),
				Payload:     []byte{0x01},
				Seconds:     &secs,
				Register:    "Camera1Trigger",
			},
		},
	}
}
