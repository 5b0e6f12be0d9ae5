package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/harp-protocol/harp-go/pkg/wire"
	"github.com/rs/zerolog"
)

type recordingLogger struct {
	events []Event
}

func (r *recordingLogger) Log(e Event) {
	r.events = append(r.events, e)
}

func messageEvent() Event {
	seconds := 1.5
	return Event{
		Timestamp:    time.Now(),
		ConnectionID: "0123456789abcdef",
		Direction:    DirectionIn,
		Layer:        LayerWire,
		Category:     CategoryEvent,
		Port:         "COM3",
		Message: &MessageEvent{
			Type:        wire.MessageEvent,
			Address:     40,
			PayloadType: wire.PayloadU8,
			Payload:     []byte{0x01},
			Seconds:     &seconds,
			Register:    "Camera0Trigger",
		},
	}
}

func TestSlogAdapterLogsMessageEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	NewSlogAdapter(logger).Log(messageEvent())

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}

	checks := map[string]any{
		"msg":            "protocol",
		"direction":      "IN",
		"layer":          "WIRE",
		"category":       "EVENT",
		"msg_type":       "Event",
		"address":        float64(40),
		"register":       "Camera0Trigger",
		"payload":        "01",
		"device_seconds": 1.5,
		"port":           "COM3",
	}
	for k, want := range checks {
		if entry[k] != want {
			t.Errorf("%s: got %v, want %v", k, entry[k], want)
		}
	}
}

func TestSlogAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	NewSlogAdapter(logger).Log(messageEvent())

	if buf.Len() != 0 {
		t.Errorf("expected no output at Info level, got %q", buf.String())
	}
}

func TestZerologAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	NewZerologAdapter(logger).Log(messageEvent())

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	if entry["level"] != "debug" {
		t.Errorf("level: got %v, want debug", entry["level"])
	}
	if entry["conn_id"] != "01234567" {
		t.Errorf("conn_id: got %v, want shortened id", entry["conn_id"])
	}
	if entry["register"] != "Camera0Trigger" {
		t.Errorf("register: got %v", entry["register"])
	}
}

func TestZerologAdapterErrorsAtWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.WarnLevel)

	adapter := NewZerologAdapter(logger)
	adapter.Log(messageEvent())
	adapter.Log(Event{
		Layer:    LayerChannel,
		Category: CategoryError,
		Error:    &ErrorEventData{Layer: LayerTransport, Message: "port closed", Context: "receive"},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"error":"port closed"`) {
		t.Errorf("missing error field: %s", lines[0])
	}
}

func TestMultiLoggerSkipsNil(t *testing.T) {
	a, b := &recordingLogger{}, &recordingLogger{}
	m := NewMultiLogger(a, nil, b)

	m.Log(messageEvent())

	if len(a.events) != 1 || len(b.events) != 1 {
		t.Errorf("events: a=%d b=%d, want 1 each", len(a.events), len(b.events))
	}
}

func TestOrNoop(t *testing.T) {
	if _, ok := OrNoop(nil).(NoopLogger); !ok {
		t.Error("OrNoop(nil) should return NoopLogger")
	}
	r := &recordingLogger{}
	if OrNoop(r) != Logger(r) {
		t.Error("OrNoop should return a non-nil logger unchanged")
	}
	NoopLogger{}.Log(Event{})
}
