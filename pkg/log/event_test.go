package log

import (
	"testing"
	"time"

	"github.com/harp-protocol/harp-go/pkg/wire"
)

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"direction in", DirectionIn.String(), "IN"},
		{"direction out", DirectionOut.String(), "OUT"},
		{"direction unknown", Direction(9).String(), "UNKNOWN"},
		{"layer transport", LayerTransport.String(), "TRANSPORT"},
		{"layer wire", LayerWire.String(), "WIRE"},
		{"layer channel", LayerChannel.String(), "CHANNEL"},
		{"category event", CategoryEvent.String(), "EVENT"},
		{"category error", CategoryError.String(), "ERROR"},
		{"role device", RoleDevice.String(), "DEVICE"},
		{"entity handshake", StateEntityHandshake.String(), "HANDSHAKE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestNewMessageEventCopiesPayload(t *testing.T) {
	msg := wire.NewWrite(50, wire.PayloadU16, []byte{0x1E, 0x00})
	msg.SetTimestamp(3.5)

	ev := NewMessageEvent(msg)
	msg.Payload[0] = 0xFF

	if ev.Payload[0] != 0x1E {
		t.Errorf("payload aliased the message: % x", ev.Payload)
	}
	if ev.Seconds == nil || *ev.Seconds != 3.5 {
		t.Errorf("Seconds: got %v, want 3.5", ev.Seconds)
	}
	if ev.Address != 50 || ev.Type != wire.MessageWrite {
		t.Errorf("unexpected header: %+v", ev)
	}
}

func TestEventRoundTrip(t *testing.T) {
	rtt := 3 * time.Millisecond
	seconds := 12.25
	events := []Event{
		{
			Timestamp:    time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC),
			ConnectionID: "conn-1",
			Direction:    DirectionOut,
			Layer:        LayerTransport,
			Category:     CategoryMessage,
			Port:         "/dev/ttyUSB0",
			Frame:        &FrameEvent{Size: 6, Data: []byte{1, 4, 0, 255, 2, 6}},
		},
		{
			Timestamp:    time.Date(2026, 1, 2, 3, 4, 5, 7, time.UTC),
			ConnectionID: "conn-1",
			Direction:    DirectionIn,
			Layer:        LayerWire,
			Category:     CategoryMessage,
			Device:       "CameraController",
			Message: &MessageEvent{
				Type:        wire.MessageRead,
				Address:     0,
				Port:        wire.DevicePort,
				PayloadType: wire.PayloadU16,
				Payload:     []byte{0x90, 0x04},
				Seconds:     &seconds,
				Register:    "WhoAmI",
				RoundTrip:   &rtt,
			},
		},
		{
			Timestamp:   time.Date(2026, 1, 2, 3, 4, 5, 8, time.UTC),
			Layer:       LayerChannel,
			Category:    CategoryState,
			StateChange: &StateChangeEvent{Entity: StateEntityHandshake, OldState: "Unverified", NewState: "Verified"},
		},
		{
			Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 9, time.UTC),
			Layer:     LayerChannel,
			Category:  CategoryError,
			Error:     &ErrorEventData{Layer: LayerTransport, Message: "EOF", Context: "receive"},
		},
	}

	for _, want := range events {
		data, err := EncodeEvent(want)
		if err != nil {
			t.Fatalf("EncodeEvent failed: %v", err)
		}
		got, err := DecodeEvent(data)
		if err != nil {
			t.Fatalf("DecodeEvent failed: %v", err)
		}

		if !got.Timestamp.Equal(want.Timestamp) {
			t.Errorf("Timestamp: got %v, want %v", got.Timestamp, want.Timestamp)
		}
		if got.Category != want.Category || got.Layer != want.Layer || got.Direction != want.Direction {
			t.Errorf("header mismatch: got %+v, want %+v", got, want)
		}
		switch {
		case want.Frame != nil:
			if got.Frame == nil || got.Frame.Size != want.Frame.Size {
				t.Errorf("Frame: got %+v", got.Frame)
			}
		case want.Message != nil:
			if got.Message == nil {
				t.Fatal("Message is nil")
			}
			if got.Message.Register != "WhoAmI" || *got.Message.Seconds != seconds || *got.Message.RoundTrip != rtt {
				t.Errorf("Message: got %+v", got.Message)
			}
		case want.StateChange != nil:
			if got.StateChange == nil || got.StateChange.NewState != "Verified" {
				t.Errorf("StateChange: got %+v", got.StateChange)
			}
		case want.Error != nil:
			if got.Error == nil || got.Error.Context != "receive" {
				t.Errorf("Error: got %+v", got.Error)
			}
		}
	}
}

func TestDecodeEventInvalid(t *testing.T) {
	if _, err := DecodeEvent([]byte{0xFF, 0x00}); err == nil {
		t.Error("expected error for invalid CBOR")
	}
}
