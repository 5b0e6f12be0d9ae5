package wire

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestEncodeKnownFrames(t *testing.T) {
	tests := []struct {
		name string
		msg  *Message
		want []byte
	}{
		{
			name: "read whoami",
			msg:  NewRead(0, PayloadU16),
			want: []byte{0x01, 0x04, 0x00, 0xFF, 0x02, 0x06},
		},
		{
			name: "write u16",
			msg:  NewWrite(50, PayloadU16, []byte{0x1E, 0x00}),
			want: []byte{0x02, 0x06, 0x32, 0xFF, 0x02, 0x1E, 0x00, 0x59},
		},
		{
			name: "timestamped event",
			msg: &Message{
				Type:         MessageEvent,
				Address:      40,
				Port:         DevicePort,
				PayloadType:  PayloadU8,
				HasTimestamp: true,
				Timestamp:    12,
				Payload:      []byte{0x01},
			},
			want: []byte{0x03, 0x0B, 0x28, 0xFF, 0x11, 0x0C, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x53},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.msg)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Encode = % x, want % x", got, tt.want)
			}
		})
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  *Message
	}{
		{"read request", NewRead(32, PayloadU8)},
		{"write request", NewWrite(54, PayloadU16, []byte{0x34, 0x12})},
		{"error reply", &Message{Type: MessageWrite.WithError(), Address: 44, Port: DevicePort, PayloadType: PayloadU8, Payload: []byte{0x03}}},
		{"timestamped reply", &Message{Type: MessageRead, Address: 0, Port: DevicePort, PayloadType: PayloadU16, HasTimestamp: true, Timestamp: 1234.5, Payload: []byte{0x90, 0x04}}},
		{"multi element", NewWrite(60, PayloadS32, []byte{1, 2, 3, 4, 5, 6, 7, 8})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.msg)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			got, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			if got.Type != tt.msg.Type {
				t.Errorf("Type: got %v, want %v", got.Type, tt.msg.Type)
			}
			if got.Address != tt.msg.Address {
				t.Errorf("Address: got %d, want %d", got.Address, tt.msg.Address)
			}
			if got.PayloadType != tt.msg.PayloadType {
				t.Errorf("PayloadType: got %v, want %v", got.PayloadType, tt.msg.PayloadType)
			}
			if got.HasTimestamp != tt.msg.HasTimestamp {
				t.Errorf("HasTimestamp: got %v, want %v", got.HasTimestamp, tt.msg.HasTimestamp)
			}
			if math.Abs(got.Timestamp-tt.msg.Timestamp) > TickSeconds {
				t.Errorf("Timestamp: got %f, want %f", got.Timestamp, tt.msg.Timestamp)
			}
			if !bytes.Equal(got.Payload, tt.msg.Payload) {
				t.Errorf("Payload: got % x, want % x", got.Payload, tt.msg.Payload)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	valid := []byte{0x02, 0x06, 0x32, 0xFF, 0x02, 0x1E, 0x00, 0x59}

	corrupt := func(i int, b byte) []byte {
		out := append([]byte(nil), valid...)
		out[i] = b
		return out
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrTruncated},
		{"short", valid[:4], ErrTruncated},
		{"length mismatch", corrupt(1, 0x07), ErrInvalidLength},
		{"bad checksum", corrupt(7, 0x00), ErrChecksumMismatch},
		{"bad message type", withChecksum(corrupt(0, 0x05)), ErrInvalidMessageType},
		{"bad payload type", withChecksum(corrupt(4, 0x03)), ErrInvalidPayloadType},
		{"odd u16 payload", withChecksum([]byte{0x02, 0x05, 0x32, 0xFF, 0x02, 0x1E, 0x00}), ErrPayloadSize},
		{"missing timestamp bytes", withChecksum([]byte{0x03, 0x06, 0x28, 0xFF, 0x11, 0x01, 0x02, 0x00}), ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode error = %v, want %v", err, tt.want)
			}
		})
	}
}

// withChecksum replaces the last byte of data with the checksum of the rest.
func withChecksum(data []byte) []byte {
	data[len(data)-1] = Checksum(data[:len(data)-1])
	return data
}

func TestEncodeRejectsInvalidMessages(t *testing.T) {
	tests := []struct {
		name string
		msg  *Message
		want error
	}{
		{"bad type", &Message{Type: 7, PayloadType: PayloadU8}, ErrInvalidMessageType},
		{"bad payload type", &Message{Type: MessageRead, PayloadType: 0x03}, ErrInvalidPayloadType},
		{"odd payload", NewWrite(50, PayloadU16, []byte{0x01}), ErrPayloadSize},
		{"too large", NewWrite(50, PayloadU8, make([]byte, 300)), ErrMessageTooLarge},
		{"negative timestamp", &Message{Type: MessageEvent, PayloadType: PayloadU8, HasTimestamp: true, Timestamp: -1}, ErrInvalidTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.msg)
			if !errors.Is(err, tt.want) {
				t.Errorf("Encode error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeDoesNotAliasInput(t *testing.T) {
	data := []byte{0x02, 0x06, 0x32, 0xFF, 0x02, 0x1E, 0x00, 0x59}
	msg, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	data[5] = 0xAA
	if msg.Payload[0] != 0x1E {
		t.Errorf("payload changed with input buffer: % x", msg.Payload)
	}
}

func TestTimestampTicks(t *testing.T) {
	tests := []struct {
		seconds   float64
		wantWhole uint32
		wantTicks uint16
	}{
		{0, 0, 0},
		{1.5, 1, 15625},
		{10.000032, 10, 1},
		{3.9999999, 3, maxTicks},
	}

	for _, tt := range tests {
		whole, ticks := splitSeconds(tt.seconds)
		if whole != tt.wantWhole || ticks != tt.wantTicks {
			t.Errorf("splitSeconds(%v) = %d, %d; want %d, %d", tt.seconds, whole, ticks, tt.wantWhole, tt.wantTicks)
		}
	}

	if got := joinSeconds(2, 15625); math.Abs(got-2.5) > 1e-9 {
		t.Errorf("joinSeconds(2, 15625) = %v, want 2.5", got)
	}
}

func TestFrameSize(t *testing.T) {
	if got := FrameSize([]byte{0x01, 0x04}); got != 6 {
		t.Errorf("FrameSize = %d, want 6", got)
	}
	if got := FrameSize([]byte{0x01}); got != 0 {
		t.Errorf("FrameSize of short header = %d, want 0", got)
	}
}
