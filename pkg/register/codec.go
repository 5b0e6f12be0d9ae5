package register

import (
	"encoding/binary"
	"fmt"

	"github.com/harp-protocol/harp-go/pkg/wire"
)

// Timestamped pairs a decoded value with the device time of the observation.
type Timestamped[T any] struct {
	Seconds float64
	Value   T
}

// DecodeRaw extracts the integer value of d from m.
// The payload must be exactly d.Width bytes; two-byte values are little-endian.
func DecodeRaw(d Descriptor, m *wire.Message) (uint16, error) {
	if m.Address != d.Address {
		return 0, fmt.Errorf("%w: %s expects address %d, got %d", ErrAddressMismatch, d.Name, d.Address, m.Address)
	}
	if len(m.Payload) != int(d.Width) {
		return 0, fmt.Errorf("%w: %s expects %d bytes, got %d", ErrMalformedPayload, d.Name, d.Width, len(m.Payload))
	}
	if d.Width == Width8 {
		return uint16(m.Payload[0]), nil
	}
	return binary.LittleEndian.Uint16(m.Payload), nil
}

// DecodeRawTimestamped is like DecodeRaw but also requires a device timestamp.
func DecodeRawTimestamped(d Descriptor, m *wire.Message) (Timestamped[uint16], error) {
	if !m.HasTimestamp {
		return Timestamped[uint16]{}, fmt.Errorf("%w: %s at address %d", ErrMissingTimestamp, d.Name, m.Address)
	}
	v, err := DecodeRaw(d, m)
	if err != nil {
		return Timestamped[uint16]{}, err
	}
	return Timestamped[uint16]{Seconds: m.Timestamp, Value: v}, nil
}

// EncodeRaw builds a message of type t carrying v in the width of d.
func EncodeRaw(d Descriptor, t wire.MessageType, v uint16) (*wire.Message, error) {
	if v > d.Width.Max() {
		return nil, fmt.Errorf("%w: %d for %s", ErrValueOutOfRange, v, d.Name)
	}
	return encode(d, t, v), nil
}

// EncodeRawTimestamped is like EncodeRaw and attaches a device timestamp.
// Hosts never timestamp requests; this is for replies in tests and replay.
func EncodeRawTimestamped(d Descriptor, t wire.MessageType, seconds float64, v uint16) (*wire.Message, error) {
	m, err := EncodeRaw(d, t, v)
	if err != nil {
		return nil, err
	}
	m.SetTimestamp(seconds)
	return m, nil
}

// ReadRequest builds a read request for d.
func ReadRequest(d Descriptor) *wire.Message {
	return wire.NewRead(d.Address, d.PayloadType())
}

func encode(d Descriptor, t wire.MessageType, v uint16) *wire.Message {
	payload := make([]byte, d.Width)
	if d.Width == Width8 {
		payload[0] = byte(v)
	} else {
		binary.LittleEndian.PutUint16(payload, v)
	}
	return &wire.Message{
		Type:        t,
		Address:     d.Address,
		Port:        wire.DevicePort,
		PayloadType: d.PayloadType(),
		Payload:     payload,
	}
}
