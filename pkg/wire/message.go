package wire

import (
	"fmt"
	"math"
	"strings"
)

// Frame layout constants.
const (
	// DevicePort is the port value addressing the device itself.
	DevicePort uint8 = 255

	// HeaderSize covers type, length, address, port and payload type.
	HeaderSize = 5

	// TimestampSize is the size of the optional seconds/ticks timestamp.
	TimestampSize = 6

	// ChecksumSize is the size of the trailing checksum.
	ChecksumSize = 1

	// MinMessageSize is the size of a message with no timestamp or payload.
	MinMessageSize = HeaderSize + ChecksumSize

	// MaxMessageSize is bounded by the one-byte length field.
	MaxMessageSize = 255 + 2
)

// TickSeconds is the resolution of the sub-second timestamp field.
const TickSeconds = 32e-6

const maxTicks = 31249

// Message is a single Harp message.
//
// PayloadType holds the element type only; the timestamp flag is derived
// from HasTimestamp when the message is encoded.
type Message struct {
	Type         MessageType
	Address      uint8
	Port         uint8
	PayloadType  PayloadType
	HasTimestamp bool
	Timestamp    float64 // device seconds, valid when HasTimestamp is set
	Payload      []byte
}

// NewRead returns a read request for the given register address.
// Read requests carry the payload type but no payload bytes.
func NewRead(address uint8, pt PayloadType) *Message {
	return &Message{
		Type:        MessageRead,
		Address:     address,
		Port:        DevicePort,
		PayloadType: pt.Element(),
	}
}

// NewWrite returns a write request carrying payload.
func NewWrite(address uint8, pt PayloadType, payload []byte) *Message {
	return &Message{
		Type:        MessageWrite,
		Address:     address,
		Port:        DevicePort,
		PayloadType: pt.Element(),
		Payload:     payload,
	}
}

// Seconds returns the device timestamp, if the message carries one.
func (m *Message) Seconds() (float64, bool) {
	return m.Timestamp, m.HasTimestamp
}

// SetTimestamp attaches a device timestamp to the message.
func (m *Message) SetTimestamp(seconds float64) {
	m.Timestamp = seconds
	m.HasTimestamp = true
}

// Size returns the encoded size of the message in bytes.
func (m *Message) Size() int {
	n := MinMessageSize + len(m.Payload)
	if m.HasTimestamp {
		n += TimestampSize
	}
	return n
}

// Validate checks that the message can be encoded.
func (m *Message) Validate() error {
	if !m.Type.IsValid() {
		return fmt.Errorf("%w: 0x%02x", ErrInvalidMessageType, uint8(m.Type))
	}
	if !m.PayloadType.IsValid() {
		return fmt.Errorf("%w: 0x%02x", ErrInvalidPayloadType, uint8(m.PayloadType))
	}
	if len(m.Payload)%m.PayloadType.Size() != 0 {
		return fmt.Errorf("%w: %d bytes of %s", ErrPayloadSize, len(m.Payload), m.PayloadType)
	}
	if m.Size() > MaxMessageSize {
		return fmt.Errorf("%w: %d bytes", ErrMessageTooLarge, m.Size())
	}
	if m.HasTimestamp && (m.Timestamp < 0 || m.Timestamp >= math.MaxUint32+1) {
		return fmt.Errorf("%w: %g", ErrInvalidTimestamp, m.Timestamp)
	}
	return nil
}

// String returns a compact human-readable form of the message.
func (m *Message) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s addr=%d port=%d %s", m.Type, m.Address, m.Port, m.PayloadType)
	if m.HasTimestamp {
		fmt.Fprintf(&b, " t=%.6f", m.Timestamp)
	}
	if len(m.Payload) > 0 {
		fmt.Fprintf(&b, " [% x]", m.Payload)
	}
	return b.String()
}

// splitSeconds converts seconds into the whole-second and 32 µs tick fields.
func splitSeconds(seconds float64) (uint32, uint16) {
	whole := math.Floor(seconds)
	ticks := math.Round((seconds - whole) / TickSeconds)
	if ticks > maxTicks {
		ticks = maxTicks
	}
	return uint32(whole), uint16(ticks)
}

func joinSeconds(whole uint32, ticks uint16) float64 {
	return float64(whole) + float64(ticks)*TickSeconds
}
