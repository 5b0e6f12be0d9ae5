package log

import (
	"time"

	"github.com/harp-protocol/harp-go/pkg/wire"
)

// Event is a protocol log record captured at any layer.
// CBOR encoding uses integer keys.
type Event struct {
	// Timestamp is the host time of the event.
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID identifies the transport instance (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	Direction Direction `cbor:"3,keyasint"`
	Layer     Layer     `cbor:"4,keyasint"`
	Category  Category  `cbor:"5,keyasint"`

	// LocalRole tells whether the host or a simulated device logged the event.
	LocalRole Role `cbor:"6,keyasint,omitempty"`

	// Port is the transport identifier, such as a serial port name.
	Port string `cbor:"7,keyasint,omitempty"`

	// Device is the device family name, set once the catalog is known.
	Device string `cbor:"8,keyasint,omitempty"`

	// Exactly one of these is set.
	Frame       *FrameEvent       `cbor:"10,keyasint,omitempty"`
	Message     *MessageEvent     `cbor:"11,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"13,keyasint,omitempty"`
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	DirectionIn  Direction = 0
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which part of the stack captured the event.
type Layer uint8

const (
	// LayerTransport is the byte framing layer.
	LayerTransport Layer = 0
	// LayerWire is the decoded message layer.
	LayerWire Layer = 1
	// LayerChannel is the command/response channel.
	LayerChannel Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerWire:
		return "WIRE"
	case LayerChannel:
		return "CHANNEL"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event.
type Category uint8

const (
	// CategoryMessage is a request or a reply.
	CategoryMessage Category = 0
	// CategoryEvent is an unsolicited device event.
	CategoryEvent Category = 1
	// CategoryState is a state change.
	CategoryState Category = 2
	// CategoryError is an error at any layer.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryEvent:
		return "EVENT"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Role tells which side of the link produced the log.
type Role uint8

const (
	RoleHost   Role = 0
	RoleDevice Role = 1
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleHost:
		return "HOST"
	case RoleDevice:
		return "DEVICE"
	default:
		return "UNKNOWN"
	}
}

// FrameEvent captures raw bytes at the transport layer.
type FrameEvent struct {
	// Size is the frame size in bytes.
	Size int `cbor:"1,keyasint"`

	// Data is the raw frame, possibly truncated.
	Data []byte `cbor:"2,keyasint,omitempty"`

	Truncated bool `cbor:"3,keyasint,omitempty"`
}

// MessageEvent captures a decoded Harp message.
type MessageEvent struct {
	Type        wire.MessageType `cbor:"1,keyasint"`
	Address     uint8            `cbor:"2,keyasint"`
	Port        uint8            `cbor:"3,keyasint"`
	PayloadType wire.PayloadType `cbor:"4,keyasint"`
	Payload     []byte           `cbor:"5,keyasint,omitempty"`

	// Seconds is the device timestamp, if the message carried one.
	Seconds *float64 `cbor:"6,keyasint,omitempty"`

	// Register is the register name when the address is in the catalog.
	Register string `cbor:"7,keyasint,omitempty"`

	// Discarded marks a reply no pending command claimed.
	Discarded bool `cbor:"8,keyasint,omitempty"`

	// RoundTrip is the time from request send to reply receipt (replies only).
	RoundTrip *time.Duration `cbor:"9,keyasint,omitempty"`
}

// NewMessageEvent copies the loggable fields of m.
func NewMessageEvent(m *wire.Message) *MessageEvent {
	ev := &MessageEvent{
		Type:        m.Type,
		Address:     m.Address,
		Port:        m.Port,
		PayloadType: m.PayloadType,
	}
	if len(m.Payload) > 0 {
		ev.Payload = append([]byte(nil), m.Payload...)
	}
	if s, ok := m.Seconds(); ok {
		ev.Seconds = &s
	}
	return ev
}

// StateChangeEvent captures lifecycle transitions.
type StateChangeEvent struct {
	Entity   StateEntity `cbor:"1,keyasint"`
	OldState string      `cbor:"2,keyasint,omitempty"`
	NewState string      `cbor:"3,keyasint"`
	Reason   string      `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what changed state.
type StateEntity uint8

const (
	// StateEntityTransport is the port or stream.
	StateEntityTransport StateEntity = 0
	// StateEntityChannel is the command/response channel.
	StateEntityChannel StateEntity = 1
	// StateEntityHandshake is the identity handshake.
	StateEntityHandshake StateEntity = 2
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityTransport:
		return "TRANSPORT"
	case StateEntityChannel:
		return "CHANNEL"
	case StateEntityHandshake:
		return "HANDSHAKE"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures an error at any layer.
type ErrorEventData struct {
	Layer   Layer  `cbor:"1,keyasint"`
	Message string `cbor:"2,keyasint"`

	// Context describes the operation that failed.
	Context string `cbor:"3,keyasint,omitempty"`
}
