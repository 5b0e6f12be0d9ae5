package wire

// MessageType identifies the direction and kind of a Harp message.
type MessageType uint8

const (
	// MessageRead requests (or answers) a register read.
	MessageRead MessageType = 1

	// MessageWrite requests (or acknowledges) a register write.
	MessageWrite MessageType = 2

	// MessageEvent is sent by the device without a preceding request.
	MessageEvent MessageType = 3

	// ErrorFlag is set by the device on a reply it could not honor.
	ErrorFlag MessageType = 0x08
)

// Base returns the message type with the error flag cleared.
func (t MessageType) Base() MessageType {
	return t &^ ErrorFlag
}

// IsError returns true if the error flag is set.
func (t MessageType) IsError() bool {
	return t&ErrorFlag != 0
}

// WithError returns the message type with the error flag set.
func (t MessageType) WithError() MessageType {
	return t | ErrorFlag
}

// IsValid returns true if the base type is Read, Write or Event and no
// unknown bits are set.
func (t MessageType) IsValid() bool {
	b := t.Base()
	return b >= MessageRead && b <= MessageEvent
}

// String returns the message type name.
func (t MessageType) String() string {
	var name string
	switch t.Base() {
	case MessageRead:
		name = "Read"
	case MessageWrite:
		name = "Write"
	case MessageEvent:
		name = "Event"
	default:
		return "Unknown"
	}
	if t.IsError() {
		return name + "Error"
	}
	return name
}

// PayloadType describes the element type of a message payload.
type PayloadType uint8

const (
	payloadSizeMask PayloadType = 0x0F

	// PayloadSigned marks signed integer elements.
	PayloadSigned PayloadType = 0x80

	// PayloadFloat marks IEEE 754 floating-point elements.
	PayloadFloat PayloadType = 0x40

	// PayloadTimestamp marks a message that carries a device timestamp.
	PayloadTimestamp PayloadType = 0x10
)

// Element types.
const (
	PayloadU8      PayloadType = 0x01
	PayloadS8      PayloadType = PayloadSigned | 0x01
	PayloadU16     PayloadType = 0x02
	PayloadS16     PayloadType = PayloadSigned | 0x02
	PayloadU32     PayloadType = 0x04
	PayloadS32     PayloadType = PayloadSigned | 0x04
	PayloadU64     PayloadType = 0x08
	PayloadS64     PayloadType = PayloadSigned | 0x08
	PayloadFloat32 PayloadType = PayloadFloat | 0x04
)

// Size returns the element size in bytes.
func (p PayloadType) Size() int {
	return int(p & payloadSizeMask)
}

// IsSigned returns true for signed integer elements.
func (p PayloadType) IsSigned() bool {
	return p&PayloadSigned != 0
}

// IsFloat returns true for floating-point elements.
func (p PayloadType) IsFloat() bool {
	return p&PayloadFloat != 0
}

// HasTimestamp returns true if the timestamp flag is set.
func (p PayloadType) HasTimestamp() bool {
	return p&PayloadTimestamp != 0
}

// WithTimestamp returns the payload type with the timestamp flag set.
func (p PayloadType) WithTimestamp() PayloadType {
	return p | PayloadTimestamp
}

// Element returns the payload type with the timestamp flag cleared.
func (p PayloadType) Element() PayloadType {
	return p &^ PayloadTimestamp
}

// IsValid returns true if the element type is one of the known Harp types.
func (p PayloadType) IsValid() bool {
	switch p.Element() {
	case PayloadU8, PayloadS8, PayloadU16, PayloadS16,
		PayloadU32, PayloadS32, PayloadU64, PayloadS64, PayloadFloat32:
		return true
	default:
		return false
	}
}

// String returns the element type name, with a "Timestamped" prefix when
// the timestamp flag is set.
func (p PayloadType) String() string {
	var name string
	switch p.Element() {
	case PayloadU8:
		name = "U8"
	case PayloadS8:
		name = "S8"
	case PayloadU16:
		name = "U16"
	case PayloadS16:
		name = "S16"
	case PayloadU32:
		name = "U32"
	case PayloadS32:
		name = "S32"
	case PayloadU64:
		name = "U64"
	case PayloadS64:
		name = "S64"
	case PayloadFloat32:
		name = "Float"
	default:
		return "Unknown"
	}
	if p.HasTimestamp() {
		return "Timestamped" + name
	}
	return name
}
