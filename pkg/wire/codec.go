package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Codec errors.
var (
	ErrTruncated          = errors.New("wire: message truncated")
	ErrInvalidLength      = errors.New("wire: length field does not match message size")
	ErrChecksumMismatch   = errors.New("wire: checksum mismatch")
	ErrInvalidMessageType = errors.New("wire: invalid message type")
	ErrInvalidPayloadType = errors.New("wire: invalid payload type")
	ErrPayloadSize        = errors.New("wire: payload size is not a multiple of the element size")
	ErrMessageTooLarge    = errors.New("wire: message too large")
	ErrInvalidTimestamp   = errors.New("wire: timestamp out of range")
)

// Checksum returns the sum of data modulo 256.
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum
}

// FrameSize returns the full message size announced by a header holding
// at least the type and length bytes.
func FrameSize(header []byte) int {
	if len(header) < 2 {
		return 0
	}
	return int(header[1]) + 2
}

// Encode serializes a message, filling in the length and checksum.
func Encode(m *Message) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid message: %w", err)
	}

	size := m.Size()
	buf := make([]byte, size)

	pt := m.PayloadType.Element()
	if m.HasTimestamp {
		pt = pt.WithTimestamp()
	}

	buf[0] = byte(m.Type)
	buf[1] = byte(size - 2)
	buf[2] = m.Address
	buf[3] = m.Port
	buf[4] = byte(pt)

	off := HeaderSize
	if m.HasTimestamp {
		whole, ticks := splitSeconds(m.Timestamp)
		binary.LittleEndian.PutUint32(buf[off:], whole)
		binary.LittleEndian.PutUint16(buf[off+4:], ticks)
		off += TimestampSize
	}
	copy(buf[off:], m.Payload)
	buf[size-1] = Checksum(buf[:size-1])

	return buf, nil
}

// Decode parses a complete message. The returned payload does not alias data.
func Decode(data []byte) (*Message, error) {
	if len(data) < MinMessageSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncated, len(data))
	}
	if FrameSize(data) != len(data) {
		return nil, fmt.Errorf("%w: length %d, got %d bytes", ErrInvalidLength, data[1], len(data))
	}
	if sum := Checksum(data[:len(data)-1]); sum != data[len(data)-1] {
		return nil, fmt.Errorf("%w: computed 0x%02x, got 0x%02x", ErrChecksumMismatch, sum, data[len(data)-1])
	}

	m := &Message{
		Type:    MessageType(data[0]),
		Address: data[2],
		Port:    data[3],
	}
	if !m.Type.IsValid() {
		return nil, fmt.Errorf("%w: 0x%02x", ErrInvalidMessageType, data[0])
	}

	pt := PayloadType(data[4])
	if !pt.IsValid() {
		return nil, fmt.Errorf("%w: 0x%02x", ErrInvalidPayloadType, data[4])
	}
	m.PayloadType = pt.Element()

	off := HeaderSize
	end := len(data) - ChecksumSize
	if pt.HasTimestamp() {
		if end-off < TimestampSize {
			return nil, fmt.Errorf("%w: missing timestamp", ErrTruncated)
		}
		whole := binary.LittleEndian.Uint32(data[off:])
		ticks := binary.LittleEndian.Uint16(data[off+4:])
		m.SetTimestamp(joinSeconds(whole, ticks))
		off += TimestampSize
	}

	if n := end - off; n > 0 {
		if n%m.PayloadType.Size() != 0 {
			return nil, fmt.Errorf("%w: %d bytes of %s", ErrPayloadSize, n, m.PayloadType)
		}
		m.Payload = make([]byte, n)
		copy(m.Payload, data[off:end])
	}

	return m, nil
}
