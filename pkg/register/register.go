package register

import (
	"encoding/binary"
	"fmt"

	"github.com/harp-protocol/harp-go/pkg/wire"
)

// Value is the set of Go types a register payload can decode into.
type Value interface {
	~uint8 | ~uint16
}

// Register is a descriptor bound to the Go type of its value.
type Register[T Value] struct {
	desc Descriptor
}

// Define binds d to T. It panics if the size of T differs from d.Width,
// which is a programming error in a register table.
func Define[T Value](d Descriptor) Register[T] {
	var zero T
	if size := binary.Size(zero); size != int(d.Width) {
		panic(fmt.Sprintf("register %s: %T is %d bytes, width is %d", d.Name, zero, size, d.Width))
	}
	if err := d.validate(); err != nil {
		panic(err.Error())
	}
	return Register[T]{desc: d}
}

// Descriptor returns the register descriptor.
func (r Register[T]) Descriptor() Descriptor {
	return r.desc
}

// Address returns the register address.
func (r Register[T]) Address() uint8 {
	return r.desc.Address
}

// Name returns the register name.
func (r Register[T]) Name() string {
	return r.desc.Name
}

// Decode extracts the register value from m.
func (r Register[T]) Decode(m *wire.Message) (T, error) {
	v, err := DecodeRaw(r.desc, m)
	if err != nil {
		return 0, err
	}
	return T(v), nil
}

// DecodeTimestamped extracts the register value and the device timestamp.
func (r Register[T]) DecodeTimestamped(m *wire.Message) (Timestamped[T], error) {
	ts, err := DecodeRawTimestamped(r.desc, m)
	if err != nil {
		return Timestamped[T]{}, err
	}
	return Timestamped[T]{Seconds: ts.Seconds, Value: T(ts.Value)}, nil
}

// Encode builds a message of type t carrying v.
func (r Register[T]) Encode(t wire.MessageType, v T) *wire.Message {
	return encode(r.desc, t, uint16(v))
}

// EncodeTimestamped builds a message of type t carrying v and a timestamp.
func (r Register[T]) EncodeTimestamped(t wire.MessageType, seconds float64, v T) *wire.Message {
	m := encode(r.desc, t, uint16(v))
	m.SetTimestamp(seconds)
	return m
}

// ReadRequest builds a read request for the register.
func (r Register[T]) ReadRequest() *wire.Message {
	return ReadRequest(r.desc)
}

// WriteRequest builds a write request setting the register to v.
func (r Register[T]) WriteRequest(v T) *wire.Message {
	return r.Encode(wire.MessageWrite, v)
}
