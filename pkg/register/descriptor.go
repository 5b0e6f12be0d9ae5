package register

import (
	"fmt"
	"strings"

	"github.com/harp-protocol/harp-go/pkg/wire"
)

// Width is the payload width of a register in bytes.
type Width uint8

const (
	Width8  Width = 1
	Width16 Width = 2
)

// IsValid returns true for the supported widths.
func (w Width) IsValid() bool {
	return w == Width8 || w == Width16
}

// Max returns the largest value representable in the width.
func (w Width) Max() uint16 {
	if w == Width8 {
		return 0xFF
	}
	return 0xFFFF
}

// PayloadType returns the unsigned wire element type for the width.
func (w Width) PayloadType() wire.PayloadType {
	if w == Width8 {
		return wire.PayloadU8
	}
	return wire.PayloadU16
}

// Kind is the semantic representation of a register value.
type Kind uint8

const (
	// KindInteger is a plain unsigned integer.
	KindInteger Kind = iota

	// KindFlags is a bitmask of independent flags.
	KindFlags

	// KindEnum is a scalar mode selector.
	KindEnum
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFlags:
		return "flags"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Access is a bitmask of the operations a register supports.
type Access uint8

const (
	AccessRead  Access = 1 << 0
	AccessWrite Access = 1 << 1
	AccessEvent Access = 1 << 2
)

// Has returns true if all bits of a are set.
func (x Access) Has(a Access) bool {
	return x&a == a
}

// String returns the access mask as a list such as "Read|Write".
func (x Access) String() string {
	var parts []string
	if x.Has(AccessRead) {
		parts = append(parts, "Read")
	}
	if x.Has(AccessWrite) {
		parts = append(parts, "Write")
	}
	if x.Has(AccessEvent) {
		parts = append(parts, "Event")
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, "|")
}

// Descriptor describes one register of a device.
type Descriptor struct {
	Address     uint8
	Name        string
	Width       Width
	Kind        Kind
	Access      Access
	Description string

	// Volatile registers trigger an action when written instead of
	// holding a setting. They are never captured or restored.
	Volatile bool
}

// PayloadType returns the wire element type used for the register.
func (d Descriptor) PayloadType() wire.PayloadType {
	return d.Width.PayloadType()
}

// Writable returns true if the register accepts writes.
func (d Descriptor) Writable() bool {
	return d.Access.Has(AccessWrite)
}

// EmitsEvents returns true if the device reports changes on its own.
func (d Descriptor) EmitsEvents() bool {
	return d.Access.Has(AccessEvent)
}

// String returns a short description such as "CameraStart(32, U8 flags)".
func (d Descriptor) String() string {
	return fmt.Sprintf("%s(%d, %s %s)", d.Name, d.Address, d.PayloadType(), d.Kind)
}

func (d Descriptor) validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: address %d", ErrMissingName, d.Address)
	}
	if !d.Width.IsValid() {
		return fmt.Errorf("%w: %s has width %d", ErrInvalidWidth, d.Name, d.Width)
	}
	return nil
}
