package channel

import (
	"errors"
	"fmt"

	"github.com/harp-protocol/harp-go/pkg/wire"
)

// Channel errors.
var (
	// ErrCancelled is returned when the caller's context ends before the
	// reply arrives. The error also wraps the context error.
	ErrCancelled = errors.New("channel: command cancelled")

	// ErrTransportFailure is wrapped by every *TransportError.
	ErrTransportFailure = errors.New("channel: transport failure")

	// ErrClosed is returned by Execute after Close.
	ErrClosed = errors.New("channel: closed")

	// ErrNotRequest is returned for messages that are not Read or Write requests.
	ErrNotRequest = errors.New("channel: not a read or write request")

	// ErrEventOverflow is reported through Config.OnError when events
	// arrive faster than the handler consumes them.
	ErrEventOverflow = errors.New("channel: event queue full, event dropped")

	// ErrDeviceRejected is wrapped by every *ReplyError.
	ErrDeviceRejected = errors.New("channel: device rejected the command")
)

// TransportError reports a transport failure. It ends the channel.
type TransportError struct {
	Transport string
	Op        string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("channel: %s on %s failed: %v", e.Op, e.Transport, e.Err)
}

// Unwrap exposes both ErrTransportFailure and the underlying error.
func (e *TransportError) Unwrap() []error {
	return []error{ErrTransportFailure, e.Err}
}

// ReplyError is returned when the device answers with the error flag set,
// typically a write to a read-only register or an out-of-range value.
// The channel stays usable.
type ReplyError struct {
	Address uint8
	Type    wire.MessageType
	Reply   *wire.Message
}

func (e *ReplyError) Error() string {
	return fmt.Sprintf("channel: device rejected %s at address %d", e.Type.Base(), e.Address)
}

// Is matches ErrDeviceRejected.
func (e *ReplyError) Is(target error) bool {
	return target == ErrDeviceRejected
}
