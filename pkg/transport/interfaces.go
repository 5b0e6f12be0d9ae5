package transport

import (
	"github.com/harp-protocol/harp-go/pkg/wire"
)

// Transport sends and receives whole Harp messages.
// Implemented by StreamTransport.
type Transport interface {
	// ID identifies the transport, such as a serial port name.
	ID() string

	// Send writes one message. Safe for concurrent use.
	Send(m *wire.Message) error

	// Receive blocks until the next valid message arrives. Only one
	// goroutine may call Receive at a time.
	Receive() (*wire.Message, error)

	// Close releases the underlying stream and unblocks Receive.
	Close() error
}

// FrameReadWriter provides Harp frame I/O.
// Implemented by Framer.
type FrameReadWriter interface {
	// ReadFrame reads one checksummed frame.
	ReadFrame() ([]byte, error)

	// WriteFrame writes one encoded frame.
	WriteFrame(data []byte) error
}

var (
	_ Transport       = (*StreamTransport)(nil)
	_ FrameReadWriter = (*Framer)(nil)
)
