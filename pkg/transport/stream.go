package transport

import (
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/harp-protocol/harp-go/pkg/log"
	"github.com/harp-protocol/harp-go/pkg/wire"
)

// Transport states.
type State int32

const (
	StateOpen State = iota
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateOpen:
		return "OPEN"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// ErrClosed is returned by Send and Receive after Close.
var ErrClosed = errors.New("transport closed")

// Config configures a StreamTransport.
type Config struct {
	// Logger receives frame and message capture events (optional).
	Logger log.Logger

	// Role is recorded in capture events.
	Role log.Role

	// RegisterName names register addresses in capture events (optional).
	RegisterName func(address uint8) string

	// WriteTimeout bounds a single frame write when the stream supports
	// deadlines (0 = no timeout).
	WriteTimeout time.Duration
}

type writeDeadliner interface {
	SetWriteDeadline(t time.Time) error
}

// StreamTransport carries Harp messages over an io.ReadWriteCloser.
type StreamTransport struct {
	id     string
	connID string
	rwc    io.ReadWriteCloser
	framer *Framer
	config Config
	logger log.Logger

	state     atomic.Int32
	closeOnce sync.Once
	readMu    sync.Mutex

	corrupt atomic.Uint64
}

// NewStreamTransport wraps rwc. id names the transport in errors and logs.
func NewStreamTransport(id string, rwc io.ReadWriteCloser, config Config) *StreamTransport {
	t := &StreamTransport{
		id:     id,
		connID: uuid.NewString(),
		rwc:    rwc,
		framer: NewFramer(rwc),
		config: config,
		logger: log.OrNoop(config.Logger),
	}
	if config.Logger != nil {
		t.framer.SetLogger(config.Logger, t.connID, id)
	}
	t.state.Store(int32(StateOpen))
	t.logState(StateOpen.String(), "")
	return t
}

// Pipe returns two connected in-memory transports, host side first.
func Pipe(hostConfig, deviceConfig Config) (*StreamTransport, *StreamTransport) {
	a, b := net.Pipe()
	deviceConfig.Role = log.RoleDevice
	return NewStreamTransport("pipe", a, hostConfig), NewStreamTransport("pipe", b, deviceConfig)
}

// ID returns the transport identifier.
func (t *StreamTransport) ID() string {
	return t.id
}

// ConnectionID returns the unique id used in capture events.
func (t *StreamTransport) ConnectionID() string {
	return t.connID
}

// State returns the current state.
func (t *StreamTransport) State() State {
	return State(t.state.Load())
}

// Corrupt returns the number of checksummed frames that failed to decode.
func (t *StreamTransport) Corrupt() uint64 {
	return t.corrupt.Load()
}

// Skipped returns the number of bytes dropped while resynchronizing.
func (t *StreamTransport) Skipped() uint64 {
	return t.framer.Skipped()
}

// Send encodes and writes m.
func (t *StreamTransport) Send(m *wire.Message) error {
	if t.State() != StateOpen {
		return ErrClosed
	}

	data, err := wire.Encode(m)
	if err != nil {
		return err
	}

	if t.config.WriteTimeout > 0 {
		if d, ok := t.rwc.(writeDeadliner); ok {
			_ = d.SetWriteDeadline(time.Now().Add(t.config.WriteTimeout))
			defer d.SetWriteDeadline(time.Time{})
		}
	}

	if err := t.framer.WriteFrame(data); err != nil {
		if t.State() != StateOpen {
			return ErrClosed
		}
		return err
	}
	t.logMessage(m, log.DirectionOut)
	return nil
}

// Receive returns the next message. Frames that pass the checksum but do
// not decode are counted, logged and skipped.
func (t *StreamTransport) Receive() (*wire.Message, error) {
	t.readMu.Lock()
	defer t.readMu.Unlock()

	for {
		if t.State() != StateOpen {
			return nil, ErrClosed
		}

		data, err := t.framer.ReadFrame()
		if err != nil {
			if t.State() != StateOpen {
				return nil, ErrClosed
			}
			return nil, err
		}

		m, err := wire.Decode(data)
		if err != nil {
			t.corrupt.Add(1)
			t.logError(err, "decode")
			continue
		}
		t.logMessage(m, log.DirectionIn)
		return m, nil
	}
}

// Close closes the stream. It is safe to call more than once.
func (t *StreamTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		t.state.Store(int32(StateClosed))
		err = t.rwc.Close()
		t.logState(StateClosed.String(), StateOpen.String())
	})
	if err != nil {
		return fmt.Errorf("close %s: %w", t.id, err)
	}
	return nil
}

func (t *StreamTransport) logMessage(m *wire.Message, dir log.Direction) {
	if t.config.Logger == nil {
		return
	}
	ev := log.NewMessageEvent(m)
	if t.config.RegisterName != nil {
		ev.Register = t.config.RegisterName(m.Address)
	}
	category := log.CategoryMessage
	if m.Type.Base() == wire.MessageEvent {
		category = log.CategoryEvent
	}
	t.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: t.connID,
		Direction:    dir,
		Layer:        log.LayerWire,
		Category:     category,
		LocalRole:    t.config.Role,
		Port:         t.id,
		Message:      ev,
	})
}

func (t *StreamTransport) logError(err error, context string) {
	t.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: t.connID,
		Direction:    log.DirectionIn,
		Layer:        log.LayerWire,
		Category:     log.CategoryError,
		LocalRole:    t.config.Role,
		Port:         t.id,
		Error: &log.ErrorEventData{
			Layer:   log.LayerWire,
			Message: err.Error(),
			Context: context,
		},
	})
}

func (t *StreamTransport) logState(newState, oldState string) {
	t.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: t.connID,
		Layer:        log.LayerTransport,
		Category:     log.CategoryState,
		LocalRole:    t.config.Role,
		Port:         t.id,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityTransport,
			OldState: oldState,
			NewState: newState,
		},
	})
}
