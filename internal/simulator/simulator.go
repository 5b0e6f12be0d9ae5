// Package simulator implements simulated Harp devices for tests and for
// running the tools without hardware.
//
// A Device holds a register bank for a catalog and answers requests the
// way firmware does: reads return the current value, writes to writable
// registers are stored and echoed, and everything else gets an error
// reply. Replies and events carry the device time since New.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/harp-protocol/harp-go/pkg/log"
	"github.com/harp-protocol/harp-go/pkg/register"
	"github.com/harp-protocol/harp-go/pkg/transport"
	"github.com/harp-protocol/harp-go/pkg/wire"
)

const eventQueue = 64

// Config configures a simulated device.
type Config struct {
	// WhoAmI overrides the identity in register 0 (default: the catalog's).
	WhoAmI uint16

	// SerialNumber is the value of the SerialNumber register.
	SerialNumber uint16

	// Slog receives operational log lines (optional).
	Slog *slog.Logger

	// Drop makes the device ignore matching requests without replying
	// (optional).
	Drop func(req *wire.Message) bool
}

// WriteHook runs after a host write has been stored.
type WriteHook func(d *Device, v uint16)

// Device is a simulated Harp device.
type Device struct {
	catalog *register.Catalog
	config  Config
	slog    *slog.Logger
	start   time.Time

	mu     sync.Mutex
	values [256]uint16
	hooks  map[uint8][]WriteHook

	events   chan *wire.Message
	requests atomic.Uint64
	dropped  atomic.Uint64

	closeOnce sync.Once
	closed    chan struct{}
}

// New creates a device for catalog with the common registers populated.
func New(catalog *register.Catalog, config Config) *Device {
	if config.WhoAmI == 0 {
		config.WhoAmI = catalog.WhoAmI()
	}
	if config.Slog == nil {
		config.Slog = slog.New(slog.DiscardHandler)
	}

	d := &Device{
		catalog: catalog,
		config:  config,
		slog:    config.Slog.With("simulator", catalog.Name()),
		start:   time.Now(),
		hooks:   make(map[uint8][]WriteHook),
		events:  make(chan *wire.Message, eventQueue),
		closed:  make(chan struct{}),
	}

	d.values[register.AddressWhoAmI] = config.WhoAmI
	d.values[register.AddressHardwareVersionHigh] = 1
	d.values[register.AddressCoreVersionHigh] = 1
	d.values[register.AddressCoreVersionLow] = 10
	d.values[register.AddressFirmwareVersionHigh] = 2
	d.values[register.AddressFirmwareVersionLow] = 1
	d.values[register.AddressOperationControl] = uint16(register.NewOperationControl(register.ModeActive, register.OperationVisualIndicators|register.OperationLED))
	d.values[register.AddressSerialNumber] = config.SerialNumber
	return d
}

// Catalog returns the catalog the device implements.
func (d *Device) Catalog() *register.Catalog {
	return d.catalog
}

// Seconds returns the device time.
func (d *Device) Seconds() float64 {
	return time.Since(d.start).Seconds()
}

// Requests returns the number of requests handled.
func (d *Device) Requests() uint64 {
	return d.requests.Load()
}

// DroppedEvents returns the number of events lost to a full queue.
func (d *Device) DroppedEvents() uint64 {
	return d.dropped.Load()
}

// Value returns the current value of the register at address.
func (d *Device) Value(address uint8) uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.values[address]
}

// Set stores v without running hooks or emitting an event. Bits beyond
// the register width are discarded.
func (d *Device) Set(address uint8, v uint16) {
	if desc, ok := d.lookup(address); ok {
		v &= desc.Width.Max()
	}
	d.mu.Lock()
	d.values[address] = v
	d.mu.Unlock()
}

// Emit stores v and queues an event for the register at address. It
// fails for registers that do not emit events.
func (d *Device) Emit(address uint8, v uint16) error {
	desc, err := d.catalog.Resolve(address)
	if err != nil {
		return err
	}
	if !desc.EmitsEvents() {
		return fmt.Errorf("simulator: %s does not emit events", desc.Name)
	}
	d.Set(address, v)

	ev, err := register.EncodeRawTimestamped(desc, wire.MessageEvent, d.Seconds(), v&desc.Width.Max())
	if err != nil {
		return err
	}
	select {
	case d.events <- ev:
	default:
		d.dropped.Add(1)
	}
	return nil
}

// OnWrite registers a hook for host writes to address.
func (d *Device) OnWrite(address uint8, hook WriteHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hooks[address] = append(d.hooks[address], hook)
}

// Handle answers one request. It returns nil when the device stays
// silent.
func (d *Device) Handle(req *wire.Message) *wire.Message {
	d.requests.Add(1)
	if d.config.Drop != nil && d.config.Drop(req) {
		return nil
	}

	desc, ok := d.lookup(req.Address)
	base := req.Type.Base()
	switch {
	case !ok:
		d.slog.Debug("request to unknown register", "address", req.Address)
		return d.errorReply(req)
	case req.Type.IsError(), base != wire.MessageRead && base != wire.MessageWrite:
		return d.errorReply(req)
	case req.PayloadType != desc.PayloadType():
		d.slog.Debug("payload type mismatch", "register", desc.Name, "got", req.PayloadType.String())
		return d.errorReply(req)
	}

	if base == wire.MessageRead {
		return d.reply(desc, wire.MessageRead, d.Value(req.Address))
	}

	if !desc.Writable() {
		d.slog.Debug("write to read-only register", "register", desc.Name)
		return d.errorReply(req)
	}
	v, err := register.DecodeRaw(desc, req)
	if err != nil {
		return d.errorReply(req)
	}

	d.mu.Lock()
	d.values[req.Address] = v
	hooks := append([]WriteHook(nil), d.hooks[req.Address]...)
	d.mu.Unlock()

	reply := d.reply(desc, wire.MessageWrite, v)
	for _, hook := range hooks {
		hook(d, v)
	}
	return reply
}

// lookup resolves address in the catalog, falling back to the common
// registers so that any catalog can complete the identity handshake.
func (d *Device) lookup(address uint8) (register.Descriptor, bool) {
	if desc, ok := d.catalog.Lookup(address); ok {
		return desc, true
	}
	for _, desc := range register.Common() {
		if desc.Address == address {
			return desc, true
		}
	}
	return register.Descriptor{}, false
}

func (d *Device) reply(desc register.Descriptor, t wire.MessageType, v uint16) *wire.Message {
	m, err := register.EncodeRawTimestamped(desc, t, d.Seconds(), v&desc.Width.Max())
	if err != nil {
		return nil
	}
	return m
}

func (d *Device) errorReply(req *wire.Message) *wire.Message {
	m := &wire.Message{
		Type:        req.Type.WithError(),
		Address:     req.Address,
		Port:        wire.DevicePort,
		PayloadType: req.PayloadType,
		Payload:     append([]byte(nil), req.Payload...),
	}
	m.SetTimestamp(d.Seconds())
	return m
}

// Serve answers requests from t and sends queued events until ctx ends,
// t fails or the device is closed. It closes t on return. A transport
// closed by the host ends Serve without error.
func (d *Device) Serve(ctx context.Context, t transport.Transport) error {
	defer t.Close()

	errc := make(chan error, 1)
	go func() {
		for {
			req, err := t.Receive()
			if err != nil {
				errc <- err
				return
			}
			if reply := d.Handle(req); reply != nil {
				if err := t.Send(reply); err != nil {
					errc <- err
					return
				}
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.closed:
			return nil
		case err := <-errc:
			if errors.Is(err, io.EOF) || errors.Is(err, transport.ErrClosed) {
				return nil
			}
			return err
		case ev := <-d.events:
			if err := t.Send(ev); err != nil {
				return err
			}
		}
	}
}

// Attach connects the device to a new in-memory transport and serves it
// in the background. The returned transport is the host side.
func (d *Device) Attach(ctx context.Context, hostConfig transport.Config) *transport.StreamTransport {
	host, dev := transport.Pipe(hostConfig, transport.Config{Role: log.RoleDevice})
	go func() {
		if err := d.Serve(ctx, dev); err != nil && !errors.Is(err, context.Canceled) {
			d.slog.Warn("simulator stopped", "error", err)
		}
	}()
	return host
}

// Close stops Serve and any background activity started by hooks.
func (d *Device) Close() {
	d.closeOnce.Do(func() { close(d.closed) })
}

// Done is closed by Close.
func (d *Device) Done() <-chan struct{} {
	return d.closed
}
