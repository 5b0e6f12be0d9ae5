package device

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/harp-protocol/harp-go/pkg/channel"
	"github.com/harp-protocol/harp-go/pkg/log"
	"github.com/harp-protocol/harp-go/pkg/register"
	"github.com/harp-protocol/harp-go/pkg/transport"
	"github.com/harp-protocol/harp-go/pkg/wire"
)

// Config configures a Device. The event and error hooks are passed to the
// underlying channel.
type Config struct {
	// Logger receives protocol capture events (optional).
	Logger log.Logger

	// Slog receives operational log lines (optional).
	Slog *slog.Logger

	// OnEvent receives unsolicited device events (optional).
	OnEvent func(*wire.Message)

	// OnError receives errors with no caller to return to (optional).
	OnError func(error)

	// EventBuffer and LateReplyGrace, see channel.Config.
	EventBuffer    int
	LateReplyGrace time.Duration
}

func (c Config) channelConfig() channel.Config {
	return channel.Config{
		Logger:         c.Logger,
		Slog:           c.Slog,
		OnEvent:        c.OnEvent,
		OnError:        c.OnError,
		EventBuffer:    c.EventBuffer,
		LateReplyGrace: c.LateReplyGrace,
	}
}

// Device is a verified connection to a device of one catalog.
type Device struct {
	ch      *channel.Channel
	catalog *register.Catalog
	logger  log.Logger
	slog    *slog.Logger

	state  HandshakeState
	whoAmI uint16
}

// Open starts a channel over t and verifies the device identity against
// catalog. On any failure the channel and t are closed and no Device is
// returned. A mismatch yields a *UnexpectedIdentityError. Open does not
// retry; see connection.Retry.
func Open(ctx context.Context, t transport.Transport, catalog *register.Catalog, config Config) (*Device, error) {
	if config.Slog == nil {
		config.Slog = slog.New(slog.DiscardHandler)
	}

	d := &Device{
		ch:      channel.New(t, config.channelConfig()),
		catalog: catalog,
		logger:  log.OrNoop(config.Logger),
		slog:    config.Slog.With("device", catalog.Name(), "transport", t.ID()),
	}

	if err := d.handshake(ctx); err != nil {
		d.ch.Close()
		return nil, err
	}
	return d, nil
}

func (d *Device) handshake(ctx context.Context) error {
	id := d.ch.Transport().ID()

	reply, err := d.ch.Execute(ctx, register.WhoAmI.ReadRequest())
	if err != nil {
		d.slog.Warn("identity handshake failed", "error", err)
		return fmt.Errorf("device: identity handshake on %s: %w", id, err)
	}
	observed, err := register.WhoAmI.Decode(reply)
	if err != nil {
		return fmt.Errorf("device: identity handshake on %s: %w", id, err)
	}

	if observed != d.catalog.WhoAmI() {
		d.setState(StateRejected, fmt.Sprintf("WhoAmI %d", observed))
		return &UnexpectedIdentityError{
			Device:    d.catalog.Name(),
			Expected:  d.catalog.WhoAmI(),
			Observed:  observed,
			Transport: id,
		}
	}

	d.whoAmI = observed
	d.setState(StateVerified, "")
	d.slog.Info("device verified", "whoami", observed)
	return nil
}

func (d *Device) setState(s HandshakeState, reason string) {
	old := d.state
	d.state = s
	d.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: d.ch.ConnectionID(),
		Layer:        log.LayerChannel,
		Category:     log.CategoryState,
		Port:         d.ch.Transport().ID(),
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityHandshake,
			OldState: old.String(),
			NewState: s.String(),
			Reason:   reason,
		},
	})
}

// Catalog returns the register catalog the device was verified against.
func (d *Device) Catalog() *register.Catalog {
	return d.catalog
}

// WhoAmI returns the identity reported during the handshake.
func (d *Device) WhoAmI() uint16 {
	return d.whoAmI
}

// State returns the handshake state. An opened Device is always verified.
func (d *Device) State() HandshakeState {
	return d.state
}

// TransportID returns the identifier of the underlying transport.
func (d *Device) TransportID() string {
	return d.ch.Transport().ID()
}

// Stats returns the channel counters.
func (d *Device) Stats() channel.Stats {
	return d.ch.Stats()
}

// Done is closed when the connection has failed or been closed.
func (d *Device) Done() <-chan struct{} {
	return d.ch.Done()
}

// Err returns the error that ended the connection.
func (d *Device) Err() error {
	return d.ch.Err()
}

// Close closes the channel and the transport.
func (d *Device) Close() error {
	return d.ch.Close()
}

// Execute sends a raw request. Most callers use Read and Write instead.
func (d *Device) Execute(ctx context.Context, req *wire.Message) (*wire.Message, error) {
	return d.ch.Execute(ctx, req)
}

func (d *Device) check(desc register.Descriptor) error {
	if !d.catalog.Contains(desc) {
		return fmt.Errorf("%w: %s is not a %s register", register.ErrUnknownAddress, desc, d.catalog.Name())
	}
	return nil
}
