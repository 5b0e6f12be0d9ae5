package channel

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/harp-protocol/harp-go/pkg/log"
	"github.com/harp-protocol/harp-go/pkg/transport"
	"github.com/harp-protocol/harp-go/pkg/wire"
)

// Defaults.
const (
	DefaultEventBuffer    = 256
	DefaultLateReplyGrace = 50 * time.Millisecond

	errorBuffer = 16
)

// Config configures a Channel.
type Config struct {
	// Logger receives channel state changes, claimed replies with their round trip,
	// and discarded replies (optional).
	Logger log.Logger

	// Slog receives operational log lines (optional).
	Slog *slog.Logger

	// OnEvent is called for every Event message, in arrival order, on a
	// goroutine owned by the channel (optional).
	OnEvent func(*wire.Message)

	// OnError receives errors that have no caller to return to: event
	// overflow and transport failure (optional).
	OnError func(error)

	// EventBuffer is the number of events queued for OnEvent before new
	// ones are dropped (default: DefaultEventBuffer).
	EventBuffer int

	// LateReplyGrace is how long the dispatcher waits for the reply of a
	// cancelled in-flight command before sending the next one, so that the
	// stale reply is not taken for the next command's answer
	// (default: DefaultLateReplyGrace, negative disables). Replies carry no
	// request id: a stale reply arriving after the grace period is claimed
	// by the next command of the same type to the same address.
	LateReplyGrace time.Duration
}

// Stats counts channel activity.
type Stats struct {
	Sent          uint64
	Replies       uint64
	Discarded     uint64
	Cancelled     uint64
	Events        uint64
	DroppedEvents uint64
}

type pending struct {
	req    *wire.Message
	ctx    context.Context
	once   sync.Once
	done   chan struct{}
	sentAt time.Time

	reply *wire.Message
	err   error
}

// resolve completes the command. Only the first call has an effect.
func (p *pending) resolve(reply *wire.Message, err error) bool {
	ok := false
	p.once.Do(func() {
		p.reply, p.err = reply, err
		close(p.done)
		ok = true
	})
	return ok
}

// Channel serializes commands over a transport. Create one with New.
type Channel struct {
	t      transport.Transport
	connID string
	config Config
	logger log.Logger
	slog   *slog.Logger

	mu        sync.Mutex
	queue     []*pending
	current   *pending
	abandoned *pending
	lateHit   chan struct{}
	failure   error

	closeOnce sync.Once
	closeErr  error

	wake   chan struct{}
	done   chan struct{}
	events chan *wire.Message
	errs   chan error
	wg     sync.WaitGroup

	sent, replies, discarded, cancelled atomic.Uint64
	eventCount, droppedEvents           atomic.Uint64
}

// New creates a channel over t and starts its goroutines. The channel owns
// t from now on and closes it on Close or failure.
func New(t transport.Transport, config Config) *Channel {
	if config.EventBuffer <= 0 {
		config.EventBuffer = DefaultEventBuffer
	}
	if config.LateReplyGrace == 0 {
		config.LateReplyGrace = DefaultLateReplyGrace
	}
	if config.Slog == nil {
		config.Slog = slog.New(slog.DiscardHandler)
	}

	c := &Channel{
		t:      t,
		connID: t.ID(),
		config: config,
		logger: log.OrNoop(config.Logger),
		slog:   config.Slog.With("transport", t.ID()),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		events: make(chan *wire.Message, config.EventBuffer),
		errs:   make(chan error, errorBuffer),
	}

	if ided, ok := t.(interface{ ConnectionID() string }); ok {
		c.connID = ided.ConnectionID()
	}

	// notifyLoop is not in wg: Close may be called from a callback.
	c.wg.Add(2)
	go c.readLoop()
	go c.dispatchLoop()
	go c.notifyLoop()

	c.logState("", "OPEN", "")
	return c
}

// Transport returns the underlying transport.
func (c *Channel) Transport() transport.Transport {
	return c.t
}

// ConnectionID returns the id used for this connection in capture events.
func (c *Channel) ConnectionID() string {
	return c.connID
}

// Execute sends req and waits for the correlated reply.
//
// Commands are sent strictly in the order Execute was called. If ctx ends
// first, Execute returns an error wrapping ErrCancelled and ctx.Err(); a
// command still queued is then never sent. A reply with the error flag
// yields a *ReplyError.
func (c *Channel) Execute(ctx context.Context, req *wire.Message) (*wire.Message, error) {
	if b := req.Type.Base(); req.Type.IsError() || (b != wire.MessageRead && b != wire.MessageWrite) {
		return nil, fmt.Errorf("%w: %s", ErrNotRequest, req.Type)
	}

	p := &pending{req: req, ctx: ctx, done: make(chan struct{})}

	c.mu.Lock()
	if c.failure != nil {
		err := c.failure
		c.mu.Unlock()
		return nil, err
	}
	c.queue = append(c.queue, p)
	c.mu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}

	select {
	case <-p.done:
	case <-ctx.Done():
		if p.resolve(nil, cancelled(ctx)) {
			c.cancelled.Add(1)
		}
	}
	return p.reply, p.err
}

// Err returns the error that ended the channel, or nil while it is usable.
func (c *Channel) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failure
}

// Done is closed when the channel has failed or been closed.
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

// Stats returns a snapshot of the channel counters.
func (c *Channel) Stats() Stats {
	return Stats{
		Sent:          c.sent.Load(),
		Replies:       c.replies.Load(),
		Discarded:     c.discarded.Load(),
		Cancelled:     c.cancelled.Load(),
		Events:        c.eventCount.Load(),
		DroppedEvents: c.droppedEvents.Load(),
	}
}

// Close fails pending commands with ErrClosed, closes the transport and
// waits for the I/O goroutines to exit. It is safe to call from OnEvent
// and OnError, so it does not wait for the callback goroutine: a callback
// already running may still be in progress when Close returns. Events
// still queued for OnEvent are dropped and counted in DroppedEvents.
func (c *Channel) Close() error {
	c.shutdown(ErrClosed)
	c.wg.Wait()
	return c.closeErr
}

// closeTransport closes t exactly once, on Close or on failure.
func (c *Channel) closeTransport() {
	c.closeOnce.Do(func() {
		c.closeErr = c.t.Close()
	})
}

func cancelled(ctx context.Context) error {
	return fmt.Errorf("%w: %w", ErrCancelled, context.Cause(ctx))
}

func matches(req, reply *wire.Message) bool {
	return reply.Address == req.Address && reply.Type.Base() == req.Type.Base()
}

// shutdown records the first terminal error, fails everything pending and
// closes the transport.
func (c *Channel) shutdown(cause error) {
	defer c.closeTransport()

	c.mu.Lock()
	if c.failure != nil {
		c.mu.Unlock()
		return
	}
	c.failure = cause
	queued := c.queue
	c.queue = nil
	cur := c.current
	c.current = nil
	c.mu.Unlock()

	// Queue the error before done closes so notifyLoop still delivers it.
	state := "CLOSED"
	if cause != ErrClosed {
		state = "FAILED"
		c.slog.Warn("channel failed", "error", cause)
		c.report(cause)
	}

	close(c.done)
	for _, p := range queued {
		p.resolve(nil, cause)
	}
	if cur != nil {
		cur.resolve(nil, cause)
	}
	c.logState("OPEN", state, cause.Error())
}

func (c *Channel) fail(op string, err error) error {
	te := &TransportError{Transport: c.t.ID(), Op: op, Err: err}
	c.shutdown(te)
	return c.Err()
}

// report hands err to OnError without blocking the I/O goroutines.
func (c *Channel) report(err error) {
	select {
	case c.errs <- err:
	default:
		c.slog.Warn("error queue full", "error", err)
	}
}
