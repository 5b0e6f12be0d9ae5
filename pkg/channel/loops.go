package channel

import (
	"time"

	"github.com/harp-protocol/harp-go/pkg/log"
	"github.com/harp-protocol/harp-go/pkg/wire"
)

// readLoop classifies every incoming message as an event or a reply.
func (c *Channel) readLoop() {
	defer c.wg.Done()

	for {
		m, err := c.t.Receive()
		if err != nil {
			select {
			case <-c.done:
			default:
				c.fail("receive", err)
			}
			return
		}

		if m.Type.Base() == wire.MessageEvent {
			c.deliverEvent(m)
			continue
		}
		c.claimReply(m)
	}
}

func (c *Channel) deliverEvent(m *wire.Message) {
	c.eventCount.Add(1)
	if c.config.OnEvent == nil {
		return
	}
	select {
	case c.events <- m:
	default:
		c.droppedEvents.Add(1)
		c.report(ErrEventOverflow)
	}
}

// claimReply hands m to the in-flight command if it matches, and discards
// it otherwise.
func (c *Channel) claimReply(m *wire.Message) {
	c.mu.Lock()
	if cur := c.current; cur != nil && matches(cur.req, m) {
		c.current = nil
		c.mu.Unlock()

		c.replies.Add(1)
		reply, err := m, error(nil)
		if m.Type.IsError() {
			reply, err = nil, &ReplyError{Address: m.Address, Type: m.Type, Reply: m}
		}
		if !cur.resolve(reply, err) {
			c.discard(m, "reply after cancellation")
			return
		}
		c.logReply(m, time.Since(cur.sentAt))
		return
	}
	if ab := c.abandoned; ab != nil && matches(ab.req, m) {
		c.abandoned = nil
		close(c.lateHit)
		c.mu.Unlock()
		c.discard(m, "reply after cancellation")
		return
	}
	c.mu.Unlock()

	c.discard(m, "no pending command")
}

// logReply records a reply together with its round trip time.
func (c *Channel) logReply(m *wire.Message, rtt time.Duration) {
	ev := log.NewMessageEvent(m)
	ev.RoundTrip = &rtt
	c.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: c.connID,
		Direction:    log.DirectionIn,
		Layer:        log.LayerChannel,
		Category:     log.CategoryMessage,
		Port:         c.t.ID(),
		Message:      ev,
	})
}

func (c *Channel) discard(m *wire.Message, reason string) {
	c.discarded.Add(1)
	c.slog.Debug("discarding reply", "address", m.Address, "type", m.Type.String(), "reason", reason)

	ev := log.NewMessageEvent(m)
	ev.Discarded = true
	c.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: c.connID,
		Direction:    log.DirectionIn,
		Layer:        log.LayerChannel,
		Category:     log.CategoryMessage,
		Port:         c.t.ID(),
		Message:      ev,
	})
}

// dispatchLoop sends queued commands one at a time.
func (c *Channel) dispatchLoop() {
	defer c.wg.Done()

	for {
		p, ok := c.next()
		if !ok {
			return
		}
		c.run(p)
	}
}

func (c *Channel) next() (*pending, bool) {
	for {
		c.mu.Lock()
		if c.failure != nil {
			c.mu.Unlock()
			return nil, false
		}
		if len(c.queue) > 0 {
			p := c.queue[0]
			c.queue[0] = nil
			c.queue = c.queue[1:]
			c.mu.Unlock()
			return p, true
		}
		c.mu.Unlock()

		select {
		case <-c.wake:
		case <-c.done:
			return nil, false
		}
	}
}

func (c *Channel) run(p *pending) {
	select {
	case <-p.done:
		return // cancelled while queued
	default:
	}
	if p.ctx.Err() != nil {
		if p.resolve(nil, cancelled(p.ctx)) {
			c.cancelled.Add(1)
		}
		return
	}

	c.mu.Lock()
	if c.failure != nil {
		err := c.failure
		c.mu.Unlock()
		p.resolve(nil, err)
		return
	}
	p.sentAt = time.Now()
	c.current = p
	c.mu.Unlock()

	if err := c.t.Send(p.req); err != nil {
		p.resolve(nil, c.fail("send", err))
		return
	}
	c.sent.Add(1)

	select {
	case <-p.done:
	case <-p.ctx.Done():
		if p.resolve(nil, cancelled(p.ctx)) {
			c.cancelled.Add(1)
		}
	case <-c.done:
		p.resolve(nil, c.Err())
	}

	c.mu.Lock()
	answered := c.current != p
	var hit chan struct{}
	if !answered {
		c.current = nil
		if c.failure == nil && c.config.LateReplyGrace > 0 {
			hit = make(chan struct{})
			c.abandoned, c.lateHit = p, hit
		}
	}
	c.mu.Unlock()

	if answered {
		c.slog.Debug("command completed", "address", p.req.Address, "type", p.req.Type.String(), "rtt", time.Since(p.sentAt))
		return
	}
	if hit == nil {
		return
	}

	timer := time.NewTimer(c.config.LateReplyGrace)
	defer timer.Stop()
	select {
	case <-hit:
	case <-timer.C:
	case <-c.done:
	}

	c.mu.Lock()
	if c.abandoned == p {
		c.abandoned, c.lateHit = nil, nil
	}
	c.mu.Unlock()
}

// notifyLoop runs the user callbacks off the I/O goroutines. Once the
// channel is done, pending errors are still reported and queued events
// are counted as dropped.
func (c *Channel) notifyLoop() {
	for {
		select {
		case <-c.done:
			c.drainCallbacks()
			return
		default:
		}

		select {
		case m := <-c.events:
			c.config.OnEvent(m)
		case err := <-c.errs:
			c.onError(err)
		case <-c.done:
		}
	}
}

func (c *Channel) drainCallbacks() {
	for {
		select {
		case err := <-c.errs:
			c.onError(err)
		case <-c.events:
			c.droppedEvents.Add(1)
		default:
			return
		}
	}
}

func (c *Channel) onError(err error) {
	if c.config.OnError != nil {
		c.config.OnError(err)
	}
}

func (c *Channel) logState(oldState, newState, reason string) {
	c.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: c.connID,
		Layer:        log.LayerChannel,
		Category:     log.CategoryState,
		Port:         c.t.ID(),
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityChannel,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}
