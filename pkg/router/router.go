// Package router classifies incoming device messages by register and
// dispatches them to typed handlers.
//
// A Router is stateless apart from its handler table: every message is
// resolved against the catalog and handed to the handlers registered for
// its address, then to the catch-all handlers. Unknown addresses and
// decode failures are reported through the error callback and never stop
// routing.
//
//	r := router.New(cameracontroller.Catalog, onError)
//	router.SubscribeTimestamped(r, cameracontroller.Camera0Trigger, func(v register.Timestamped[uint8]) {
//	    fmt.Printf("frame at %.6f\n", v.Seconds)
//	})
//	dev, err := cameracontroller.Open(ctx, t, device.Config{OnEvent: r.Route})
package router

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/harp-protocol/harp-go/pkg/register"
	"github.com/harp-protocol/harp-go/pkg/wire"
)

// Handler receives a message together with the descriptor of its register.
type Handler func(register.Descriptor, *wire.Message)

type entry struct {
	id uint64
	fn Handler
}

// Stats counts routed messages.
type Stats struct {
	Routed       uint64
	Unknown      uint64
	DecodeErrors uint64
}

// Router dispatches messages to handlers by register address. It is safe
// for concurrent use.
type Router struct {
	catalog *register.Catalog
	onError func(error)

	mu     sync.RWMutex
	byAddr map[uint8][]entry
	all    []entry
	nextID uint64

	routed, unknown, decodeErrors atomic.Uint64
}

// New creates a router for catalog. onError may be nil.
func New(catalog *register.Catalog, onError func(error)) *Router {
	if onError == nil {
		onError = func(error) {}
	}
	return &Router{
		catalog: catalog,
		onError: onError,
		byAddr:  make(map[uint8][]entry),
	}
}

// Route dispatches m. It matches the signature of device.Config.OnEvent.
func (r *Router) Route(m *wire.Message) {
	desc, err := r.catalog.Resolve(m.Address)
	if err != nil {
		r.unknown.Add(1)
		r.onError(fmt.Errorf("router: %w", err))
		return
	}
	r.routed.Add(1)

	r.mu.RLock()
	handlers := make([]entry, 0, len(r.byAddr[m.Address])+len(r.all))
	handlers = append(handlers, r.byAddr[m.Address]...)
	handlers = append(handlers, r.all...)
	r.mu.RUnlock()

	for _, h := range handlers {
		h.fn(desc, m)
	}
}

// Handle registers h for messages to address. The returned function
// removes it.
func (r *Router) Handle(address uint8, h Handler) (remove func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID
	r.byAddr[address] = append(r.byAddr[address], entry{id: id, fn: h})

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.byAddr[address] = without(r.byAddr[address], id)
		if len(r.byAddr[address]) == 0 {
			delete(r.byAddr, address)
		}
	}
}

// HandleAll registers h for every message with a known address.
func (r *Router) HandleAll(h Handler) (remove func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID
	r.all = append(r.all, entry{id: id, fn: h})

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.all = without(r.all, id)
	}
}

// Stats returns the router counters.
func (r *Router) Stats() Stats {
	return Stats{
		Routed:       r.routed.Load(),
		Unknown:      r.unknown.Load(),
		DecodeErrors: r.decodeErrors.Load(),
	}
}

func (r *Router) decodeFailed(desc register.Descriptor, err error) {
	r.decodeErrors.Add(1)
	r.onError(fmt.Errorf("router: %s: %w", desc.Name, err))
}

func without(entries []entry, id uint64) []entry {
	out := entries[:0:0]
	for _, e := range entries {
		if e.id != id {
			out = append(out, e)
		}
	}
	return out
}

// Subscribe calls fn with the decoded value of every message for reg.
func Subscribe[T register.Value](r *Router, reg register.Register[T], fn func(T)) (remove func()) {
	return r.Handle(reg.Address(), func(desc register.Descriptor, m *wire.Message) {
		v, err := reg.Decode(m)
		if err != nil {
			r.decodeFailed(desc, err)
			return
		}
		fn(v)
	})
}

// SubscribeTimestamped is like Subscribe but also passes the device time.
// Messages without a timestamp are reported as decode errors.
func SubscribeTimestamped[T register.Value](r *Router, reg register.Register[T], fn func(register.Timestamped[T])) (remove func()) {
	return r.Handle(reg.Address(), func(desc register.Descriptor, m *wire.Message) {
		v, err := reg.DecodeTimestamped(m)
		if err != nil {
			r.decodeFailed(desc, err)
			return
		}
		fn(v)
	})
}
