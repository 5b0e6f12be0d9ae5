package router

import (
	"errors"
	"testing"

	"github.com/harp-protocol/harp-go/pkg/cameracontroller"
	"github.com/harp-protocol/harp-go/pkg/register"
	"github.com/harp-protocol/harp-go/pkg/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event[T register.Value](reg register.Register[T], v T) *wire.Message {
	return reg.EncodeTimestamped(wire.MessageEvent, 12.5, v)
}

func TestSubscribeDecodesValue(t *testing.T) {
	r := New(cameracontroller.Catalog, nil)

	var got []cameracontroller.DigitalInputs
	Subscribe(r, cameracontroller.DigitalInputState, func(v cameracontroller.DigitalInputs) {
		got = append(got, v)
	})

	r.Route(event(cameracontroller.DigitalInputState, cameracontroller.DI0))
	r.Route(event(cameracontroller.DigitalInputState, cameracontroller.DigitalInputsNone))
	r.Route(event(cameracontroller.Camera0Trigger, 1))

	assert.Equal(t, []cameracontroller.DigitalInputs{cameracontroller.DI0, cameracontroller.DigitalInputsNone}, got)
	assert.Equal(t, uint64(3), r.Stats().Routed)
}

func TestSubscribeTimestamped(t *testing.T) {
	r := New(cameracontroller.Catalog, nil)

	var got register.Timestamped[uint8]
	SubscribeTimestamped(r, cameracontroller.Camera1Trigger, func(v register.Timestamped[uint8]) { got = v })

	r.Route(event(cameracontroller.Camera1Trigger, 9))
	assert.Equal(t, uint8(9), got.Value)
	assert.InDelta(t, 12.5, got.Seconds, 1e-4)
}

func TestUnknownAddressReported(t *testing.T) {
	var errs []error
	r := New(cameracontroller.Catalog, func(err error) { errs = append(errs, err) })

	called := false
	r.HandleAll(func(register.Descriptor, *wire.Message) { called = true })

	r.Route(&wire.Message{Type: wire.MessageEvent, Address: 45, Port: wire.DevicePort, PayloadType: wire.PayloadU8, Payload: []byte{1}})

	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], register.ErrUnknownAddress)
	assert.False(t, called)
	assert.Equal(t, uint64(1), r.Stats().Unknown)
}

func TestDecodeErrorsDoNotStopRouting(t *testing.T) {
	var errs []error
	r := New(cameracontroller.Catalog, func(err error) { errs = append(errs, err) })

	var plain, stamped int
	Subscribe(r, cameracontroller.Camera0Sync, func(uint8) { plain++ })
	SubscribeTimestamped(r, cameracontroller.Camera0Sync, func(register.Timestamped[uint8]) { stamped++ })

	// No timestamp: the plain handler still runs.
	r.Route(cameracontroller.Camera0Sync.Encode(wire.MessageEvent, 1))
	// Wrong width.
	r.Route(&wire.Message{Type: wire.MessageEvent, Address: 42, Port: wire.DevicePort, PayloadType: wire.PayloadU16, Payload: []byte{1, 0}})

	assert.Equal(t, 1, plain)
	assert.Equal(t, 0, stamped)
	require.Len(t, errs, 3)
	assert.True(t, errors.Is(errs[0], register.ErrMissingTimestamp))
	assert.True(t, errors.Is(errs[1], register.ErrMalformedPayload))
	assert.Equal(t, uint64(3), r.Stats().DecodeErrors)
}

func TestHandleAllAfterSpecific(t *testing.T) {
	r := New(cameracontroller.Catalog, nil)

	var order []string
	r.HandleAll(func(d register.Descriptor, _ *wire.Message) { order = append(order, "all:"+d.Name) })
	r.Handle(cameracontroller.AddressCamera0Trigger, func(d register.Descriptor, _ *wire.Message) {
		order = append(order, "one:"+d.Name)
	})

	r.Route(event(cameracontroller.Camera0Trigger, 1))
	assert.Equal(t, []string{"one:Camera0Trigger", "all:Camera0Trigger"}, order)
}

func TestRemoveHandler(t *testing.T) {
	r := New(cameracontroller.Catalog, nil)

	n := 0
	remove := Subscribe(r, cameracontroller.Camera0Trigger, func(uint8) { n++ })
	keep := 0
	Subscribe(r, cameracontroller.Camera0Trigger, func(uint8) { keep++ })

	r.Route(event(cameracontroller.Camera0Trigger, 1))
	remove()
	r.Route(event(cameracontroller.Camera0Trigger, 2))

	assert.Equal(t, 1, n)
	assert.Equal(t, 2, keep)
}
