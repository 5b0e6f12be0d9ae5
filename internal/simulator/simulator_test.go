package simulator

import (
	"context"
	"testing"
	"time"

	"github.com/harp-protocol/harp-go/pkg/cameracontroller"
	"github.com/harp-protocol/harp-go/pkg/register"
	"github.com/harp-protocol/harp-go/pkg/transport"
	"github.com/harp-protocol/harp-go/pkg/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleRead(t *testing.T) {
	d := New(cameracontroller.Catalog, Config{SerialNumber: 42})

	reply := d.Handle(register.WhoAmI.ReadRequest())
	require.NotNil(t, reply)
	assert.Equal(t, wire.MessageRead, reply.Type)
	assert.True(t, reply.HasTimestamp)

	v, err := register.WhoAmI.Decode(reply)
	require.NoError(t, err)
	assert.Equal(t, cameracontroller.WhoAmI, v)

	sn, err := register.SerialNumber.Decode(d.Handle(register.SerialNumber.ReadRequest()))
	require.NoError(t, err)
	assert.Equal(t, uint16(42), sn)
}

func TestHandleWriteStoresAndEchoes(t *testing.T) {
	d := New(cameracontroller.Catalog, Config{})

	reply := d.Handle(cameracontroller.Camera0Frequency.WriteRequest(30))
	require.NotNil(t, reply)
	assert.Equal(t, wire.MessageWrite, reply.Type)
	assert.Equal(t, []byte{0x1E, 0x00}, reply.Payload)
	assert.Equal(t, uint16(30), d.Value(cameracontroller.AddressCamera0Frequency))
}

func TestHandleErrorReplies(t *testing.T) {
	d := New(cameracontroller.Catalog, Config{})

	tests := []struct {
		name string
		req  *wire.Message
	}{
		{"read-only register", cameracontroller.ServoState.WriteRequest(cameracontroller.Servo0)},
		{"unknown register", wire.NewRead(45, wire.PayloadU8)},
		{"wrong payload type", wire.NewRead(cameracontroller.AddressCamera0Frequency, wire.PayloadU8)},
		{"event from host", &wire.Message{Type: wire.MessageEvent, Address: 40, Port: wire.DevicePort, PayloadType: wire.PayloadU8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := d.Handle(tt.req)
			require.NotNil(t, reply)
			assert.True(t, reply.Type.IsError())
			assert.Equal(t, tt.req.Address, reply.Address)
		})
	}
	assert.Zero(t, d.Value(cameracontroller.AddressServoState))
}

func TestWriteHooks(t *testing.T) {
	d := New(cameracontroller.Catalog, Config{})
	var got []uint16
	d.OnWrite(cameracontroller.AddressSyncInterval, func(_ *Device, v uint16) { got = append(got, v) })

	d.Handle(cameracontroller.SyncInterval.WriteRequest(5))
	d.Handle(cameracontroller.SyncInterval.ReadRequest())
	assert.Equal(t, []uint16{5}, got)
}

func TestDrop(t *testing.T) {
	d := New(cameracontroller.Catalog, Config{
		Drop: func(req *wire.Message) bool { return req.Address == cameracontroller.AddressSyncInterval },
	})
	assert.Nil(t, d.Handle(cameracontroller.SyncInterval.ReadRequest()))
	assert.NotNil(t, d.Handle(cameracontroller.DI0Mode.ReadRequest()))
	assert.Equal(t, uint64(2), d.Requests())
}

func TestEmitRequiresEventRegister(t *testing.T) {
	d := New(cameracontroller.Catalog, Config{})
	assert.Error(t, d.Emit(cameracontroller.AddressCamera0Frequency, 1))
	assert.ErrorIs(t, d.Emit(45, 1), register.ErrUnknownAddress)
	assert.NoError(t, d.Emit(cameracontroller.AddressCamera0Trigger, 1))
}

func TestServeOverPipe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := New(cameracontroller.Catalog, Config{})
	host := d.Attach(ctx, transport.Config{})
	defer host.Close()

	require.NoError(t, host.Send(register.WhoAmI.ReadRequest()))
	reply, err := host.Receive()
	require.NoError(t, err)
	v, err := register.WhoAmI.Decode(reply)
	require.NoError(t, err)
	assert.Equal(t, uint16(1168), v)

	require.NoError(t, d.Emit(cameracontroller.AddressDigitalInputState, 1))
	ev, err := host.Receive()
	require.NoError(t, err)
	assert.Equal(t, wire.MessageEvent, ev.Type)
	assert.Equal(t, cameracontroller.AddressDigitalInputState, ev.Address)
}

func TestCameraControllerTriggers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := NewCameraController(Config{})
	defer c.Close()
	c.Set(cameracontroller.AddressCamera0Frequency, 100)

	host := c.Attach(ctx, transport.Config{})
	defer host.Close()

	require.NoError(t, host.Send(cameracontroller.CameraStart.WriteRequest(cameracontroller.Camera0)))

	deadline := time.After(2 * time.Second)
	var triggers int
	for triggers < 3 {
		done := make(chan *wire.Message, 1)
		go func() {
			m, _ := host.Receive()
			done <- m
		}()
		select {
		case m := <-done:
			require.NotNil(t, m)
			if m.Type == wire.MessageEvent && m.Address == cameracontroller.AddressCamera0Trigger {
				triggers++
			}
		case <-deadline:
			t.Fatalf("got %d trigger events", triggers)
		}
	}
	assert.Equal(t, cameracontroller.Camera0, c.Running())

	c.Handle(cameracontroller.CameraStop.WriteRequest(cameracontroller.Camera0))
	assert.Equal(t, cameracontroller.CamerasNone, c.Running())
}

func TestCameraControllerOutputs(t *testing.T) {
	c := NewCameraController(Config{})
	defer c.Close()

	c.Handle(cameracontroller.OutputSet.WriteRequest(cameracontroller.Trigger0 | cameracontroller.Sync1))
	c.Handle(cameracontroller.OutputClear.WriteRequest(cameracontroller.Trigger0))
	assert.Equal(t, uint16(cameracontroller.Sync1), c.Value(cameracontroller.AddressOutputState))

	c.Handle(cameracontroller.ServoEnable.WriteRequest(cameracontroller.Servo0 | cameracontroller.Servo1))
	c.Handle(cameracontroller.ServoDisable.WriteRequest(cameracontroller.Servo1))
	assert.Equal(t, uint16(cameracontroller.Servo0), c.Value(cameracontroller.AddressServoState))
}
