package transport

import (
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/harp-protocol/harp-go/pkg/log"
	"github.com/harp-protocol/harp-go/pkg/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeSendReceive(t *testing.T) {
	hostLog := &syncLogger{}
	host, dev := Pipe(Config{
		Logger:       hostLog,
		RegisterName: func(addr uint8) string { return map[uint8]string{50: "Camera0Frequency"}[addr] },
	}, Config{})
	defer host.Close()
	defer dev.Close()

	done := make(chan *wire.Message, 1)
	go func() {
		m, err := dev.Receive()
		if err == nil {
			done <- m
		}
	}()

	require.NoError(t, host.Send(wire.NewWrite(50, wire.PayloadU16, []byte{0x1E, 0x00})))

	select {
	case m := <-done:
		assert.Equal(t, wire.MessageWrite, m.Type)
		assert.Equal(t, uint8(50), m.Address)
		assert.Equal(t, []byte{0x1E, 0x00}, m.Payload)
	case <-time.After(time.Second):
		t.Fatal("device did not receive the message")
	}

	var named bool
	for _, e := range hostLog.snapshot() {
		if e.Message != nil && e.Message.Register == "Camera0Frequency" {
			named = true
			assert.Equal(t, log.LayerWire, e.Layer)
			assert.Equal(t, log.DirectionOut, e.Direction)
		}
	}
	assert.True(t, named, "expected a wire event naming the register")
}

func TestStreamTransportSkipsUndecodableFrames(t *testing.T) {
	a, b := net.Pipe()
	tr := NewStreamTransport("test", a, Config{})
	defer tr.Close()

	// Valid checksum, but a timestamp flag with no room for the timestamp.
	bad := []byte{0x03, 0x05, 0x28, 0xFF, 0x11, 0x01, 0x00}
	bad[len(bad)-1] = wire.Checksum(bad[:len(bad)-1])
	good, err := wire.Encode(wire.NewWrite(32, wire.PayloadU8, []byte{0x01}))
	require.NoError(t, err)

	go func() {
		_, _ = b.Write(append(bad, good...))
	}()

	m, err := tr.Receive()
	require.NoError(t, err)
	assert.Equal(t, uint8(32), m.Address)
	assert.Equal(t, uint64(1), tr.Corrupt())
}

func TestStreamTransportClose(t *testing.T) {
	host, dev := Pipe(Config{}, Config{})
	defer dev.Close()

	errCh := make(chan error, 1)
	go func() {
		_, err := host.Receive()
		errCh <- err
	}()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, host.Close())
	require.NoError(t, host.Close())

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(time.Second):
		t.Fatal("Receive did not unblock on Close")
	}

	assert.Equal(t, StateClosed, host.State())
	assert.ErrorIs(t, host.Send(wire.NewRead(0, wire.PayloadU16)), ErrClosed)
}

func TestStreamTransportPeerClosed(t *testing.T) {
	host, dev := Pipe(Config{}, Config{})
	defer host.Close()

	require.NoError(t, dev.Close())

	_, err := host.Receive()
	assert.True(t, errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe), "got %v", err)
}

func TestStreamTransportRejectsInvalidMessage(t *testing.T) {
	host, dev := Pipe(Config{}, Config{})
	defer host.Close()
	defer dev.Close()

	err := host.Send(&wire.Message{Type: 9, PayloadType: wire.PayloadU8})
	assert.ErrorIs(t, err, wire.ErrInvalidMessageType)
}

func TestIdentity(t *testing.T) {
	host, dev := Pipe(Config{}, Config{})
	defer host.Close()
	defer dev.Close()

	assert.Equal(t, "pipe", host.ID())
	assert.NotEqual(t, host.ConnectionID(), dev.ConnectionID())
	assert.Len(t, host.ConnectionID(), 36)
	assert.Equal(t, "OPEN", host.State().String())
}
