package snapshot_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/harp-protocol/harp-go/internal/simulator"
	"github.com/harp-protocol/harp-go/pkg/cameracontroller"
	"github.com/harp-protocol/harp-go/pkg/device"
	"github.com/harp-protocol/harp-go/pkg/register"
	"github.com/harp-protocol/harp-go/pkg/snapshot"
	"github.com/harp-protocol/harp-go/pkg/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T) (*device.Device, *simulator.Device) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	sim := simulator.New(cameracontroller.Catalog, simulator.Config{})
	host := sim.Attach(ctx, transport.Config{})

	openCtx, openCancel := context.WithTimeout(ctx, 2*time.Second)
	defer openCancel()
	d, err := device.Open(openCtx, host, cameracontroller.Catalog, device.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d, sim
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestIncluded(t *testing.T) {
	tests := []struct {
		address uint8
		want    bool
	}{
		{register.AddressOperationControl, false},
		{cameracontroller.AddressCameraStart, false},
		{cameracontroller.AddressOutputClear, false},
		{cameracontroller.AddressOutputState, true},
		{cameracontroller.AddressCamera0Frequency, true},
		{cameracontroller.AddressServoState, false},
		{cameracontroller.AddressCamera0Trigger, false},
	}
	for _, tt := range tests {
		d, err := cameracontroller.Catalog.Resolve(tt.address)
		require.NoError(t, err)
		assert.Equal(t, tt.want, snapshot.Included(d), d.Name)
	}
}

func TestCaptureAndRestore(t *testing.T) {
	ctx := testContext(t)

	src, srcSim := open(t)
	srcSim.Set(cameracontroller.AddressCamera0Frequency, 30)
	srcSim.Set(cameracontroller.AddressServo1Period, 15000)

	snap, err := snapshot.Capture(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, "CameraController", snap.Device)
	assert.Equal(t, cameracontroller.WhoAmI, snap.WhoAmI)
	assert.Equal(t, snapshot.Version, snap.Version)
	assert.Len(t, snap.Registers, 12)

	values := make(map[uint8]uint16)
	for _, e := range snap.Registers {
		values[e.Address] = e.Value
	}
	assert.Equal(t, uint16(30), values[cameracontroller.AddressCamera0Frequency])
	assert.Equal(t, uint16(15000), values[cameracontroller.AddressServo1Period])

	dst, dstSim := open(t)
	var mu sync.Mutex
	var order []uint8
	for _, e := range snap.Registers {
		addr := e.Address
		dstSim.OnWrite(addr, func(*simulator.Device, uint16) {
			mu.Lock()
			order = append(order, addr)
			mu.Unlock()
		})
	}

	// Shuffle the entries; restore must still go in address order.
	reversed := *snap
	reversed.Registers = nil
	for i := len(snap.Registers) - 1; i >= 0; i-- {
		reversed.Registers = append(reversed.Registers, snap.Registers[i])
	}

	require.NoError(t, snapshot.Restore(ctx, dst, &reversed))
	assert.Equal(t, uint16(30), dstSim.Value(cameracontroller.AddressCamera0Frequency))
	assert.Equal(t, uint16(15000), dstSim.Value(cameracontroller.AddressServo1Period))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, order, len(snap.Registers))
	assert.IsIncreasing(t, order)
}

func TestRestoreChecksEntriesBeforeWriting(t *testing.T) {
	ctx := testContext(t)
	d, sim := open(t)
	before := sim.Requests()

	err := snapshot.Restore(ctx, d, &snapshot.Snapshot{
		WhoAmI: cameracontroller.WhoAmI,
		Registers: []snapshot.Entry{
			{Address: cameracontroller.AddressCamera0Frequency, Value: 10},
			{Address: cameracontroller.AddressCameraStart, Value: 1},
		},
	})
	assert.ErrorIs(t, err, snapshot.ErrVolatile)
	assert.Equal(t, before, sim.Requests())
	assert.Zero(t, sim.Value(cameracontroller.AddressCamera0Frequency))
}

func TestRestoreRejectsOtherDevice(t *testing.T) {
	ctx := testContext(t)
	d, sim := open(t)
	before := sim.Requests()

	err := snapshot.Restore(ctx, d, &snapshot.Snapshot{
		WhoAmI: 1000,
		Registers: []snapshot.Entry{
			{Address: cameracontroller.AddressCamera0Frequency, Value: 10},
		},
	})
	assert.ErrorIs(t, err, snapshot.ErrIdentityMismatch)
	assert.Equal(t, before, sim.Requests())
}

func TestRestoreInvalidEntries(t *testing.T) {
	ctx := testContext(t)
	d, _ := open(t)

	err := snapshot.Restore(ctx, d, &snapshot.Snapshot{
		WhoAmI:    cameracontroller.WhoAmI,
		Registers: []snapshot.Entry{{Address: cameracontroller.AddressServoState, Value: 1}},
	})
	assert.ErrorIs(t, err, snapshot.ErrNotWritable)

	err = snapshot.Restore(ctx, d, &snapshot.Snapshot{
		WhoAmI:    cameracontroller.WhoAmI,
		Registers: []snapshot.Entry{{Address: cameracontroller.AddressCameraStart, Value: 1}},
	})
	assert.ErrorIs(t, err, snapshot.ErrVolatile)

	err = snapshot.Restore(ctx, d, &snapshot.Snapshot{
		WhoAmI:    cameracontroller.WhoAmI,
		Registers: []snapshot.Entry{{Address: 60, Value: 1}},
	})
	assert.ErrorIs(t, err, register.ErrUnknownAddress)

	err = snapshot.Restore(ctx, d, &snapshot.Snapshot{
		WhoAmI:    cameracontroller.WhoAmI,
		Registers: []snapshot.Entry{{Address: cameracontroller.AddressDI0Mode, Value: 0x1FF}},
	})
	assert.ErrorIs(t, err, register.ErrValueOutOfRange)
}

func TestEncodeDecode(t *testing.T) {
	snap := &snapshot.Snapshot{
		Version: snapshot.Version,
		Device:  "CameraController",
		WhoAmI:  1168,
		SavedAt: time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC),
		Registers: []snapshot.Entry{
			{Address: 50, Name: "Camera0Frequency", Value: 30},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, snapshot.Encode(&buf, snap))
	assert.Contains(t, buf.String(), "whoAmI: 1168")
	assert.Contains(t, buf.String(), "name: Camera0Frequency")

	got, err := snapshot.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	_, err = snapshot.Decode(bytes.NewBufferString("version: 99\n"))
	assert.ErrorIs(t, err, snapshot.ErrUnsupportedVersion)

	_, err = snapshot.Decode(bytes.NewBufferString("registers: {"))
	assert.Error(t, err)
}

func TestStore(t *testing.T) {
	t.Run("LoadNonExistent", func(t *testing.T) {
		store := snapshot.NewStore(filepath.Join(t.TempDir(), "missing.yml"))
		got, err := store.Load()
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("SaveLoadClear", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "camera.yml")
		store := snapshot.NewStore(path)
		assert.Equal(t, path, store.Path())

		snap := &snapshot.Snapshot{
			Device:    "CameraController",
			WhoAmI:    1168,
			Registers: []snapshot.Entry{{Address: 53, Name: "Control1Mode", Value: 1}},
		}
		require.NoError(t, store.Save(snap))
		assert.Equal(t, snapshot.Version, snap.Version)
		assert.False(t, snap.SavedAt.IsZero())

		got, err := store.Load()
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, snap.Registers, got.Registers)
		assert.True(t, snap.SavedAt.Equal(got.SavedAt))

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		require.Len(t, entries, 1, "temporary file left behind")
		assert.Equal(t, "camera.yml", entries[0].Name())

		snap.Registers = []snapshot.Entry{{Address: 53, Name: "Control1Mode", Value: 0}}
		require.NoError(t, store.Save(snap))
		got, err = store.Load()
		require.NoError(t, err)
		assert.Equal(t, uint16(0), got.Registers[0].Value)

		require.NoError(t, store.Clear())
		require.NoError(t, store.Clear())
		got, err = store.Load()
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
