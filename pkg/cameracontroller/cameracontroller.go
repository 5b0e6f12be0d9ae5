package cameracontroller

import (
	"context"

	"github.com/harp-protocol/harp-go/pkg/device"
	"github.com/harp-protocol/harp-go/pkg/register"
	"github.com/harp-protocol/harp-go/pkg/transport"
)

// Catalog holds the common Harp registers and the CameraController
// registers.
var Catalog = register.MustCatalog(Name, WhoAmI, append(register.Common(), deviceRegisters()...)...)

// Device is a verified connection to a CameraController.
type Device struct {
	*device.Device
}

// Open verifies that t is connected to a CameraController and returns it.
// See device.Open.
func Open(ctx context.Context, t transport.Transport, config device.Config) (*Device, error) {
	d, err := device.Open(ctx, t, Catalog, config)
	if err != nil {
		return nil, err
	}
	return &Device{Device: d}, nil
}

// NamedValues returns the value names of a flags or enum register, or nil
// for integer registers.
func NamedValues(registerName string) []register.Bit {
	return namedValues[registerName]
}
