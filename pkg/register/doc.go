// Package register maps Harp register addresses to typed payloads.
//
// A Catalog is an immutable, address-indexed table of Descriptors built once
// at start-up. The codec functions convert between a descriptor's raw payload
// (one or two little-endian bytes) and an integer value, and Register[T]
// wraps a descriptor with a Go type so that flags, enums and plain integers
// share one encode/decode path:
//
//	var CameraStart = register.Define[Cameras](register.Descriptor{
//		Address: 32, Name: "CameraStart", Width: register.Width8,
//		Kind: register.KindFlags, Access: register.AccessRead | register.AccessWrite,
//	})
//
//	msg := CameraStart.Encode(wire.MessageWrite, Camera0|Camera1)
//	v, err := CameraStart.Decode(reply)
//
// Flag and enum values are reinterpreted without range checks; a device may
// report bit patterns that have no named constant.
package register
