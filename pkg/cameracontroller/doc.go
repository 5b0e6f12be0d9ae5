// Package cameracontroller binds the Harp CameraController device.
//
// The register table, value types and accessors in registers_gen.go are
// generated from device.yml by cmd/harpgen. The device has two output
// channels that run either in camera mode (trigger and sync pulses at a
// configured frequency) or in servo mode (pulse width modulation), one
// digital input and four digital outputs.
//
//	dev, err := cameracontroller.Open(ctx, t, device.Config{})
//	if err != nil {
//	    return err
//	}
//	defer dev.Close()
//
//	if err := dev.WriteCamera0Frequency(ctx, 30); err != nil {
//	    return err
//	}
//	err = dev.WriteCameraStart(ctx, cameracontroller.Camera0|cameracontroller.Camera1)
package cameracontroller

//go:generate go run ../../cmd/harpgen -in device.yml -out registers_gen.go -package cameracontroller
