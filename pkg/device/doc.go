// Package device opens a verified connection to a Harp device.
//
// Open builds a channel over a transport and runs the identity handshake:
// the WhoAmI register is read and compared with the identity of the
// register catalog. Only a device that reports the expected identity is
// returned to the caller.
//
//	dev, err := device.Open(ctx, t, catalog, device.Config{})
//	if err != nil {
//	    return err
//	}
//	defer dev.Close()
//
//	hz, err := device.Read(ctx, dev, cameracontroller.Camera0Frequency)
//
// Register access is generic over register.Register[T], so values come
// back in their Go type. Requests to registers outside the catalog fail
// with register.ErrUnknownAddress before anything is sent.
package device
