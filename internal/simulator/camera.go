package simulator

import (
	"sync"
	"time"

	"github.com/harp-protocol/harp-go/pkg/cameracontroller"
)

// cameraLine is one output channel of a CameraController.
type cameraLine struct {
	bit       cameracontroller.Cameras
	frequency uint8
	trigger   uint8
	sync      uint8
}

var cameraLines = []cameraLine{
	{cameracontroller.Camera0, cameracontroller.AddressCamera0Frequency, cameracontroller.AddressCamera0Trigger, cameracontroller.AddressCamera0Sync},
	{cameracontroller.Camera1, cameracontroller.AddressCamera1Frequency, cameracontroller.AddressCamera1Trigger, cameracontroller.AddressCamera1Sync},
}

// CameraController simulates a CameraController: writes to CameraStart
// start trigger events at the configured frequency and sync events every
// SyncInterval seconds, CameraStop stops them, and the set/clear and
// servo enable/disable registers update their state registers.
type CameraController struct {
	*Device

	mu      sync.Mutex
	running map[cameracontroller.Cameras]chan struct{}
}

// NewCameraController creates a simulated CameraController.
func NewCameraController(config Config) *CameraController {
	c := &CameraController{
		Device:  New(cameracontroller.Catalog, config),
		running: make(map[cameracontroller.Cameras]chan struct{}),
	}

	for _, line := range cameraLines {
		c.Set(line.frequency, 1)
	}
	c.Set(cameracontroller.AddressSyncInterval, 1)
	c.Set(cameracontroller.AddressServo0Period, 20000)
	c.Set(cameracontroller.AddressServo1Period, 20000)
	c.Set(cameracontroller.AddressServo0PulseWidth, 1500)
	c.Set(cameracontroller.AddressServo1PulseWidth, 1500)

	c.OnWrite(cameracontroller.AddressCameraStart, func(_ *Device, v uint16) { c.start(cameracontroller.Cameras(v)) })
	c.OnWrite(cameracontroller.AddressCameraStop, func(_ *Device, v uint16) { c.stop(cameracontroller.Cameras(v)) })
	c.OnWrite(cameracontroller.AddressOutputSet, func(d *Device, v uint16) {
		d.Set(cameracontroller.AddressOutputState, d.Value(cameracontroller.AddressOutputState)|v)
	})
	c.OnWrite(cameracontroller.AddressOutputClear, func(d *Device, v uint16) {
		d.Set(cameracontroller.AddressOutputState, d.Value(cameracontroller.AddressOutputState)&^v)
	})
	c.OnWrite(cameracontroller.AddressServoEnable, func(d *Device, v uint16) {
		d.Set(cameracontroller.AddressServoState, d.Value(cameracontroller.AddressServoState)|v)
	})
	c.OnWrite(cameracontroller.AddressServoDisable, func(d *Device, v uint16) {
		d.Set(cameracontroller.AddressServoState, d.Value(cameracontroller.AddressServoState)&^v)
	})

	go func() {
		<-c.Done()
		c.stop(cameracontroller.Camera0 | cameracontroller.Camera1)
	}()
	return c
}

// SetInput changes the digital input state and emits the event.
func (c *CameraController) SetInput(v cameracontroller.DigitalInputs) error {
	return c.Emit(cameracontroller.AddressDigitalInputState, uint16(v))
}

// Running returns the cameras currently triggering.
func (c *CameraController) Running() cameracontroller.Cameras {
	c.mu.Lock()
	defer c.mu.Unlock()
	var v cameracontroller.Cameras
	for bit := range c.running {
		v |= bit
	}
	return v
}

func (c *CameraController) start(cams cameracontroller.Cameras) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, line := range cameraLines {
		if cams&line.bit == 0 {
			continue
		}
		if _, ok := c.running[line.bit]; ok {
			continue
		}
		stop := make(chan struct{})
		c.running[line.bit] = stop
		go c.trigger(line, stop)
	}
}

func (c *CameraController) stop(cams cameracontroller.Cameras) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for bit, stop := range c.running {
		if cams&bit != 0 {
			close(stop)
			delete(c.running, bit)
		}
	}
}

func (c *CameraController) trigger(line cameraLine, stop <-chan struct{}) {
	hz := c.Value(line.frequency)
	if hz == 0 {
		hz = 1
	}
	ticker := time.NewTicker(time.Second / time.Duration(hz))
	defer ticker.Stop()

	var frame uint16
	lastSync := time.Now()
	syncState := uint16(0)

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			frame++
			_ = c.Emit(line.trigger, frame&0xFF)

			interval := time.Duration(c.Value(cameracontroller.AddressSyncInterval)) * time.Second
			if interval > 0 && now.Sub(lastSync) >= interval {
				lastSync = now
				syncState ^= 1
				_ = c.Emit(line.sync, syncState)
			}
		}
	}
}
