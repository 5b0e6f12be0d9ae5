package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/harp-protocol/harp-go/internal/simulator"
	"github.com/harp-protocol/harp-go/pkg/cameracontroller"
	"github.com/harp-protocol/harp-go/pkg/connection"
	"github.com/harp-protocol/harp-go/pkg/device"
	"github.com/harp-protocol/harp-go/pkg/log"
	"github.com/harp-protocol/harp-go/pkg/register"
	"github.com/harp-protocol/harp-go/pkg/router"
	"github.com/harp-protocol/harp-go/pkg/transport"
	"github.com/harp-protocol/harp-go/pkg/wire"
)

var errNoPort = errors.New("no serial port given (use -port or -simulate)")

// session owns the connection to one CameraController and the event
// printer shared by all commands.
type session struct {
	cfg  Config
	zl   zerolog.Logger
	plog log.Logger
	out  io.Writer

	router  *router.Router
	backoff *connection.Backoff
	sim     *simulator.CameraController

	mu  sync.Mutex
	dev *cameracontroller.Device

	monitoring atomic.Bool
}

func newSession(cfg Config, zl zerolog.Logger, plog log.Logger, out io.Writer) *session {
	s := &session{
		cfg:  cfg,
		zl:   zl,
		plog: plog,
		out:  out,
		backoff: connection.NewBackoffWithConfig(connection.BackoffConfig{
			Initial: cfg.Backoff.Initial,
			Max:     cfg.Backoff.Max,
			Jitter:  connection.JitterFactor,
		}),
	}
	s.router = router.New(cameracontroller.Catalog, func(err error) {
		zl.Warn().Err(err).Msg("event routing")
	})
	s.router.HandleAll(s.printEvent)

	if cfg.Simulate {
		s.sim = simulator.NewCameraController(simulator.Config{
			SerialNumber: uint16(cfg.SerialNumber),
		})
	}
	return s
}

// device returns the open device, opening it first if needed.
func (s *session) device(ctx context.Context) (*cameracontroller.Device, error) {
	s.mu.Lock()
	dev := s.dev
	s.mu.Unlock()

	if dev != nil {
		select {
		case <-dev.Done():
			s.zl.Warn().Err(dev.Err()).Msg("connection lost")
		default:
			return dev, nil
		}
	}
	return s.open(ctx)
}

// open runs the whole open sequence, retrying per configuration. A device
// with the wrong identity is not retried.
func (s *session) open(ctx context.Context) (*cameracontroller.Device, error) {
	s.closeDevice()

	var dev *cameracontroller.Device
	err := connection.Retry(ctx, s.backoff, s.cfg.Retry, func(ctx context.Context) error {
		d, err := s.openOnce(ctx)
		if err != nil {
			if errors.Is(err, device.ErrUnexpectedIdentity) || errors.Is(err, errNoPort) {
				return connection.Permanent(err)
			}
			s.zl.Warn().Err(err).Int("attempt", s.backoff.Attempts()+1).Msg("open failed")
			return err
		}
		dev = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.dev = dev
	s.mu.Unlock()
	s.zl.Info().Str("port", dev.TransportID()).Uint16("who_am_i", dev.WhoAmI()).Msg("device verified")
	return dev, nil
}

func (s *session) openOnce(ctx context.Context) (*cameracontroller.Device, error) {
	tcfg := transport.Config{
		Logger:       s.plog,
		RegisterName: cameracontroller.Catalog.NameOf,
	}

	var t transport.Transport
	switch {
	case s.sim != nil:
		t = s.sim.Attach(context.WithoutCancel(ctx), tcfg)
	case s.cfg.Port != "":
		st, err := transport.OpenSerial(s.cfg.Port, transport.SerialConfig{
			Config:   tcfg,
			BaudRate: s.cfg.BaudRate,
		})
		if err != nil {
			return nil, err
		}
		t = st
	default:
		return nil, errNoPort
	}

	openCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	return cameracontroller.Open(openCtx, t, device.Config{
		Logger:         s.plog,
		OnEvent:        s.router.Route,
		OnError:        func(err error) { s.zl.Warn().Err(err).Msg("channel") },
		EventBuffer:    s.cfg.EventBuffer,
		LateReplyGrace: s.cfg.LateReplyGrace,
	})
}

func (s *session) closeDevice() {
	s.mu.Lock()
	dev := s.dev
	s.dev = nil
	s.mu.Unlock()

	if dev != nil {
		dev.Close()
	}
}

// Close releases the device and the simulator.
func (s *session) Close() {
	s.closeDevice()
	if s.sim != nil {
		s.sim.Close()
	}
}

func (s *session) printEvent(desc register.Descriptor, m *wire.Message) {
	if !s.monitoring.Load() {
		return
	}
	v, err := register.DecodeRawTimestamped(desc, m)
	if err != nil {
		s.zl.Warn().Err(err).Str("register", desc.Name).Msg("undecodable event")
		return
	}
	fmt.Fprintf(s.out, "%14.6f  %-18s %s\n", v.Seconds, desc.Name, formatValue(desc, v.Value))
}
